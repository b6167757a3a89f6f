package ledger

// TxError is the closed set of reasons a transaction can be rejected.
type TxError uint8

const (
	ErrInvalidAmount TxError = iota + 1
	ErrOverflow
	ErrInsufficientFunds
	ErrCannotTransferToSelf
	ErrUserNotFound
	ErrTargetNotFound
)

var txErrorCodes = map[TxError]string{
	ErrInvalidAmount:        "invalid_amount",
	ErrOverflow:             "overflow",
	ErrInsufficientFunds:    "insufficient_funds",
	ErrCannotTransferToSelf: "cannot_transfer_to_self",
	ErrUserNotFound:         "user_not_found",
	ErrTargetNotFound:       "target_not_found",
}

var txErrorMessages = map[TxError]string{
	ErrInvalidAmount:        "amount must be greater than zero",
	ErrOverflow:             "balance would overflow",
	ErrInsufficientFunds:    "insufficient funds",
	ErrCannotTransferToSelf: "cannot transfer to self",
	ErrUserNotFound:         "user not found",
	ErrTargetNotFound:       "target not found",
}

func (e TxError) Error() string {
	if msg, ok := txErrorMessages[e]; ok {
		return "ledger: " + msg
	}
	return "ledger: unknown error"
}

// Code returns a stable identifier suitable for logs and wire payloads.
func (e TxError) Code() string {
	if code, ok := txErrorCodes[e]; ok {
		return code
	}
	return "unknown"
}
