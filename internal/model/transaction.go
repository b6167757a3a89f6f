package model

import (
	"errors"
	"fmt"

	"ledger/internal/ledger"
)

var ErrUnknownKind = errors.New("unknown transaction kind")

// TransactionMessage is the JSON payload of an inbound transaction request.
type TransactionMessage struct {
	Kind     string `json:"kind"`
	UserID   int64  `json:"user_id"`
	TargetID int64  `json:"target_id,omitempty"`
	Amount   uint64 `json:"amount"`
}

func (m TransactionMessage) ToRequest() (ledger.Request, error) {
	switch ledger.Kind(m.Kind) {
	case ledger.KindDeposit:
		return ledger.Deposit{Amount: m.Amount}, nil
	case ledger.KindWithdraw:
		return ledger.Withdraw{Amount: m.Amount}, nil
	case ledger.KindTransfer:
		return ledger.Transfer{TargetID: ledger.AccountID(m.TargetID), Amount: m.Amount}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
}

// LedgerEvent is published after every successful transaction.
type LedgerEvent struct {
	ID       string                      `json:"id"`
	Kind     ledger.Kind                 `json:"kind"`
	UserID   ledger.AccountID            `json:"user_id"`
	From     *ledger.AccountID           `json:"from,omitempty"`
	To       *ledger.AccountID           `json:"to,omitempty"`
	Amount   ledger.Amount               `json:"amount"`
	Balances map[ledger.AccountID]uint64 `json:"balances"`
}

// LedgerRecord is one exported history row: the Seq-th entry of AccountID's ledger.
type LedgerRecord struct {
	AccountID   ledger.AccountID
	Seq         int
	EventID     string
	Transaction ledger.Transaction
}
