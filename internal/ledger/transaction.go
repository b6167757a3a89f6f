package ledger

// AccountID identifies an account in the registry.
type AccountID uint64

type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// Transaction is an immutable record of one completed ledger event.
// Deposits carry only To, withdrawals only From, transfers both.
type Transaction struct {
	Kind   Kind       `json:"kind"`
	From   *AccountID `json:"from,omitempty"`
	To     *AccountID `json:"to,omitempty"`
	Amount Amount     `json:"amount"`
}

func depositRecord(to AccountID, amount Amount) Transaction {
	return Transaction{Kind: KindDeposit, To: &to, Amount: amount}
}

func withdrawRecord(from AccountID, amount Amount) Transaction {
	return Transaction{Kind: KindWithdraw, From: &from, Amount: amount}
}

func transferRecord(from, to AccountID, amount Amount) Transaction {
	return Transaction{Kind: KindTransfer, From: &from, To: &to, Amount: amount}
}

// Source returns the debited account, if any.
func (t Transaction) Source() (AccountID, bool) {
	if t.From == nil {
		return 0, false
	}
	return *t.From, true
}

// Destination returns the credited account, if any.
func (t Transaction) Destination() (AccountID, bool) {
	if t.To == nil {
		return 0, false
	}
	return *t.To, true
}

func (t Transaction) clone() Transaction {
	out := Transaction{Kind: t.Kind, Amount: t.Amount}
	if t.From != nil {
		from := *t.From
		out.From = &from
	}
	if t.To != nil {
		to := *t.To
		out.To = &to
	}
	return out
}
