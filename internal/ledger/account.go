package ledger

// UserAccount is one ledger participant: a balance and its append-only history.
type UserAccount struct {
	id      AccountID
	balance Amount
	ledger  []Transaction
}

func NewUserAccount(id AccountID) *UserAccount {
	return &UserAccount{id: id, balance: Zero()}
}

func (a *UserAccount) ID() AccountID {
	return a.id
}

func (a *UserAccount) Balance() Amount {
	return a.balance
}

// Ledger returns the account history in chronological order.
func (a *UserAccount) Ledger() []Transaction {
	out := make([]Transaction, len(a.ledger))
	for i, tx := range a.ledger {
		out[i] = tx.clone()
	}
	return out
}

func (a *UserAccount) Deposit(amount Amount) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	balance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = balance
	a.ledger = append(a.ledger, depositRecord(a.id, amount))
	return nil
}

func (a *UserAccount) Withdraw(amount Amount) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	balance, err := a.balance.Sub(amount)
	if err != nil {
		return err
	}
	a.balance = balance
	a.ledger = append(a.ledger, withdrawRecord(a.id, amount))
	return nil
}

// Transfer moves amount from a to target. Both legs are computed before
// either balance is written, so a failure leaves both accounts untouched.
func (a *UserAccount) Transfer(target *UserAccount, amount Amount) error {
	if a.id == target.id {
		return ErrCannotTransferToSelf
	}
	if amount.IsZero() {
		return ErrInvalidAmount
	}

	from, err := a.balance.Sub(amount)
	if err != nil {
		return err
	}
	to, err := target.balance.Add(amount)
	if err != nil {
		return err
	}

	a.balance = from
	target.balance = to

	tx := transferRecord(a.id, target.id, amount)
	a.ledger = append(a.ledger, tx)
	target.ledger = append(target.ledger, tx)
	return nil
}

func (a *UserAccount) clone() UserAccount {
	return UserAccount{id: a.id, balance: a.balance, ledger: a.Ledger()}
}
