package ledger

// Request is a transaction to apply on behalf of an initiating account.
// The set is closed: Deposit, Withdraw and Transfer.
type Request interface {
	Kind() Kind
	RawAmount() uint64
	request()
}

type Deposit struct {
	Amount uint64
}

type Withdraw struct {
	Amount uint64
}

type Transfer struct {
	TargetID AccountID
	Amount   uint64
}

func (Deposit) Kind() Kind { return KindDeposit }
func (Withdraw) Kind() Kind { return KindWithdraw }
func (Transfer) Kind() Kind { return KindTransfer }

func (Deposit) request() {}
func (Withdraw) request() {}
func (Transfer) request() {}

func (d Deposit) RawAmount() uint64 { return d.Amount }
func (w Withdraw) RawAmount() uint64 { return w.Amount }
func (t Transfer) RawAmount() uint64 { return t.Amount }

// Normalize returns the value form of a pointer request. A nil pointer
// becomes a nil Request.
func Normalize(req Request) Request {
	switch r := req.(type) {
	case *Deposit:
		if r == nil {
			return nil
		}
		return *r
	case *Withdraw:
		if r == nil {
			return nil
		}
		return *r
	case *Transfer:
		if r == nil {
			return nil
		}
		return *r
	}
	return req
}

// ApplyTransaction validates req and executes it against r for userID.
//
// Validation order: self-transfer, amount, initiating account, target account.
// On any error no balance or ledger in r has changed.
func ApplyTransaction(r *Registry, userID AccountID, req Request) error {
	req = Normalize(req)
	if req == nil {
		return ErrInvalidAmount
	}
	if t, ok := req.(Transfer); ok && t.TargetID == userID {
		return ErrCannotTransferToSelf
	}

	amount, err := NewAmount(req.RawAmount())
	if err != nil {
		return err
	}

	switch req := req.(type) {
	case Deposit:
		acc, ok := r.accounts[userID]
		if !ok {
			return ErrUserNotFound
		}
		return acc.Deposit(amount)
	case Withdraw:
		acc, ok := r.accounts[userID]
		if !ok {
			return ErrUserNotFound
		}
		return acc.Withdraw(amount)
	case Transfer:
		from, to, err := r.pair(userID, req.TargetID)
		if err != nil {
			return err
		}
		return from.Transfer(to, amount)
	default:
		return ErrInvalidAmount
	}
}

// Apply is ApplyTransaction as a method.
func (r *Registry) Apply(userID AccountID, req Request) error {
	return ApplyTransaction(r, userID, req)
}
