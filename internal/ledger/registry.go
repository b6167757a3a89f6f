package ledger

import (
	"errors"
	"sort"
)

// ErrAccountExists is returned when registering an id twice. It is a setup
// error and not part of the TxError set.
var ErrAccountExists = errors.New("ledger: account already registered")

// Registry owns every UserAccount, keyed by id. It is not safe for
// concurrent use; callers that share one must serialize access to all of it.
type Registry struct {
	accounts map[AccountID]*UserAccount
}

func NewRegistry(ids ...AccountID) (*Registry, error) {
	r := &Registry{accounts: make(map[AccountID]*UserAccount, len(ids))}
	for _, id := range ids {
		if err := r.Register(id); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a zero-balance account.
func (r *Registry) Register(id AccountID) error {
	if _, ok := r.accounts[id]; ok {
		return ErrAccountExists
	}
	r.accounts[id] = NewUserAccount(id)
	return nil
}

// Account returns a detached copy of the account state.
func (r *Registry) Account(id AccountID) (UserAccount, bool) {
	acc, ok := r.accounts[id]
	if !ok {
		return UserAccount{}, false
	}
	return acc.clone(), true
}

func (r *Registry) Balance(id AccountID) (Amount, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return Amount{}, ErrUserNotFound
	}
	return acc.Balance(), nil
}

func (r *Registry) Ledger(id AccountID) ([]Transaction, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return acc.Ledger(), nil
}

// IDs lists registered ids in ascending order.
func (r *Registry) IDs() []AccountID {
	ids := make([]AccountID, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) Len() int {
	return len(r.accounts)
}

// pair resolves two distinct accounts for a transfer. Entries stay in the
// map, so nothing has to be put back when the transfer fails.
func (r *Registry) pair(from, to AccountID) (*UserAccount, *UserAccount, error) {
	src, ok := r.accounts[from]
	if !ok {
		return nil, nil, ErrUserNotFound
	}
	dst, ok := r.accounts[to]
	if !ok {
		return nil, nil, ErrTargetNotFound
	}
	return src, dst, nil
}
