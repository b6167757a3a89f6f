package ledger

import (
	"encoding/json"
	"math/bits"
	"strconv"
)

// Amount is a non-negative quantity of the ledger's single currency unit.
type Amount struct {
	v uint64
}

// NewAmount validates a raw transaction amount. Zero is rejected.
func NewAmount(raw uint64) (Amount, error) {
	if raw == 0 {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{v: raw}, nil
}

// Zero is the opening balance of every account. It is not a valid transaction amount.
func Zero() Amount {
	return Amount{}
}

func (a Amount) Add(b Amount) (Amount, error) {
	sum, carry := bits.Add64(a.v, b.v, 0)
	if carry != 0 {
		return a, ErrOverflow
	}
	return Amount{v: sum}, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	if b.v > a.v {
		return a, ErrInsufficientFunds
	}
	return Amount{v: a.v - b.v}, nil
}

func (a Amount) IsZero() bool {
	return a.v == 0
}

func (a Amount) Uint64() uint64 {
	return a.v
}

func (a Amount) String() string {
	return strconv.FormatUint(a.v, 10)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, a.v, 10), nil
}

// UnmarshalJSON accepts any unsigned number, including zero, so balances round-trip.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.v = v
	return nil
}
