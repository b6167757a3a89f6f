package ledger

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	_, err := NewAmount(0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	a, err := NewAmount(42)
	require.NoError(t, err)
	require.Equal(t, uint64(42), a.Uint64())
	require.False(t, a.IsZero())
	require.True(t, Zero().IsZero())
}

func TestAmount_Add(t *testing.T) {
	a := mustAmount(t, 40)
	b := mustAmount(t, 2)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, uint64(42), sum.Uint64())
	require.Equal(t, uint64(40), a.Uint64(), "operands are not mutated")

	top := mustAmount(t, math.MaxUint64)
	_, err = top.Add(mustAmount(t, 1))
	require.ErrorIs(t, err, ErrOverflow)

	sum, err = Zero().Add(top)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), sum.Uint64())
}

func TestAmount_Sub(t *testing.T) {
	a := mustAmount(t, 10)

	diff, err := a.Sub(mustAmount(t, 10))
	require.NoError(t, err)
	require.True(t, diff.IsZero())

	_, err = a.Sub(mustAmount(t, 11))
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestAmount_JSON(t *testing.T) {
	b, err := json.Marshal(mustAmount(t, 150))
	require.NoError(t, err)
	require.Equal(t, "150", string(b))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte("0"), &a))
	require.True(t, a.IsZero())
	require.Error(t, json.Unmarshal([]byte("-3"), &a))
	require.Equal(t, "0", a.String())
}

func TestTxError_Code(t *testing.T) {
	require.Equal(t, "insufficient_funds", ErrInsufficientFunds.Code())
	require.Equal(t, "ledger: cannot transfer to self", ErrCannotTransferToSelf.Error())
	require.Equal(t, "unknown", TxError(99).Code())
}

func mustAmount(t *testing.T, raw uint64) Amount {
	t.Helper()
	a, err := NewAmount(raw)
	require.NoError(t, err)
	return a
}
