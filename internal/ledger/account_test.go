package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserAccount_DepositWithdraw(t *testing.T) {
	for _, raw := range []uint64{1, 7, 100, math.MaxUint64} {
		acc := NewUserAccount(1)
		amount := mustAmount(t, raw)

		require.NoError(t, acc.Deposit(amount))
		require.NoError(t, acc.Withdraw(amount))

		require.True(t, acc.Balance().IsZero())
		require.Len(t, acc.Ledger(), 2)
	}
}

func TestUserAccount_ZeroAmount(t *testing.T) {
	acc := NewUserAccount(1)

	require.ErrorIs(t, acc.Deposit(Zero()), ErrInvalidAmount)
	require.ErrorIs(t, acc.Withdraw(Zero()), ErrInvalidAmount)
	require.Empty(t, acc.Ledger())
}

func TestUserAccount_WithdrawInsufficient(t *testing.T) {
	acc := NewUserAccount(1)
	require.NoError(t, acc.Deposit(mustAmount(t, 10)))
	before := acc.Ledger()

	require.ErrorIs(t, acc.Withdraw(mustAmount(t, 11)), ErrInsufficientFunds)
	require.Equal(t, uint64(10), acc.Balance().Uint64())
	require.Equal(t, before, acc.Ledger())
}

func TestUserAccount_DepositOverflow(t *testing.T) {
	acc := NewUserAccount(1)
	require.NoError(t, acc.Deposit(mustAmount(t, math.MaxUint64)))

	require.ErrorIs(t, acc.Deposit(mustAmount(t, 1)), ErrOverflow)
	require.Equal(t, uint64(math.MaxUint64), acc.Balance().Uint64())
	require.Len(t, acc.Ledger(), 1)
}

func TestUserAccount_Transfer(t *testing.T) {
	x := NewUserAccount(1)
	y := NewUserAccount(2)
	require.NoError(t, x.Deposit(mustAmount(t, 80)))
	require.NoError(t, y.Deposit(mustAmount(t, 5)))

	require.NoError(t, x.Transfer(y, mustAmount(t, 30)))

	require.Equal(t, uint64(50), x.Balance().Uint64())
	require.Equal(t, uint64(35), y.Balance().Uint64())

	xl, yl := x.Ledger(), y.Ledger()
	require.Len(t, xl, 2)
	require.Len(t, yl, 2)
	require.Equal(t, xl[1], yl[1])

	from, ok := xl[1].Source()
	require.True(t, ok)
	require.Equal(t, AccountID(1), from)
	to, ok := xl[1].Destination()
	require.True(t, ok)
	require.Equal(t, AccountID(2), to)
	require.Equal(t, KindTransfer, xl[1].Kind)
}

func TestUserAccount_TransferFailuresLeaveBothUntouched(t *testing.T) {
	x := NewUserAccount(1)
	y := NewUserAccount(2)
	require.NoError(t, x.Deposit(mustAmount(t, 10)))
	require.NoError(t, y.Deposit(mustAmount(t, math.MaxUint64-5)))

	cases := []struct {
		name   string
		target *UserAccount
		amount Amount
		want   error
	}{
		{"self", x, mustAmount(t, 1), ErrCannotTransferToSelf},
		{"zero", y, Zero(), ErrInvalidAmount},
		{"insufficient", y, mustAmount(t, 11), ErrInsufficientFunds},
		{"target overflow", y, mustAmount(t, 6), ErrOverflow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			xBefore, yBefore := x.clone(), y.clone()

			require.ErrorIs(t, x.Transfer(tc.target, tc.amount), tc.want)

			require.Equal(t, xBefore, x.clone())
			require.Equal(t, yBefore, y.clone())
		})
	}
}

func TestUserAccount_LedgerIsDetached(t *testing.T) {
	x := NewUserAccount(1)
	y := NewUserAccount(2)
	require.NoError(t, x.Deposit(mustAmount(t, 10)))
	require.NoError(t, x.Transfer(y, mustAmount(t, 4)))

	got := x.Ledger()
	*got[1].To = 99
	got[0] = Transaction{}

	to, _ := x.Ledger()[1].Destination()
	require.Equal(t, AccountID(2), to)
	require.Equal(t, KindDeposit, x.Ledger()[0].Kind)
}
