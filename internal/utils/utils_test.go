package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAccountID(t *testing.T) {
	require.NoError(t, ValidateAccountID(1))
	require.Error(t, ValidateAccountID(0))
	require.Error(t, ValidateAccountID(-4))
}

func TestValidateAccountIDs(t *testing.T) {
	require.NoError(t, ValidateAccountIDs([]uint64{1, 2, 3}))
	require.ErrorContains(t, ValidateAccountIDs([]uint64{1, 0}), "greater than 0")
	require.ErrorContains(t, ValidateAccountIDs([]uint64{4, 4}), "duplicate")
	require.NoError(t, ValidateAccountIDs([]uint64{math.MaxInt64}))
	require.ErrorContains(t, ValidateAccountIDs([]uint64{math.MaxInt64 + 1}), "must not exceed")
}

func TestNewEventID(t *testing.T) {
	require.NoError(t, InitSnowflake(7))
	a, b := NewEventID(), NewEventID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)

	require.Error(t, InitSnowflake(-1))
}
