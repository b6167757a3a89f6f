package cmd

import (
	"bytes"
	"context"
	"testing"

	"ledger/internal/repo"
	"ledger/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunDemo(t *testing.T) {
	svc := service.NewLedgerService(repo.NopKafka{}, repo.NopBalanceCache{}, repo.NopReportRepo{}, zap.NewNop())

	var out bytes.Buffer
	require.NoError(t, runDemo(context.Background(), svc, &out))

	got := out.String()
	require.Contains(t, got, "user 1 balance 50\n  deposit(to=1,100)\n  transfer(from=1,to=2,50)\n")
	require.Contains(t, got, "user 2 balance 20\n  transfer(from=1,to=2,50)\n  withdraw(from=2,30)\n")
	require.Contains(t, got, "rejected: insufficient_funds")
	require.Contains(t, got, "rejected: cannot_transfer_to_self")
	require.Contains(t, got, "rejected: target_not_found")
	require.Contains(t, got, "rejected: user_not_found")
	require.Contains(t, got, "rejected: invalid_amount")
}
