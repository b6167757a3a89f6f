package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"ledger/config"
	"ledger/internal/ledger"
	"ledger/internal/model"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *PostgresReportRepo {
	dsn := os.Getenv("LEDGER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LEDGER_TEST_DATABASE_URL not set")
	}
	db, err := NewPostgresDB(&config.Config{Database: config.DatabaseConfig{URL: dsn}})
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo := &PostgresReportRepo{db: db}
	require.NoError(t, repo.EnsureSchema(ctx))
	_, err = db.ExecContext(ctx, `TRUNCATE ledger_records`)
	require.NoError(t, err)
	return repo
}

func TestInsertRecords_Transfer(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	r, err := ledger.NewRegistry(1, 2)
	require.NoError(t, err)
	require.NoError(t, r.Apply(1, ledger.Deposit{Amount: 100}))
	require.NoError(t, r.Apply(1, ledger.Transfer{TargetID: 2, Amount: 40}))

	l1, err := r.Ledger(1)
	require.NoError(t, err)
	l2, err := r.Ledger(2)
	require.NoError(t, err)

	err = repo.InsertRecords(ctx, []model.LedgerRecord{
		{AccountID: 1, Seq: 0, EventID: "e1", Transaction: l1[0]},
		{AccountID: 1, Seq: 1, EventID: "e2", Transaction: l1[1]},
		{AccountID: 2, Seq: 0, EventID: "e2", Transaction: l2[0]},
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_records`).Scan(&count))
	require.Equal(t, 3, count)
}

func TestInsertRecords_DuplicateRollsBack(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	amount, err := ledger.NewAmount(5)
	require.NoError(t, err)
	to := ledger.AccountID(1)
	tx := ledger.Transaction{Kind: ledger.KindDeposit, To: &to, Amount: amount}

	err = repo.InsertRecords(ctx, []model.LedgerRecord{
		{AccountID: 1, Seq: 0, EventID: "e1", Transaction: tx},
		{AccountID: 1, Seq: 0, EventID: "e1", Transaction: tx},
	})
	require.Error(t, err)

	var count int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_records`).Scan(&count))
	require.Equal(t, 0, count)
}
