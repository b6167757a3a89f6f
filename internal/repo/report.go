package repo

import (
	"context"
	"database/sql"
	"fmt"

	"ledger/config"
	"ledger/internal/model"

	_ "github.com/lib/pq"
)

// ReportRepository exports ledger history for reporting. It is write-only:
// the in-memory registry is never rebuilt from it.
type ReportRepository interface {
	EnsureSchema(ctx context.Context) error
	InsertRecords(ctx context.Context, records []model.LedgerRecord) error
}

const reportSchema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	account_id   BIGINT        NOT NULL,
	seq          INTEGER       NOT NULL,
	event_id     TEXT          NOT NULL,
	kind         TEXT          NOT NULL,
	from_account BIGINT,
	to_account   BIGINT,
	amount       NUMERIC(20,0) NOT NULL,
	PRIMARY KEY (account_id, seq)
)`

type PostgresReportRepo struct {
	db *sql.DB
}

func NewPostgresDB(config *config.Config) (*sql.DB, error) {
	if config.Database.URL == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresReportRepo returns a no-op repository when db is nil.
func NewPostgresReportRepo(db *sql.DB) ReportRepository {
	if db == nil {
		return NopReportRepo{}
	}
	return &PostgresReportRepo{db: db}
}

func (r *PostgresReportRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, reportSchema)
	return err
}

func (r *PostgresReportRepo) InsertRecords(ctx context.Context, records []model.LedgerRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, rec := range records {
		from, hasFrom := rec.Transaction.Source()
		to, hasTo := rec.Transaction.Destination()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO ledger_records (account_id, seq, event_id, kind, from_account, to_account, amount)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			int64(rec.AccountID), rec.Seq, rec.EventID, string(rec.Transaction.Kind),
			nullableID(from, hasFrom), nullableID(to, hasTo),
			// NUMERIC(20,0) column: amounts can exceed BIGINT.
			rec.Transaction.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("insert ledger record %d/%d: %w", rec.AccountID, rec.Seq, err)
		}
	}

	return tx.Commit()
}

func nullableID[T ~uint64](id T, ok bool) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: ok}
}

type NopReportRepo struct{}

func (NopReportRepo) EnsureSchema(context.Context) error { return nil }

func (NopReportRepo) InsertRecords(context.Context, []model.LedgerRecord) error { return nil }
