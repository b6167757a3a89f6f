package cmd

import (
	"context"
	"fmt"
	"io"

	"ledger/internal/ledger"
	"ledger/internal/model"
	"ledger/internal/repo"
	"ledger/internal/service"
	"ledger/pkg/logger"

	"github.com/spf13/cobra"
)

type demoStep struct {
	userID ledger.AccountID
	req    ledger.Request
}

var demoSteps = []demoStep{
	{1, ledger.Deposit{Amount: 100}},
	{1, ledger.Transfer{TargetID: 2, Amount: 50}},
	{2, ledger.Withdraw{Amount: 30}},
	// rejected: each leaves every balance and ledger unchanged
	{2, ledger.Withdraw{Amount: 500}},
	{1, ledger.Transfer{TargetID: 1, Amount: 10}},
	{1, ledger.Transfer{TargetID: 9, Amount: 10}},
	{9, ledger.Deposit{Amount: 10}},
	{1, ledger.Deposit{Amount: 0}},
}

func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a sample transaction sequence against a fresh ledger and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc := service.NewLedgerService(repo.NopKafka{}, repo.NopBalanceCache{}, repo.NopReportRepo{}, log)
			return runDemo(cmd.Context(), svc, cmd.OutOrStdout())
		},
	}
}

func runDemo(ctx context.Context, svc service.LedgerService, w io.Writer) error {
	accounts := []ledger.AccountID{1, 2}
	if _, err := svc.OpenAccounts(ctx, model.OpenAccountsInput{AccountIDs: []uint64{1, 2}}); err != nil {
		return err
	}

	for _, step := range demoSteps {
		out, _ := svc.Apply(ctx, model.ApplyInput{UserID: step.userID, Request: step.req})
		status := "ok"
		if !out.Success {
			status = "rejected: " + out.ErrorCode
		}
		fmt.Fprintf(w, "user %d %-8s %-28s %s\n", step.userID, step.req.Kind(), describe(step.req), status)
	}

	fmt.Fprintln(w)
	for _, id := range accounts {
		bal, err := svc.GetBalance(ctx, model.GetBalanceInput{UserID: id})
		if err != nil {
			return err
		}
		list, err := svc.ListTransactions(ctx, model.ListTransactionsInput{UserID: id})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "user %d balance %s\n", id, bal.Balance)
		for _, tx := range list.Transactions {
			fmt.Fprintf(w, "  %s\n", formatTransaction(tx))
		}
	}
	return nil
}

func describe(req ledger.Request) string {
	if t, ok := req.(ledger.Transfer); ok {
		return fmt.Sprintf("amount=%d target=%d", t.Amount, t.TargetID)
	}
	return fmt.Sprintf("amount=%d", req.RawAmount())
}

func formatTransaction(tx ledger.Transaction) string {
	s := string(tx.Kind) + "("
	if from, ok := tx.Source(); ok {
		s += fmt.Sprintf("from=%d,", from)
	}
	if to, ok := tx.Destination(); ok {
		s += fmt.Sprintf("to=%d,", to)
	}
	return s + tx.Amount.String() + ")"
}
