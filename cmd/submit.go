package cmd

import (
	"encoding/json"
	"fmt"

	"ledger/internal/api"
	"ledger/internal/model"
	"ledger/internal/repo"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSubmitCommand() *cobra.Command {
	var msg model.TransactionMessage

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Publish one transaction request to the Pub/Sub topic",
		Example: `  ledger submit --kind deposit --user 1 --amount 100
  ledger submit --kind transfer --user 1 --target 2 --amount 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			// Reject locally what the consumer would drop as malformed.
			if _, err := api.DecodeMessage(data); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ps, err := repo.NewPubSubClient(cfg, zap.NewNop())
			if err != nil {
				return err
			}
			defer ps.Close()

			if err := ps.Publish(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %s\n", data)
			return nil
		},
	}

	cmd.Flags().StringVar(&msg.Kind, "kind", "", "deposit, withdraw or transfer")
	cmd.Flags().Int64Var(&msg.UserID, "user", 0, "initiating account id")
	cmd.Flags().Int64Var(&msg.TargetID, "target", 0, "destination account id (transfer only)")
	cmd.Flags().Uint64Var(&msg.Amount, "amount", 0, "amount in minor units")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
