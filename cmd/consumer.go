package cmd

import (
	"context"
	"database/sql"
	"errors"

	"ledger/config"
	"ledger/internal/api"
	"ledger/internal/model"
	"ledger/internal/repo"
	"ledger/internal/service"
	"ledger/internal/utils"
	"ledger/pkg/interceptor"
	"ledger/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func NewConsumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Apply transaction requests from Google Pub/Sub",
		Run: func(cmd *cobra.Command, args []string) {
			app := fx.New(
				fx.Provide(
					loadConfig,
					logger.NewLogger,
					repo.NewKafkaWriter,
					repo.NewRedisClient,
					repo.NewPostgresDB,
					repo.NewPostgresReportRepo,
					repo.NewPubSubClient,
					service.NewLedgerService,
					api.NewLedgerHandler,
				),
				fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: log.Named("fx")}
				}),
				fx.Invoke(RegisterLedgerConsumer),
			)
			app.Run()
		},
	}
}

type consumerParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *config.Config
	Log        *zap.Logger
	Service    service.LedgerService
	Handler    *api.LedgerHandler
	PubSub     repo.PubSubInterface
	Kafka      repo.Kafka
	Reports    repo.ReportRepository
	DB         *sql.DB
}

func RegisterLedgerConsumer(p consumerParams) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	handler := interceptor.Chain(p.Handler.HandleMessage,
		interceptor.Recover(p.Log),
		interceptor.Logging(p.Log.Named("consumer")),
	)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if err := utils.InitSnowflake(p.Config.Ledger.NodeID); err != nil {
				return err
			}
			if err := p.Reports.EnsureSchema(startCtx); err != nil {
				return err
			}
			if _, err := p.Service.OpenAccounts(startCtx, model.OpenAccountsInput{AccountIDs: p.Config.Ledger.Accounts}); err != nil {
				return err
			}

			go func() {
				defer close(done)
				if err := p.PubSub.Subscribe(ctx, handler); err != nil {
					p.Log.Error("consumer error", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			p.Log.Info("stopping consumer")
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			errs := []error{p.PubSub.Close(), p.Kafka.Close()}
			if p.DB != nil {
				errs = append(errs, p.DB.Close())
			}
			_ = p.Log.Sync()
			return errors.Join(errs...)
		},
	})
}
