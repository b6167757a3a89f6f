package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"ledger/internal/ledger"
	"ledger/internal/model"
	"ledger/internal/repo"
	"ledger/internal/utils"

	"go.uber.org/zap"
)

type LedgerService interface {
	OpenAccounts(ctx context.Context, in model.OpenAccountsInput) (*model.OpenAccountsOutput, error)
	Apply(ctx context.Context, in model.ApplyInput) (*model.ApplyOutput, error)
	GetBalance(ctx context.Context, in model.GetBalanceInput) (*model.GetBalanceOutput, error)
	ListTransactions(ctx context.Context, in model.ListTransactionsInput) (*model.ListTransactionsOutput, error)
}

// ledgerService serializes every operation on the registry behind one lock.
// Transfers touch two accounts, so per-account locking is not used.
type ledgerService struct {
	mu       sync.Mutex
	registry *ledger.Registry

	kafka   repo.Kafka
	cache   repo.BalanceCache
	reports repo.ReportRepository
	log     *zap.Logger
}

func NewLedgerService(kafka repo.Kafka, cache repo.BalanceCache, reports repo.ReportRepository, log *zap.Logger) LedgerService {
	r, _ := ledger.NewRegistry()
	return &ledgerService{
		registry: r,
		kafka:    kafka,
		cache:    cache,
		reports:  reports,
		log:      log.Named("ledger"),
	}
}

func (s *ledgerService) OpenAccounts(ctx context.Context, in model.OpenAccountsInput) (*model.OpenAccountsOutput, error) {
	if err := utils.ValidateAccountIDs(in.AccountIDs); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := &model.OpenAccountsOutput{}
	for _, raw := range in.AccountIDs {
		id := ledger.AccountID(raw)
		err := s.registry.Register(id)
		if errors.Is(err, ledger.ErrAccountExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out.Opened = append(out.Opened, id)
	}

	s.log.Info("accounts opened", zap.Int("opened", len(out.Opened)), zap.Int("total", s.registry.Len()))
	return out, nil
}

func (s *ledgerService) Apply(ctx context.Context, in model.ApplyInput) (*model.ApplyOutput, error) {
	event, records, err := s.apply(in)
	if err != nil {
		out := &model.ApplyOutput{Success: false, ErrorMessage: err.Error()}
		var txErr ledger.TxError
		if errors.As(err, &txErr) {
			out.ErrorCode = txErr.Code()
		}
		s.log.Info("transaction rejected",
			zap.Uint64("user_id", uint64(in.UserID)),
			zap.String("kind", kindOf(in.Request)),
			zap.String("code", out.ErrorCode),
		)
		return out, err
	}

	s.log.Info("transaction applied",
		zap.String("event_id", event.ID),
		zap.Uint64("user_id", uint64(in.UserID)),
		zap.String("kind", string(event.Kind)),
		zap.Stringer("amount", event.Amount),
	)

	// Published after the registry is updated; failures here do not undo it.
	s.publish(ctx, event, records)

	return &model.ApplyOutput{Success: true, EventID: event.ID}, nil
}

func (s *ledgerService) apply(in model.ApplyInput) (*model.LedgerEvent, []model.LedgerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Request = ledger.Normalize(in.Request)
	if err := ledger.ApplyTransaction(s.registry, in.UserID, in.Request); err != nil {
		return nil, nil, err
	}

	participants := []ledger.AccountID{in.UserID}
	if t, ok := in.Request.(ledger.Transfer); ok {
		participants = append(participants, t.TargetID)
	}

	event := &model.LedgerEvent{
		ID:       utils.NewEventID(),
		UserID:   in.UserID,
		Balances: make(map[ledger.AccountID]uint64, len(participants)),
	}
	records := make([]model.LedgerRecord, 0, len(participants))
	for _, id := range participants {
		acc, _ := s.registry.Account(id)
		history := acc.Ledger()
		last := history[len(history)-1]

		event.Balances[id] = acc.Balance().Uint64()
		records = append(records, model.LedgerRecord{
			AccountID:   id,
			Seq:         len(history) - 1,
			EventID:     event.ID,
			Transaction: last,
		})
	}

	tx := records[0].Transaction
	event.Kind, event.From, event.To, event.Amount = tx.Kind, tx.From, tx.To, tx.Amount
	return event, records, nil
}

func (s *ledgerService) publish(ctx context.Context, event *model.LedgerEvent, records []model.LedgerRecord) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("encode event", zap.String("event_id", event.ID), zap.Error(err))
	} else if err := s.kafka.Publish(ctx, strconv.FormatUint(uint64(event.UserID), 10), string(payload)); err != nil {
		s.log.Warn("publish event failed", zap.String("event_id", event.ID), zap.Error(err))
	}

	if err := s.cache.SetBalances(ctx, event.Balances); err != nil {
		s.log.Warn("cache balances failed", zap.String("event_id", event.ID), zap.Error(err))
	}

	if err := s.reports.InsertRecords(ctx, records); err != nil {
		s.log.Warn("export records failed", zap.String("event_id", event.ID), zap.Error(err))
	}
}

func (s *ledgerService) GetBalance(ctx context.Context, in model.GetBalanceInput) (*model.GetBalanceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.registry.Balance(in.UserID)
	if err != nil {
		return nil, err
	}
	return &model.GetBalanceOutput{UserID: in.UserID, Balance: balance}, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, in model.ListTransactionsInput) (*model.ListTransactionsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.registry.Ledger(in.UserID)
	if err != nil {
		return nil, err
	}
	return &model.ListTransactionsOutput{
		Number:       int64(len(txs)),
		Transactions: txs,
	}, nil
}

func kindOf(req ledger.Request) string {
	req = ledger.Normalize(req)
	if req == nil {
		return ""
	}
	return string(req.Kind())
}
