package repo

import (
	"context"
	"fmt"
	"strconv"

	"ledger/config"
	"ledger/internal/ledger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BalanceCache mirrors current balances for read-side consumers.
type BalanceCache interface {
	SetBalances(ctx context.Context, balances map[ledger.AccountID]uint64) error
	GetBalance(ctx context.Context, id ledger.AccountID) (uint64, bool, error)
}

type redisClient struct {
	rdb *redis.Client
}

// NewRedisClient returns a no-op cache when no address is configured.
func NewRedisClient(config *config.Config, log *zap.Logger) (BalanceCache, error) {
	if config.Redis.RedisAddr == "" {
		log.Info("redis disabled: no address configured")
		return NopBalanceCache{}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.RedisAddr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &redisClient{rdb: rdb}, nil
}

func (s *redisClient) SetBalances(ctx context.Context, balances map[ledger.AccountID]uint64) error {
	pipe := s.rdb.TxPipeline()
	for id, balance := range balances {
		pipe.Set(ctx, buildBalanceKey(id), strconv.FormatUint(balance, 10), 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisClient) GetBalance(ctx context.Context, id ledger.AccountID) (uint64, bool, error) {
	val, err := s.rdb.Get(ctx, buildBalanceKey(id)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	balance, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cached balance for %d: %w", id, err)
	}
	return balance, true, nil
}

func buildBalanceKey(id ledger.AccountID) string {
	return "ledger:balance:" + strconv.FormatUint(uint64(id), 10)
}

type NopBalanceCache struct{}

func (NopBalanceCache) SetBalances(context.Context, map[ledger.AccountID]uint64) error {
	return nil
}

func (NopBalanceCache) GetBalance(context.Context, ledger.AccountID) (uint64, bool, error) {
	return 0, false, nil
}
