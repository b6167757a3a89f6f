package interceptor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger/internal/ledger"
	"ledger/internal/repo"

	"go.uber.org/zap"
)

type Interceptor func(next repo.MessageHandler) repo.MessageHandler

// Chain wraps h so that the first interceptor is the outermost.
func Chain(h repo.MessageHandler, interceptors ...Interceptor) repo.MessageHandler {
	for i := len(interceptors) - 1; i >= 0; i-- {
		h = interceptors[i](h)
	}
	return h
}

func Logging(log *zap.Logger) Interceptor {
	return func(next repo.MessageHandler) repo.MessageHandler {
		return func(ctx context.Context, data []byte) error {
			start := time.Now()
			err := next(ctx, data)

			fields := []zap.Field{
				zap.Duration("duration", time.Since(start)),
				zap.Int("bytes", len(data)),
			}
			var txErr ledger.TxError
			switch {
			case err == nil:
				log.Debug("message handled", fields...)
			case errors.As(err, &txErr):
				log.Info("message rejected", append(fields, zap.String("code", txErr.Code()))...)
			default:
				log.Warn("message failed", append(fields, zap.Error(err))...)
			}
			return err
		}
	}
}

// Recover converts a panic in the handler into an error so one bad message
// does not stop the consumer.
func Recover(log *zap.Logger) Interceptor {
	return func(next repo.MessageHandler) repo.MessageHandler {
		return func(ctx context.Context, data []byte) (err error) {
			defer func() {
				if p := recover(); p != nil {
					log.Error("handler panic", zap.Any("panic", p), zap.Stack("stack"))
					err = fmt.Errorf("handler panic: %v", p)
				}
			}()
			return next(ctx, data)
		}
	}
}
