package setup

import (
	"context"
	"sync"

	"github.com/bornholm/collagio/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes a config-based constructor so that
// every component sharing a resource gets the same instance.
func createFromConfigOnce[T any](fn func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once  sync.Once
		value T
		fnErr error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, fnErr = fn(ctx, conf)
		})
		if fnErr != nil {
			var zero T
			return zero, errors.WithStack(fnErr)
		}

		return value, nil
	}
}
