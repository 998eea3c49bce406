package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/collagio/internal/config"
	"github.com/bornholm/collagio/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	slog.InfoContext(ctx, "opening store", slog.String("path", string(conf.Store.Path)))

	store := store.NewStore(string(conf.Store.Path))

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
})
