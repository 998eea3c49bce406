package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/collagio/internal/config"
	"github.com/bornholm/collagio/pkg/blob"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"

	_ "github.com/bornholm/collagio/pkg/blob/local"
	_ "github.com/bornholm/collagio/pkg/blob/s3"
)

var NewBlobStorageFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (blob.Storage, error) {
	storageType := blob.Type(conf.Storage.Type)

	attrs := []any{slog.String("type", string(storageType))}
	if endpoint, ok := conf.Storage.Options.Data["endpoint"].(string); ok {
		attrs = append(attrs, log.ScrubbedURL("endpoint", endpoint))
	}

	slog.InfoContext(ctx, "configuring media storage", attrs...)

	storage, err := blob.New(storageType, conf.Storage.Options.Data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return storage, nil
})
