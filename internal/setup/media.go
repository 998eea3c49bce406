package setup

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/pkg/blob"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

// NewMediaHandler streams stored blobs under /media/{key...}.
func NewMediaHandler(storage blob.Storage) http.Handler {
	mux := &http.ServeMux{}

	mux.HandleFunc("GET /media/{key...}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		key := r.PathValue("key")

		reader, info, err := storage.Get(ctx, key)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				http.NotFound(w, r)
				return
			}

			slog.ErrorContext(ctx, "could not retrieve blob", log.Error(errors.WithStack(err)), slog.String("key", key))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		defer reader.Close()

		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}

		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")

		if _, err := io.Copy(w, reader); err != nil {
			slog.ErrorContext(ctx, "could not stream blob", log.Error(errors.WithStack(err)), slog.String("key", key))
		}
	})

	return mux
}
