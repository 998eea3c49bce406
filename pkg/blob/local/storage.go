package local

import (
	"context"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bornholm/collagio/pkg/blob"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// Storage keeps blobs as plain files under a base directory.
type Storage struct {
	dir string
}

// Put implements blob.Storage.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	path, err := s.path(key)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WithStack(err)
	}

	tmp := path + ".tmp-" + xid.New().String()

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(tmp)
		return errors.WithStack(err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return errors.WithStack(err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.WithStack(err)
	}

	return nil
}

// Get implements blob.Storage.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, blob.Info, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, blob.Info{}, errors.WithStack(err)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, blob.Info{}, errors.WithStack(blob.ErrNotFound)
		}

		return nil, blob.Info{}, errors.WithStack(err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, blob.Info{}, errors.WithStack(err)
	}

	info := blob.Info{
		Key:         key,
		Size:        stat.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
		ModTime:     stat.ModTime(),
	}

	return file, info, nil
}

// Delete implements blob.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return errors.WithStack(err)
	}

	return nil
}

// List implements blob.Storage.
func (s *Storage) List(ctx context.Context, prefix string) ([]blob.Info, error) {
	infos := make([]blob.Info, 0)

	err := filepath.WalkDir(s.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}

			return errors.WithStack(err)
		}

		if d.IsDir() || strings.Contains(d.Name(), ".tmp-") {
			return nil
		}

		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return errors.WithStack(err)
		}

		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		stat, err := d.Info()
		if err != nil {
			return errors.WithStack(err)
		}

		infos = append(infos, blob.Info{
			Key:         key,
			Size:        stat.Size(),
			ContentType: mime.TypeByExtension(filepath.Ext(key)),
			ModTime:     stat.ModTime(),
		})

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return infos, nil
}

func (s *Storage) path(key string) (string, error) {
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", errors.Errorf("invalid key '%s'", key)
	}

	return filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

var _ blob.Storage = &Storage{}
