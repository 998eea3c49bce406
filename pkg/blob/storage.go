package blob

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrSchemeNotFound = errors.New("scheme not found")
	ErrNotSupported   = errors.New("not supported")
)

type Type string

// Info describes a stored blob.
type Info struct {
	Key         string
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Storage stores media blobs (logos, gallery images) under flat keys.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, Info, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Info, error)
}

type StorageFactory func(options any) (Storage, error)

var registry = map[Type]StorageFactory{}

func Register(storageType Type, factory StorageFactory) {
	registry[storageType] = factory
}

func New(storageType Type, options any) (Storage, error) {
	factory, exists := registry[storageType]
	if !exists {
		return nil, errors.Wrapf(ErrSchemeNotFound, "could not find storage factory associated with type '%s'", storageType)
	}

	storage, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return storage, nil
}

func Registered() []Type {
	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}
