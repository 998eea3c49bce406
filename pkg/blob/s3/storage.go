package s3

import (
	"context"
	"io"

	"github.com/bornholm/collagio/pkg/blob"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Storage struct {
	client *minio.Client
	bucket string
}

// Put implements blob.Storage.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Get implements blob.Storage.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, blob.Info, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, blob.Info{}, errors.WithStack(blob.ErrNotFound)
		}

		return nil, blob.Info{}, errors.WithStack(err)
	}

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, blob.Info{}, errors.WithStack(err)
	}

	info := blob.Info{
		Key:         key,
		Size:        stat.Size,
		ContentType: stat.ContentType,
		ModTime:     stat.LastModified,
	}

	return object, info, nil
}

// Delete implements blob.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// List implements blob.Storage.
func (s *Storage) List(ctx context.Context, prefix string) ([]blob.Info, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	infos := make([]blob.Info, 0)

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, errors.WithStack(object.Err)
		}

		infos = append(infos, blob.Info{
			Key:         object.Key,
			Size:        object.Size,
			ContentType: object.ContentType,
			ModTime:     object.LastModified,
		})
	}

	return infos, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func NewStorage(client *minio.Client, bucket string) *Storage {
	return &Storage{
		client: client,
		bucket: bucket,
	}
}

var _ blob.Storage = &Storage{}
