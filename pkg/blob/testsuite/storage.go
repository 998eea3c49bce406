package testsuite

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/collagio/pkg/blob"
	"github.com/pkg/errors"
)

type storageTestCase struct {
	Name string
	Run  func(ctx context.Context, storage blob.Storage) error
}

var storageTestCases = []storageTestCase{
	{
		Name: "PutThenGet",
		Run:  PutThenGet,
	},
	{
		Name: "Overwrite",
		Run:  Overwrite,
	},
	{
		Name: "GetMissing",
		Run:  GetMissing,
	},
	{
		Name: "Delete",
		Run:  Delete,
	},
	{
		Name: "ListPrefix",
		Run:  ListPrefix,
	},
}

func TestStorage(t *testing.T, storageType blob.Type, opts any) {
	t.Logf("Using storage '%s'", storageType)

	storage, err := blob.New(storageType, opts)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, tc := range storageTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := tc.Run(ctx, storage); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func PutThenGet(ctx context.Context, storage blob.Storage) error {
	data := []byte("fake png bytes")

	if err := storage.Put(ctx, "logos/eng.png", bytes.NewReader(data), int64(len(data)), "image/png"); err != nil {
		return errors.WithStack(err)
	}

	reader, info, err := storage.Get(ctx, "logos/eng.png")
	if err != nil {
		return errors.WithStack(err)
	}

	defer reader.Close()

	retrieved, err := io.ReadAll(reader)
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := string(data), string(retrieved); e != g {
		return errors.Errorf("retrieved content: expected '%s', got '%s'", e, g)
	}

	if e, g := int64(len(data)), info.Size; e != g {
		return errors.Errorf("info.Size: expected '%d', got '%d'", e, g)
	}

	if !strings.HasPrefix(info.ContentType, "image/png") {
		return errors.Errorf("info.ContentType: expected image/png, got '%s'", info.ContentType)
	}

	return nil
}

func Overwrite(ctx context.Context, storage blob.Storage) error {
	first := []byte("first version")
	second := []byte("second version, longer")

	if err := storage.Put(ctx, "logos/overwrite.png", bytes.NewReader(first), int64(len(first)), "image/png"); err != nil {
		return errors.WithStack(err)
	}

	if err := storage.Put(ctx, "logos/overwrite.png", bytes.NewReader(second), int64(len(second)), "image/png"); err != nil {
		return errors.WithStack(err)
	}

	reader, _, err := storage.Get(ctx, "logos/overwrite.png")
	if err != nil {
		return errors.WithStack(err)
	}

	defer reader.Close()

	retrieved, err := io.ReadAll(reader)
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := string(second), string(retrieved); e != g {
		return errors.Errorf("retrieved content: expected '%s', got '%s'", e, g)
	}

	return nil
}

func GetMissing(ctx context.Context, storage blob.Storage) error {
	if _, _, err := storage.Get(ctx, "does/not/exist.png"); !errors.Is(err, blob.ErrNotFound) {
		return errors.Errorf("expected blob.ErrNotFound, got '%v'", err)
	}

	return nil
}

func Delete(ctx context.Context, storage blob.Storage) error {
	data := []byte("short lived")

	if err := storage.Put(ctx, "tmp/deleted.bin", bytes.NewReader(data), int64(len(data)), "application/octet-stream"); err != nil {
		return errors.WithStack(err)
	}

	if err := storage.Delete(ctx, "tmp/deleted.bin"); err != nil {
		return errors.WithStack(err)
	}

	if _, _, err := storage.Get(ctx, "tmp/deleted.bin"); !errors.Is(err, blob.ErrNotFound) {
		return errors.Errorf("expected blob.ErrNotFound after delete, got '%v'", err)
	}

	// Deleting a missing key is a no-op
	if err := storage.Delete(ctx, "tmp/deleted.bin"); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func ListPrefix(ctx context.Context, storage blob.Storage) error {
	keys := []string{"galleries/1/a.jpg", "galleries/1/b.jpg", "galleries/2/c.jpg"}

	for _, key := range keys {
		data := []byte("image " + key)
		if err := storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "image/jpeg"); err != nil {
			return errors.WithStack(err)
		}
	}

	infos, err := storage.List(ctx, "galleries/1/")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := 2, len(infos); e != g {
		return errors.Errorf("len(infos): expected '%d', got '%d'", e, g)
	}

	for _, info := range infos {
		if !strings.HasPrefix(info.Key, "galleries/1/") {
			return errors.Errorf("unexpected key '%s'", info.Key)
		}
	}

	return nil
}
