package s3_test

import (
	"context"
	"testing"

	"github.com/bornholm/collagio/pkg/blob/s3"
	"github.com/bornholm/collagio/pkg/blob/testsuite"
	"github.com/pkg/errors"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	ctx := context.Background()

	container, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("could not terminate container: %+v", errors.WithStack(err))
		}
	})

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	testsuite.TestStorage(t, s3.Type, map[string]any{
		"endpoint":        endpoint,
		"bucket":          "collagio-test",
		"accessKeyId":     container.Username,
		"secretAccessKey": container.Password,
		"useSsl":          false,
		"createBucket":    true,
	})
}
