package local_test

import (
	"testing"

	"github.com/bornholm/collagio/pkg/blob/local"
	"github.com/bornholm/collagio/pkg/blob/testsuite"
)

func TestStorage(t *testing.T) {
	testsuite.TestStorage(t, local.Type, map[string]any{
		"dir": t.TempDir(),
	})
}
