package client_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/filedrop/internal/client"
	"github.com/koustreak/filedrop/internal/filestore"
	"github.com/koustreak/filedrop/internal/filestore/local"
	"github.com/koustreak/filedrop/internal/server"
)

// newStack runs the real router over a local store in a temp dir and
// returns a client pointed at it, plus the storage root.
func newStack(t *testing.T, maxUpload string) (*client.Client, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")

	store, err := local.New(filestore.DefaultConfig(root), nil)
	require.NoError(t, err)

	srvCfg := server.DefaultConfig()
	srvCfg.MaxUploadSize = maxUpload
	handler, err := server.NewRouter(srvCfg, store, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := client.DefaultConfig()
	cfg.RootURL = srv.URL
	return client.New(cfg, nil), root
}

func writeLocal(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEndToEnd_Lifecycle(t *testing.T) {
	c, root := newStack(t, "10M")
	ctx := context.Background()
	report := writeLocal(t, "report.txt", "quarterly numbers")

	assert.Equal(t, client.NotFound, c.List(ctx).Kind)

	assert.Equal(t, client.Success, c.Upload(ctx, report).Kind)
	assert.Equal(t, client.Conflict, c.Upload(ctx, report).Kind)

	list := c.List(ctx)
	require.Equal(t, client.Success, list.Kind)
	assert.Equal(t, []string{"report.txt"}, list.Names())

	data, err := os.ReadFile(filepath.Join(root, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(data))

	assert.Equal(t, client.Success, c.Delete(ctx, "report.txt").Kind)
	assert.Equal(t, client.NotFound, c.Delete(ctx, "report.txt").Kind)
	assert.Equal(t, client.NotFound, c.List(ctx).Kind)
}

func TestEndToEnd_NamesNeedingEscapes(t *testing.T) {
	c, root := newStack(t, "10M")
	ctx := context.Background()

	for _, name := range []string{"annual report.txt", "100%.txt", "a+b#c?.txt"} {
		out := c.Upload(ctx, writeLocal(t, name, "x"))
		require.Equal(t, client.Success, out.Kind, "%s: %s", name, out.Body)

		_, err := os.Stat(filepath.Join(root, name))
		assert.NoError(t, err, name)

		assert.Equal(t, client.Success, c.Delete(ctx, name).Kind, name)
	}
}

func TestEndToEnd_TooLarge(t *testing.T) {
	c, root := newStack(t, "1KB")
	ctx := context.Background()

	out := c.Upload(ctx, writeLocal(t, "big.bin", strings.Repeat("x", 5000)))

	assert.Equal(t, client.TooLarge, out.Kind)
	assert.Contains(t, out.Message, "size limit of 1KB")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must leave nothing behind")
}

func TestEndToEnd_UploadSizeLimit(t *testing.T) {
	c, _ := newStack(t, "512KiB")

	assert.Equal(t, "512KiB", c.UploadSizeLimit(context.Background()))
}

func TestEndToEnd_ListIsSorted(t *testing.T) {
	c, _ := newStack(t, "10M")
	ctx := context.Background()

	for _, name := range []string{"b.gif", "a.txt", "c.md"} {
		require.Equal(t, client.Success, c.Upload(ctx, writeLocal(t, name, name)).Kind)
	}

	assert.Equal(t, "a.txt,b.gif,c.md", c.List(ctx).Body)
}
