package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/checklist/internal/config"
	"github.com/BuzzLyutic/checklist/internal/testutil"
)

// testBackend runs the behaviour every Backend must share.
func testBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrorNotFound)

	require.NoError(t, b.Put(ctx, "tasks", []byte(`[{"id":1}]`)))
	got, err := b.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	require.NoError(t, b.Put(ctx, "tasks", []byte(`[]`)))
	got, err = b.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	_, err = b.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrorNotFound, "keys are independent")
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	defer b.Close()
	testBackend(t, b)
}

func TestFileBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer b.Close()

	testBackend(t, b)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"tasks.json"}, names, "no temp files are left behind")
}

func TestFileBackend_PutReplacesWholeFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Put(ctx, "k", []byte(`[{"id":1,"title":"a long first value"}]`)))
	require.NoError(t, b.Put(ctx, "k", []byte(`[]`)))

	raw, err := os.ReadFile(filepath.Join(dir, "k.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestFileBackend_PutMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	err = b.Put(context.Background(), "k", []byte(`[]`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrorNotFound)
}

func TestFileBackend_CancelledContext(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Put(ctx, "k", []byte("v")), context.Canceled)
}

func TestSQLiteBackend(t *testing.T) {
	b, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "checklist.db"))
	require.NoError(t, err)
	defer b.Close()

	testBackend(t, b)
}

func TestRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := NewRedisBackend(client, "checklist:")
	defer b.Close()

	testBackend(t, b)

	raw, err := mr.Get("checklist:tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
	assert.Zero(t, mr.TTL("checklist:tasks"), "values never expire")
}

func TestPostgresBackend(t *testing.T) {
	pool, cleanup := testutil.SetupTestDB(t)
	defer cleanup()
	testutil.TruncateStore(t, pool)

	b := NewPostgresBackend(pool)
	require.NoError(t, b.EnsureSchema(context.Background()))

	testBackend(t, b)

	t.Run("missing schema", func(t *testing.T) {
		ctx := context.Background()
		_, err := pool.Exec(ctx, "DROP TABLE kv_store")
		require.NoError(t, err)

		// fresh connections, so no statement cached before the drop is reused
		fresh, err := pgxpool.NewWithConfig(ctx, pool.Config())
		require.NoError(t, err)
		bare := NewPostgresBackend(fresh)
		defer bare.Close()

		_, err = bare.Get(ctx, "tasks")
		assert.ErrorIs(t, err, ErrorSchemaMissing)
		assert.ErrorIs(t, bare.Put(ctx, "tasks", []byte(`[]`)), ErrorSchemaMissing)

		require.NoError(t, bare.EnsureSchema(ctx))
		_, err = bare.Get(ctx, "tasks")
		assert.ErrorIs(t, err, ErrorNotFound)
	})
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, store := range []string{config.StoreMemory, config.StoreFile, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			b, err := OpenBackend(ctx, config.Config{Store: store, StorePath: filepath.Join(dir, store)})
			require.NoError(t, err)
			defer b.Close()
			testBackend(t, b)
		})
	}

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		b, err := OpenBackend(ctx, config.Config{Store: config.StoreRedis, RedisAddr: mr.Addr()})
		require.NoError(t, err)
		defer b.Close()
		testBackend(t, b)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenBackend(ctx, config.Config{Store: "floppy"})
		assert.Error(t, err)
	})
}
