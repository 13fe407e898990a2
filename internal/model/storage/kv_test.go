package storage

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sqlitePath string

func (p sqlitePath) Path() string { return string(p) }

func newTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(sqlitePath(filepath.Join(t.TempDir(), "kv.db")), 50)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func kvBackends(t *testing.T) map[string]KVStore {
	return map[string]KVStore{
		"memory":       NewInMemStorage(),
		"sqlite":       newTestSQLite(t),
		"instrumented": WithMetrics("memory", NewInMemStorage()),
	}
}

func Test_KVStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(ctx, "k", "v1"))
			require.NoError(t, kv.Set(ctx, "k", "v2"))
			v, found, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Remove(ctx, "k"))
			require.NoError(t, kv.Remove(ctx, "k"))
			_, found, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func Test_KVStore_UpdateShouldSeeCurrentValue(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			err := kv.Update(ctx, "counter", func(old string, found bool) (string, error) {
				assert.False(t, found)
				return "1", nil
			})
			require.NoError(t, err)

			err = kv.Update(ctx, "counter", func(old string, found bool) (string, error) {
				assert.True(t, found)
				assert.Equal(t, "1", old)
				return "2", nil
			})
			require.NoError(t, err)

			v, _, err := kv.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, "2", v)
		})
	}
}

func Test_KVStore_UpdateShouldAbortOnCallbackError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", "keep"))
			err := kv.Update(ctx, "k", func(string, bool) (string, error) { return "", boom })
			assert.True(t, errors.Is(err, boom))

			v, _, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "keep", v)
		})
	}
}

func Test_KVStore_ConcurrentUpdatesShouldNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	const writers = 8

	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- kv.Update(ctx, "counter", func(old string, found bool) (string, error) {
						n := 0
						if found {
							n, _ = strconv.Atoi(old)
						}
						return strconv.Itoa(n + 1), nil
					})
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			v, _, err := kv.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(writers), v)
		})
	}
}
