package theme

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
	"github.com/kartikm76/middleoffice-ibor/internal/storage/badger"
)

func openStore(t *testing.T, path string) interfaces.StorageManager {
	t.Helper()
	m, err := badger.NewManager(common.NewSilentLogger(), &config.BadgerConfig{Path: path})
	require.NoError(t, err)
	return m
}

func TestParse(t *testing.T) {
	th, err := Parse(" Light ")
	require.NoError(t, err)
	assert.Equal(t, Light, th)

	_, err = Parse("sepia")
	assert.Error(t, err)
}

func TestService_DefaultsToDark(t *testing.T) {
	m := openStore(t, filepath.Join(t.TempDir(), "prefs"))
	defer m.Close()

	svc := NewService(context.Background(), m.KeyValueStorage(), common.NewSilentLogger())
	assert.Equal(t, Dark, svc.Current())
}

func TestService_ToggleSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")
	ctx := context.Background()

	m := openStore(t, path)
	svc := NewService(ctx, m.KeyValueStorage(), common.NewSilentLogger())

	got, err := svc.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, got)
	require.NoError(t, m.Close())

	// Simulated reload: a fresh process opens the same store.
	m = openStore(t, path)
	defer m.Close()
	reloaded := NewService(ctx, m.KeyValueStorage(), common.NewSilentLogger())
	assert.Equal(t, Light, reloaded.Current())

	got, err = reloaded.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	raw, err := m.KeyValueStorage().Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)
}

func TestService_InvalidStoredValue(t *testing.T) {
	m := openStore(t, filepath.Join(t.TempDir(), "prefs"))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.KeyValueStorage().Set(ctx, StorageKey, "purple"))
	svc := NewService(ctx, m.KeyValueStorage(), common.NewSilentLogger())
	assert.Equal(t, Dark, svc.Current())
}

func TestService_SetRejectsUnknown(t *testing.T) {
	m := openStore(t, filepath.Join(t.TempDir(), "prefs"))
	defer m.Close()
	ctx := context.Background()

	svc := NewService(ctx, m.KeyValueStorage(), common.NewSilentLogger())
	assert.Error(t, svc.Set(ctx, Theme("sepia")))
	assert.Equal(t, Dark, svc.Current())
}

type failingKV struct{ interfaces.KeyValueStorage }

func (failingKV) Get(context.Context, string) (string, error) { return "", errors.New("disk gone") }
func (failingKV) Set(context.Context, string, string) error   { return errors.New("disk gone") }

func TestService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, failingKV{}, common.NewSilentLogger())
	assert.Equal(t, Dark, svc.Current())

	got, err := svc.Toggle(ctx)
	assert.Error(t, err)
	assert.Equal(t, Dark, got, "failed write keeps the previous theme")
}

// slowKV holds each write long enough for concurrent toggles to overlap.
type slowKV struct {
	mu    sync.Mutex
	value string
}

func (k *slowKV) Get(context.Context, string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.value, nil
}

func (k *slowKV) Set(_ context.Context, _ string, v string) error {
	time.Sleep(5 * time.Millisecond)
	k.mu.Lock()
	defer k.mu.Unlock()
	k.value = v
	return nil
}

func TestService_ConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	kv := &slowKV{}
	svc := NewService(ctx, kv, common.NewSilentLogger())

	const n = 10
	results := make(chan Theme, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Toggle(ctx)
			assert.NoError(t, err)
			results <- got
		}()
	}
	wg.Wait()
	close(results)

	counts := map[Theme]int{}
	for th := range results {
		counts[th]++
	}
	assert.Equal(t, n/2, counts[Light], "each toggle must see the previous one")
	assert.Equal(t, n/2, counts[Dark])
	assert.Equal(t, Dark, svc.Current())
	assert.Equal(t, "dark", kv.value)
}
