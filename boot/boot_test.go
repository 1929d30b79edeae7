// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package boot_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"code.hybscloud.com/port"
	"code.hybscloud.com/port/boot"
	"code.hybscloud.com/port/clock"
	"code.hybscloud.com/port/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := boot.LoadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/", cfg.InitialURL)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, 64, cfg.Runtime.ResultBuffer)
	assert.Equal(t, 16, cfg.Runtime.TraversalCapacity)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Storage.Path)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "port.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"initial_url: https://example.com/app\nstorage:\n  cache_size: 8\nlog:\n  level: debug\n"), 0o600))
	t.Setenv("PORT_CONFIG", path)
	t.Setenv("PORT_LOCALE", "ja-JP")
	t.Setenv("PORT_LOG_LEVEL", "warn")

	cfg, err := boot.LoadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/app", cfg.InitialURL)
	assert.Equal(t, "ja-JP", cfg.Locale)
	assert.Equal(t, 8, cfg.Storage.CacheSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigRejectsRelativeURL(t *testing.T) {
	t.Setenv("PORT_INITIAL_URL", "/relative")
	_, err := boot.LoadConfig(viper.New())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := boot.NewLogger(boot.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = boot.NewLogger(boot.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
}

func TestNewFlags(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, boot.SeedSize)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f, err := boot.NewFlags(boot.Config{InitialURL: "http://x/", Locale: "fr"}, bytes.NewReader(seed), clock.Fixed(at))
	require.NoError(t, err)
	assert.Equal(t, "http://x/", f.InitialURL)
	assert.Equal(t, "fr", f.Locale)
	assert.Equal(t, seed, f.Seed[:])
	assert.Equal(t, at, f.Now)

	_, err = boot.NewFlags(boot.Config{}, bytes.NewReader(nil), nil)
	assert.Error(t, err)
}

func TestNewStoreSelection(t *testing.T) {
	s, c, err := boot.NewStore(boot.StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, s)
	require.NoError(t, c.Close())

	s, c, err = boot.NewStore(boot.StorageConfig{Path: filepath.Join(t.TempDir(), "kv.db"), CacheSize: 4})
	require.NoError(t, err)
	cached, ok := s.(*storage.CachedStore)
	require.True(t, ok)
	assert.IsType(t, &storage.SQLStore{}, cached.Backing())
	require.NoError(t, c.Close())
}

func TestNewRegistryRegistersEveryFamily(t *testing.T) {
	cfg, err := boot.LoadConfig(viper.New())
	require.NoError(t, err)
	reg, c, err := boot.NewRegistry(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, []string{"crypto", "random", "storage", "time"}, reg.Kinds())
	assert.Contains(t, reg.Operations("storage"), "getItem")
}

func TestStartRoundTrip(t *testing.T) {
	cfg, err := boot.LoadConfig(viper.New())
	require.NoError(t, err)
	in, err := boot.Start(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	defer in.Close()

	h := in.Host
	require.NoError(t, h.Dispatch(port.PushURL{URL: "/settings"}))
	ev, err := h.Next()
	require.NoError(t, err)
	assert.Equal(t, port.NavigationEvent{Href: "http://localhost/settings"}, ev)

	id := port.NextCorrelation()
	require.NoError(t, h.Dispatch(port.EffectRequest{ID: id, Kind: storage.Kind, Operation: "setItem",
		Args: storage.SetArgs{Key: "a", Value: "b"}}))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ev, err = h.Wait(ctx)
	require.NoError(t, err)
	r, ok := ev.(port.EffectResult)
	require.True(t, ok)
	assert.Equal(t, id, r.ID)
	assert.True(t, r.OK())
}
