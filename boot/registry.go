// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package boot

import (
	"crypto/rand"
	"io"
	"log/slog"

	"code.hybscloud.com/port"
	"code.hybscloud.com/port/clock"
	"code.hybscloud.com/port/crypt"
	"code.hybscloud.com/port/random"
	"code.hybscloud.com/port/storage"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewStore opens the store selected by cfg. The returned closer releases it.
func NewStore(cfg StorageConfig) (storage.Store, io.Closer, error) {
	var (
		s      storage.Store = storage.NewMemoryStore()
		closer io.Closer     = nopCloser{}
	)
	if cfg.Path != "" {
		db, err := storage.OpenSQLStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		s, closer = db, db
	}
	if cfg.CacheSize > 0 {
		c, err := storage.NewCachedStore(s, cfg.CacheSize)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		s = c
	}
	return s, closer, nil
}

// NewRegistry registers every operation family: random, time, crypto and
// storage. The closer releases the store; it is valid even on error.
func NewRegistry(cfg Config, logger *slog.Logger) (*port.Registry, io.Closer, error) {
	s, closer, err := NewStore(cfg.Storage)
	if err != nil {
		return nil, nopCloser{}, err
	}
	reg := port.NewRegistry()
	families := []struct {
		kind string
		ops  map[string]port.Handler
	}{
		{random.Kind, random.Family(rand.Reader)},
		{clock.Kind, clock.Family(clock.Real)},
		{crypt.Kind, crypt.Family(rand.Reader)},
		{storage.Kind, storage.Family(s)},
	}
	for _, f := range families {
		if err := reg.Register(f.kind, f.ops); err != nil {
			return nil, closer, err
		}
		logger.Debug("registered", "kind", f.kind, "operations", len(f.ops))
	}
	return reg, closer, nil
}
