// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package boot

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"

	"code.hybscloud.com/port"
	"code.hybscloud.com/port/clock"
)

// Instance is a started host with everything it owns.
type Instance struct {
	Host   *port.Host
	Flags  Flags
	Logger *slog.Logger

	closer io.Closer
}

// Close releases the instance's store.
func (in *Instance) Close() error { return in.closer.Close() }

// Start builds the registry and host described by cfg. Handlers see ctx.
// A nil history starts an in-memory history at cfg.InitialURL.
// Logs go to w; a nil w discards them.
func Start(ctx context.Context, cfg Config, history port.History, w io.Writer) (*Instance, error) {
	if w == nil {
		w = io.Discard
	}
	logger, err := NewLogger(cfg.Log, w)
	if err != nil {
		return nil, err
	}
	if history == nil {
		h, err := port.NewMemoryHistory(cfg.InitialURL)
		if err != nil {
			return nil, err
		}
		history = h
	}
	flags, err := NewFlags(cfg, rand.Reader, clock.Real)
	if err != nil {
		return nil, err
	}
	reg, closer, err := NewRegistry(cfg, logger)
	if err != nil {
		closer.Close()
		return nil, err
	}
	host := port.NewHost(reg, history,
		port.WithContext(ctx),
		port.WithLogger(logger),
		port.WithResultBuffer(cfg.Runtime.ResultBuffer),
		port.WithTraversalCapacity(cfg.Runtime.TraversalCapacity),
	)
	logger.Info("host started", "initial_url", flags.InitialURL, "kinds", reg.Kinds())
	return &Instance{Host: host, Flags: flags, Logger: logger, closer: closer}, nil
}
