// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"context"
	"log/slog"
)

const (
	// defaultResultBuffer is the completion channel capacity. A handler that
	// finishes while the buffer is full waits on its own goroutine.
	defaultResultBuffer = 64
	// defaultTraversalCapacity is the traversal queue capacity.
	defaultTraversalCapacity = 16
)

type options struct {
	ctx               context.Context
	logger            *slog.Logger
	resultBuffer      int
	traversalCapacity int
}

// Option configures a [Runtime], [Navigator] or [Host].
type Option func(*options)

// WithContext sets the parent context passed to every handler.
// Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger sets the structured logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithResultBuffer sets the completion channel capacity.
// When the buffer is full a finished handler's goroutine waits until the
// logical thread polls; a runtime nobody polls keeps those goroutines parked.
func WithResultBuffer(n int) Option {
	return func(o *options) { o.resultBuffer = n }
}

// WithTraversalCapacity sets the bounded traversal queue capacity,
// rounded up to a power of two.
func WithTraversalCapacity(n int) Option {
	return func(o *options) { o.traversalCapacity = n }
}

func buildOptions(opts []Option) options {
	o := options{
		ctx:               context.Background(),
		resultBuffer:      defaultResultBuffer,
		traversalCapacity: defaultTraversalCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.resultBuffer < 0 {
		o.resultBuffer = 0
	}
	o.traversalCapacity = ceilPow2(o.traversalCapacity)
	return o
}

// ceilPow2 rounds n up to a power of two, with a minimum of 2.
func ceilPow2(n int) int {
	c := 2
	for c < n {
		c <<= 1
	}
	return c
}
