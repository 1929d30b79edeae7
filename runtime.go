// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"code.hybscloud.com/iox"
)

// Runtime dispatches effect requests to registered handlers and delivers one
// correlated result per request, in completion order.
//
// A Runtime is confined to one goroutine, the application's logical thread:
// Submit, Poll, Await, InFlight and Pending must all be called from it.
// Handlers run on their own goroutines and hand their results back through
// a buffered channel; the in-flight set is never touched by them.
type Runtime struct {
	reg      *Registry
	ctx      context.Context
	logger   *slog.Logger
	inflight map[CorrelationID]struct{}
	ready    []EffectResult
	done     chan EffectResult
}

// NewRuntime returns a runtime that owns reg. The registry is sealed:
// further registrations fail with [ErrRegistrySealed].
func NewRuntime(reg *Registry, opts ...Option) *Runtime {
	o := buildOptions(opts)
	return newRuntime(reg, o)
}

func newRuntime(reg *Registry, o options) *Runtime {
	if reg == nil {
		reg = NewRegistry()
	}
	reg.seal()
	return &Runtime{
		reg:      reg,
		ctx:      o.ctx,
		logger:   o.logger,
		inflight: make(map[CorrelationID]struct{}),
		done:     make(chan EffectResult, o.resultBuffer),
	}
}

// Submit dispatches req and returns without waiting for the handler.
//
// A request whose id is still in flight yields a [DuplicateCorrelation]
// failure; the earlier request is unaffected. A request with no registered
// handler yields an [UnknownOperation] failure without invoking any handler.
// Both failures are delivered by the next Poll or Await.
func (rt *Runtime) Submit(req EffectRequest) {
	if _, live := rt.inflight[req.ID]; live {
		rt.logger.Warn("duplicate correlation id",
			"id", req.ID, "kind", req.Kind, "operation", req.Operation)
		rt.ready = append(rt.ready, failed(req, DuplicateCorrelation,
			fmt.Sprintf("correlation id %d is already in flight", req.ID), nil))
		return
	}
	h, ok := rt.reg.Resolve(req.Kind, req.Operation)
	if !ok {
		rt.logger.Warn("unknown operation", "id", req.ID, "kind", req.Kind, "operation", req.Operation)
		rt.ready = append(rt.ready, failed(req, UnknownOperation, "no handler registered", nil))
		return
	}
	rt.inflight[req.ID] = struct{}{}
	rt.logger.Debug("dispatch", "id", req.ID, "kind", req.Kind, "operation", req.Operation)
	go func() {
		rt.done <- rt.invoke(h, req)
	}()
}

// invoke runs h on the calling goroutine and converts every way it can end
// into an EffectResult.
func (rt *Runtime) invoke(h Handler, req EffectRequest) (res EffectResult) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("handler panic",
				"id", req.ID, "kind", req.Kind, "operation", req.Operation,
				"panic", r, "stack", string(debug.Stack()))
			res = failed(req, HandlerFailure, fmt.Sprintf("panic: %v", r), fmt.Errorf("panic: %v", r))
		}
	}()
	v, err := h.Handle(rt.ctx, req.Args)
	if err != nil {
		return failed(req, HandlerFailure, err.Error(), err)
	}
	return succeeded(req, v)
}

// Poll returns the next available result without blocking.
// Returns [iox.ErrWouldBlock] when no result is ready.
func (rt *Runtime) Poll() (EffectResult, error) {
	if r, ok := rt.popReady(); ok {
		return r, nil
	}
	select {
	case r := <-rt.done:
		return rt.deliver(r), nil
	default:
		return EffectResult{}, iox.ErrWouldBlock
	}
}

// Await blocks until the next result is available or ctx is done.
// Returns [ErrIdle] when nothing is pending, since no result could arrive.
func (rt *Runtime) Await(ctx context.Context) (EffectResult, error) {
	if r, ok := rt.popReady(); ok {
		return r, nil
	}
	if len(rt.inflight) == 0 {
		return EffectResult{}, ErrIdle
	}
	select {
	case r := <-rt.done:
		return rt.deliver(r), nil
	case <-ctx.Done():
		return EffectResult{}, ctx.Err()
	}
}

// InFlight returns the number of requests awaiting delivery.
func (rt *Runtime) InFlight() int { return len(rt.inflight) }

// Pending reports whether id is in flight.
func (rt *Runtime) Pending(id CorrelationID) bool {
	_, ok := rt.inflight[id]
	return ok
}

// Registry returns the sealed registry.
func (rt *Runtime) Registry() *Registry { return rt.reg }

func (rt *Runtime) popReady() (EffectResult, bool) {
	if len(rt.ready) == 0 {
		return EffectResult{}, false
	}
	r := rt.ready[0]
	rt.ready[0] = EffectResult{}
	rt.ready = rt.ready[1:]
	return r, true
}

// deliver removes r's id from the in-flight set as it is handed out.
func (rt *Runtime) deliver(r EffectResult) EffectResult {
	delete(rt.inflight, r.ID)
	if f, ok := r.Failure(); ok {
		rt.logger.Debug("complete", "id", r.ID, "kind", r.Kind, "operation", r.Operation, "failure", f.Error())
	} else {
		rt.logger.Debug("complete", "id", r.ID, "kind", r.Kind, "operation", r.Operation)
	}
	return r
}
