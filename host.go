// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"context"

	"code.hybscloud.com/iox"
)

// Host is the boundary between the application core and its environment.
// Commands go in through Dispatch; events come out through Next or Wait.
//
// A Host, its Runtime and its Navigator share nothing but the logical
// thread they are confined to.
type Host struct {
	rt  *Runtime
	nav *Navigator
}

// NewHost wires a [Runtime] over reg and a [Navigator] over history.
// A nil history gets a [MemoryHistory] at http://localhost/.
func NewHost(reg *Registry, history History, opts ...Option) *Host {
	o := buildOptions(opts)
	return &Host{
		rt:  newRuntime(reg, o),
		nav: newNavigator(history, o),
	}
}

// Runtime returns the host's effect runtime.
func (h *Host) Runtime() *Runtime { return h.rt }

// Navigator returns the host's navigator.
func (h *Host) Navigator() *Navigator { return h.nav }

// Dispatch routes cmd: effect requests to the runtime, navigation commands
// to the navigator. It never blocks. A Go whose traversal the history
// rejected returns the history's error, usually iox.ErrWouldBlock.
func (h *Host) Dispatch(cmd Command) error {
	if req, ok := cmd.(EffectRequest); ok {
		h.rt.Submit(req)
		return nil
	}
	return h.nav.Execute(cmd)
}

// Next returns the next event without blocking. Navigation events are
// drained before effect results. Returns [iox.ErrWouldBlock] when idle.
func (h *Host) Next() (Event, error) {
	if ev, err := h.nav.Poll(); err == nil {
		return ev, nil
	}
	r, err := h.rt.Poll()
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Wait blocks until an event is available or ctx is done, backing off
// adaptively between polls with iox.Backoff.
func (h *Host) Wait(ctx context.Context) (Event, error) {
	var bo iox.Backoff
	for {
		ev, err := h.Next()
		if err == nil {
			return ev, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bo.Wait()
	}
}
