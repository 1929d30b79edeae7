// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"code.hybscloud.com/kont"
)

// hostDispatcher is the structural interface for host operations.
// DispatchHost is non-blocking: it returns iox.ErrWouldBlock when the
// host cannot make progress yet.
type hostDispatcher interface {
	DispatchHost(h *Host) (kont.Resumed, error)
}

// Send is the effect operation for issuing a command.
// Perform(Send{Command: c}) dispatches c to the host.
type Send struct {
	kont.Phantom[struct{}]
	Command Command
}

// DispatchHost handles Send on the host. Never blocks; fails with
// ErrUnknownCommand, or with iox.ErrWouldBlock when a Go traversal
// finds the traversal queue full.
func (o Send) DispatchHost(h *Host) (kont.Resumed, error) {
	if err := h.Dispatch(o.Command); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Await is the effect operation for receiving the next event.
// Perform(Await{}) resumes with a NavigationEvent or an EffectResult.
type Await struct {
	kont.Phantom[Event]
}

// DispatchHost handles Await on the host.
// Non-blocking: returns iox.ErrWouldBlock if no event is ready.
func (Await) DispatchHost(h *Host) (kont.Resumed, error) {
	ev, err := h.Next()
	if err != nil {
		return nil, err
	}
	return ev, nil
}
