// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// hostHandler implements kont.Handler for host operations.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch
// into blocking evaluation for Exec/ExecExpr.
type hostHandler[R any] struct {
	h *Host
}

// Dispatch implements kont.Handler via structural interface assertion.
func (hh hostHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	hop, ok := op.(hostDispatcher)
	if !ok {
		panic("port: unhandled effect in hostHandler")
	}
	return dispatchWait(hh.h, hop), true
}

// dispatchWait blocks until DispatchHost succeeds, backing off on
// iox.ErrWouldBlock. Any other error is a protocol bug and panics.
func dispatchWait(h *Host, op hostDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := op.DispatchHost(h)
		if err == nil {
			return v
		}
		if !iox.IsWouldBlock(err) {
			panic("port: " + err.Error())
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world application protocol on h until it completes.
// Await blocks via adaptive backoff (iox.Backoff).
func Exec[R any](h *Host, protocol kont.Eff[R]) R {
	return kont.Handle(protocol, hostHandler[R]{h: h})
}

// ExecExpr runs an Expr-world application protocol on h until it completes.
// Await blocks via adaptive backoff (iox.Backoff).
func ExecExpr[R any](h *Host, protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, hostHandler[R]{h: h})
}
