// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"code.hybscloud.com/kont"
)

// Step evaluates an application protocol until its first host operation.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended operation on the host.
//
// On success (nil error), the suspension is consumed and the protocol
// advances to its next operation or completes.
// On iox.ErrWouldBlock (Await with no event ready), the suspension is
// returned unconsumed and may be retried on a later turn.
// Any other error is returned with the suspension unconsumed as well.
func Advance[R any](h *Host, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	op, ok := susp.Op().(hostDispatcher)
	if !ok {
		panic("port: unhandled effect in Advance")
	}
	v, err := op.DispatchHost(h)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
