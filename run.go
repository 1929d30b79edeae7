// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"context"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run drives an Expr-world application protocol on h with Step and Advance,
// backing off with iox.Backoff while no event is ready.
//
// Unlike ExecExpr, Run stops when ctx is done, discarding the pending
// suspension and returning ctx.Err(). A non-retryable dispatch error
// (ErrUnknownCommand) also stops it.
func Run[R any](ctx context.Context, h *Host, protocol kont.Expr[R]) (R, error) {
	result, susp := Step(protocol)
	var bo iox.Backoff
	for susp != nil {
		var err error
		result, susp, err = Advance(h, susp)
		if err == nil {
			bo.Reset()
			continue
		}
		var zero R
		if !iox.IsWouldBlock(err) {
			susp.Discard()
			return zero, err
		}
		if cerr := ctx.Err(); cerr != nil {
			susp.Discard()
			return zero, cerr
		}
		bo.Wait()
	}
	return result, nil
}
