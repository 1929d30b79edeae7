// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive application protocol (Cont-world), typically an
// update loop folding events into a model.
// step returns Left(nextModel) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// ExprLoop runs a recursive application protocol (Expr-world).
// step returns Left(nextModel) to continue or Right(result) to finish.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	return kont.ExprBind(step(initial), func(e kont.Either[S, A]) kont.Expr[A] {
		if next, ok := e.GetLeft(); ok {
			return ExprLoop(next, step)
		}
		result, _ := e.GetRight()
		return kont.ExprReturn(result)
	})
}
