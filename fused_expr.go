// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"code.hybscloud.com/kont"
)

// ExprSendThen issues cmd and then continues with next.
// Fuses ExprPerform(Send{Command: cmd}) + ExprThen.
func ExprSendThen[B any](cmd Command, next kont.Expr[B]) kont.Expr[B] {
	return kont.ExprThen(kont.ExprPerform(Send{Command: cmd}), next)
}

// ExprAwaitBind receives the next event and passes it to f.
// Fuses ExprPerform(Await{}) + ExprBind.
func ExprAwaitBind[B any](f func(Event) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(kont.ExprPerform(Await{}), f)
}

// ExprAwaitResult is the Expr-world AwaitResult.
func ExprAwaitResult[B any](id CorrelationID, skip func(Event), f func(EffectResult) kont.Expr[B]) kont.Expr[B] {
	return ExprAwaitBind(func(ev Event) kont.Expr[B] {
		if r, ok := ev.(EffectResult); ok && r.ID == id {
			return f(r)
		}
		if skip != nil {
			skip(ev)
		}
		return ExprAwaitResult(id, skip, f)
	})
}
