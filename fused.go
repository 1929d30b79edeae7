// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"code.hybscloud.com/kont"
)

// SendThen issues cmd and then continues with next.
// Fuses Perform(Send{Command: cmd}) + Then.
func SendThen[B any](cmd Command, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send{Command: cmd}), next)
}

// AwaitBind receives the next event and passes it to f.
// Fuses Perform(Await{}) + Bind.
func AwaitBind[B any](f func(Event) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await{}), f)
}

// SubmitBind allocates a fresh correlation id when evaluated, submits the
// request under it, and passes the id to f.
func SubmitBind[B any](kind, operation string, args Value, f func(CorrelationID) kont.Eff[B]) kont.Eff[B] {
	fresh := kont.Suspend[kont.Resumed, CorrelationID](func(k func(CorrelationID) kont.Resumed) kont.Resumed {
		return k(NextCorrelation())
	})
	return kont.Bind(fresh, func(id CorrelationID) kont.Eff[B] {
		req := EffectRequest{ID: id, Kind: kind, Operation: operation, Args: args}
		return SendThen(req, f(id))
	})
}

// AwaitResult receives events until the result for id arrives and passes it
// to f. Every other event is handed to skip, which may be nil.
func AwaitResult[B any](id CorrelationID, skip func(Event), f func(EffectResult) kont.Eff[B]) kont.Eff[B] {
	return AwaitBind(func(ev Event) kont.Eff[B] {
		if r, ok := ev.(EffectResult); ok && r.ID == id {
			return f(r)
		}
		if skip != nil {
			skip(ev)
		}
		return AwaitResult(id, skip, f)
	})
}
