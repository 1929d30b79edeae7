// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package port bridges a single-threaded, message-driven application core to
// asynchronous effect handlers and to session-history navigation.
//
// The application core issues [Command] values and consumes [Event] values.
// Effect requests are correlated with their results by [CorrelationID];
// navigation commands are translated onto an injected [History].
//
// # Architecture
//
//   - Registry: [Registry] maps (kind, operation) to a [Handler]. Sealed once a [Runtime] owns it.
//   - Runtime: [Runtime] tracks in-flight correlation ids and runs each handler on its own goroutine.
//     Results are delivered one per call, in completion order, via [Runtime.Poll] or [Runtime.Await].
//   - Navigation: [Navigator] translates [PushURL], [PushState], [ReplaceURL] and [Go] onto a [History].
//     Browser traversals enter through a bounded lock-free queue via [code.hybscloud.com/lfq].
//   - Host: [Host] is the single command/event boundary combining both.
//   - Non-blocking: [Host.Next] and [Runtime.Poll] return [code.hybscloud.com/iox.ErrWouldBlock] when idle.
//
// # Failures
//
// Per-request errors never cross the boundary as Go errors. They arrive as an
// [EffectResult] whose [Outcome] is Left with a [*Failure] carrying a [Code]:
// [UnknownOperation], [DuplicateCorrelation] or [HandlerFailure].
// Registration conflicts are startup errors ([ErrRegistrationConflict]).
//
// # Effect Protocols
//
// The application core may also be written as a computation on
// [code.hybscloud.com/kont]: [Send] issues a command, [Await] receives the next
// event. [Step] and [Advance] drive such a protocol one effect at a time for a
// proactor loop; [Exec] and [ExecExpr] block with adaptive backoff.
//
// # Example
//
//	reg := port.NewRegistry()
//	reg.MustRegister("random", random.Family(rand.Reader))
//	host := port.NewHost(reg, history)
//	host.Dispatch(port.EffectRequest{ID: port.NextCorrelation(), Kind: "random", Operation: "uuid"})
//	host.Dispatch(port.PushURL{URL: "/inbox"})
//	for {
//		ev, err := host.Wait(ctx)
//		if err != nil {
//			break
//		}
//		// feed ev to the application core
//	}
package port
