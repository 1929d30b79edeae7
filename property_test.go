// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port_test

import (
	"fmt"
	"testing"
	"testing/quick"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/port"
)

// TestPropertyExactlyOneResult proves that for any arbitrary mix of
// operations, including ids reused while in flight, every request yields
// exactly one result and the in-flight set drains to empty.
func TestPropertyExactlyOneResult(t *testing.T) {
	ops := []string{"echo", "fail", "panic", "missing"}
	property := func(script []uint8) bool {
		rt := port.NewRuntime(newRegistry(nil))
		base := port.NextCorrelation()
		// Low bit picks a reused id; the rest picks the operation.
		submitted := 0
		for i, b := range script {
			id := base + port.CorrelationID(i)
			if b&1 == 1 && i > 0 {
				id = base + port.CorrelationID(i-1)
			}
			rt.Submit(port.EffectRequest{ID: id, Kind: "test", Operation: ops[int(b>>1)%len(ops)], Args: i})
			submitted++
		}
		for range submitted {
			await(t, rt)
		}
		_, err := rt.Poll()
		return rt.InFlight() == 0 && err != nil
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyEchoProtocol proves that a protocol submitting each element of
// a payload in sequence observes the payload back unchanged.
func TestPropertyEchoProtocol(t *testing.T) {
	h, _ := newHost(t)
	property := func(payload []int) bool {
		protocol := port.ExprLoop(payload, func(rest []int) kont.Expr[kont.Either[[]int, []int]] {
			if len(rest) == 0 {
				return kont.ExprReturn(kont.Right[[]int, []int](nil))
			}
			id := port.NextCorrelation()
			return port.ExprSendThen(port.EffectRequest{ID: id, Kind: "test", Operation: "echo", Args: rest[0]},
				port.ExprAwaitResult(id, nil, func(r port.EffectResult) kont.Expr[kont.Either[[]int, []int]] {
					if v, ok := r.Value(); !ok || v != rest[0] {
						return kont.ExprReturn(kont.Right[[]int, []int]([]int{-1}))
					}
					return kont.ExprReturn(kont.Left[[]int, []int](rest[1:]))
				}),
			)
		})
		return execExpr(t, h, protocol) == nil
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyHistoryModel proves that pushes and traversals keep the
// history in step with a plain slice model, and that every successful
// traversal is reported exactly once.
func TestPropertyHistoryModel(t *testing.T) {
	property := func(moves []int8) bool {
		hist := newHistory(t)
		nav := port.NewNavigator(hist, port.WithTraversalCapacity(256))
		model := []string{origin}
		index := 0
		for i, m := range moves {
			if m >= 0 {
				url := fmt.Sprintf("/p%d", i)
				nav.PushURL(url)
				model = append(model[:index+1], origin+url[1:])
				index = len(model) - 1
			} else {
				steps := int(m % 4)
				if target := index + steps; target >= 0 && target < len(model) {
					index = target
				}
				nav.Go(steps)
			}
			ev, err := nav.Poll()
			moved := err == nil
			if moved && ev.Href != model[index] {
				return false
			}
			if hist.Href() != model[index] {
				return false
			}
		}
		_, err := nav.Poll()
		return err != nil && hist.Len() == len(model)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}
