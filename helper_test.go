// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/port"
)

const origin = "http://app.test/"

var errBoom = errors.New("boom")

// testFamily is a handler family exercising every way a handler can end.
// calls counts invocations of any operation.
func testFamily(calls *atomic.Int32) map[string]port.Handler {
	count := func() {
		if calls != nil {
			calls.Add(1)
		}
	}
	return map[string]port.Handler{
		"echo": port.HandlerFunc(func(_ context.Context, args port.Value) (port.Value, error) {
			count()
			return args, nil
		}),
		"fail": port.HandlerFunc(func(context.Context, port.Value) (port.Value, error) {
			count()
			return nil, errBoom
		}),
		"panic": port.HandlerFunc(func(context.Context, port.Value) (port.Value, error) {
			count()
			panic("handler exploded")
		}),
		// gate blocks until its argument channel is closed or ctx ends.
		"gate": port.Typed(func(ctx context.Context, gate chan struct{}) (string, error) {
			count()
			select {
			case <-gate:
				return "open", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}),
		"sleep": port.Typed(func(ctx context.Context, ms int) (int, error) {
			count()
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
				return ms, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}),
	}
}

func newRegistry(calls *atomic.Int32) *port.Registry {
	return port.NewRegistry().MustRegister("test", testFamily(calls))
}

func newHistory(t testing.TB) *port.MemoryHistory {
	t.Helper()
	h, err := port.NewMemoryHistory(origin)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func newHost(t testing.TB, opts ...port.Option) (*port.Host, *port.MemoryHistory) {
	t.Helper()
	h := newHistory(t)
	return port.NewHost(newRegistry(nil), h, opts...), h
}

func request(op string, args port.Value) port.EffectRequest {
	return port.EffectRequest{ID: port.NextCorrelation(), Kind: "test", Operation: op, Args: args}
}

// await receives one result or fails the test after a timeout.
func await(t testing.TB, rt *port.Runtime) port.EffectResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := rt.Await(ctx)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	return r
}

// next receives one host event or fails the test after a timeout.
func next(t testing.TB, h *port.Host) port.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ev, err := h.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return ev
}

// execExpr drives a protocol to completion on h via a Step+Advance loop,
// retrying on iox.ErrWouldBlock.
func execExpr[R any](t testing.TB, h *port.Host, protocol kont.Expr[R]) R {
	t.Helper()
	result, susp := port.Step[R](protocol)
	deadline := time.Now().Add(5 * time.Second)
	for susp != nil {
		var err error
		result, susp, err = port.Advance(h, susp)
		if err != nil && time.Now().After(deadline) {
			t.Fatalf("Advance: %v", err)
		}
	}
	return result
}
