// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/port"
)

func TestHostRoutesCommands(t *testing.T) {
	h, hist := newHost(t)
	req := request("echo", "ping")
	if err := h.Dispatch(req); err != nil {
		t.Fatal(err)
	}
	if err := h.Dispatch(port.PushURL{URL: "/a"}); err != nil {
		t.Fatal(err)
	}
	if hist.Href() != origin+"a" {
		t.Fatalf("history href = %s", hist.Href())
	}

	// Navigation events are delivered ahead of effect results.
	ev := next(t, h)
	if nav, ok := ev.(port.NavigationEvent); !ok || nav.Href != origin+"a" {
		t.Fatalf("first event = %#v", ev)
	}
	ev = next(t, h)
	r, ok := ev.(port.EffectResult)
	if !ok || r.ID != req.ID {
		t.Fatalf("second event = %#v", ev)
	}
	if v, _ := r.Value(); v != "ping" {
		t.Fatalf("value = %v", v)
	}
	if _, err := h.Next(); !iox.IsWouldBlock(err) {
		t.Fatalf("Next on idle host = %v", err)
	}
}

func TestHostResultsAndTraversalsInterleave(t *testing.T) {
	h, hist := newHost(t)
	h.Dispatch(port.PushURL{URL: "/a"})
	h.Dispatch(port.PushURL{URL: "/b"})
	next(t, h)
	next(t, h)

	gate := make(chan struct{})
	req := request("gate", gate)
	h.Dispatch(req)
	hist.Back()
	if nav, ok := next(t, h).(port.NavigationEvent); !ok || nav.Href != origin+"a" {
		t.Fatalf("traversal = %#v", nav)
	}
	if h.Runtime().InFlight() != 1 {
		t.Fatal("traversal disturbed the in-flight request")
	}
	close(gate)
	if r, ok := next(t, h).(port.EffectResult); !ok || r.ID != req.ID || !r.OK() {
		t.Fatalf("result = %#v", r)
	}
}

func TestHostWaitHonoursContext(t *testing.T) {
	h, _ := newHost(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := h.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait = %v, want DeadlineExceeded", err)
	}
}

func TestHostSharesOptions(t *testing.T) {
	h, _ := newHost(t, port.WithTraversalCapacity(1))
	nav := h.Navigator()
	var err error
	for i := 0; i < 64 && err == nil; i++ {
		err = nav.PopState(origin, i)
	}
	if !iox.IsWouldBlock(err) {
		t.Fatalf("small traversal queue never filled: %v", err)
	}
}
