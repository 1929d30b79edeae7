// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"fmt"
	"net/url"
)

type historyEntry struct {
	href  string
	state Value
}

// MemoryHistory is an in-process session history with browser semantics:
// pushing truncates forward entries, relative URLs resolve against the
// current entry, and traversals are reported to the listener.
//
// Like window.history it is not safe for concurrent use.
type MemoryHistory struct {
	entries  []historyEntry
	index    int
	reloads  int
	listener TraversalSink
}

// NewMemoryHistory returns a history with one entry at initial,
// which must be an absolute URL.
func NewMemoryHistory(initial string) (*MemoryHistory, error) {
	u, err := url.Parse(initial)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("port: initial url %q is not absolute", initial)
	}
	return &MemoryHistory{entries: []historyEntry{{href: u.String()}}}, nil
}

// Listen sets the sink that receives traversal notifications.
func (h *MemoryHistory) Listen(s TraversalSink) { h.listener = s }

// Href implements [History].
func (h *MemoryHistory) Href() string { return h.entries[h.index].href }

// State implements [History].
func (h *MemoryHistory) State() Value { return h.entries[h.index].state }

// PushState implements [History].
func (h *MemoryHistory) PushState(state Value, rawURL string) {
	h.entries = append(h.entries[:h.index+1], historyEntry{href: h.resolve(rawURL), state: state})
	h.index = len(h.entries) - 1
}

// ReplaceState implements [History].
func (h *MemoryHistory) ReplaceState(state Value, rawURL string) {
	h.entries[h.index] = historyEntry{href: h.resolve(rawURL), state: state}
}

// Go implements [History]. Zero counts a reload and reports nothing;
// a target outside the history is ignored.
// If the listener rejects the traversal the current entry stays put
// and the listener's error is returned.
func (h *MemoryHistory) Go(steps int) error {
	if steps == 0 {
		h.reloads++
		return nil
	}
	target := h.index + steps
	if target < 0 || target >= len(h.entries) {
		return nil
	}
	if h.listener != nil {
		e := h.entries[target]
		if err := h.listener.PopState(e.href, e.state); err != nil {
			return err
		}
	}
	h.index = target
	return nil
}

// Back traverses one entry back, as the browser's back button does.
func (h *MemoryHistory) Back() error { return h.Go(-1) }

// Forward traverses one entry forward.
func (h *MemoryHistory) Forward() error { return h.Go(1) }

// Len returns the number of entries.
func (h *MemoryHistory) Len() int { return len(h.entries) }

// Index returns the position of the current entry.
func (h *MemoryHistory) Index() int { return h.index }

// Reloads returns how many times Go(0) was requested.
func (h *MemoryHistory) Reloads() int { return h.reloads }

// resolve interprets rawURL relative to the current entry.
// Unparseable input is kept as-is: the history does not validate URLs.
func (h *MemoryHistory) resolve(rawURL string) string {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	base, err := url.Parse(h.Href())
	if err != nil {
		return rawURL
	}
	return base.ResolveReference(ref).String()
}
