// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"log/slog"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// History is the session-history capability the [Navigator] drives.
// In a browser it is window.history plus location.href; [MemoryHistory]
// implements it in-process.
type History interface {
	// Href returns the absolute URL of the current entry.
	Href() string
	// State returns the state associated with the current entry.
	State() Value
	// PushState adds an entry at url carrying state and makes it current.
	PushState(state Value, url string)
	// ReplaceState rewrites the current entry's state and url.
	ReplaceState(state Value, url string)
	// Go traverses steps entries: negative is back, positive is forward,
	// zero reloads. Completion is reported only through a TraversalSink.
	// An error means the traversal did not happen.
	Go(steps int) error
}

// TraversalSink receives traversal notifications from the environment.
// [Navigator] implements it.
type TraversalSink interface {
	PopState(href string, state Value) error
}

// PushURL adds a history entry at URL with no state.
type PushURL struct {
	URL string
}

// PushState adds a history entry at URL carrying State.
type PushState struct {
	URL   string
	State Value
}

// ReplaceURL rewrites the current entry's URL, keeping its state.
type ReplaceURL struct {
	URL string
}

// Go traverses Steps entries of session history.
type Go struct {
	Steps int
}

func (PushURL) command()    {}
func (PushState) command()  {}
func (ReplaceURL) command() {}
func (Go) command()         {}

// NavigationEvent reports the current location after a history change.
// A nil State means the entry carries no state.
type NavigationEvent struct {
	Href  string
	State Value
}

func (NavigationEvent) event() {}

// traversal is one environment-reported history traversal.
type traversal struct {
	href  string
	state Value
}

// Navigator translates navigation commands onto a [History] and turns
// history changes into [NavigationEvent] values.
//
// Commands and Poll belong to the logical thread. PopState may be called
// from one other goroutine (the environment's event source): traversals
// cross over on a bounded single-producer single-consumer queue.
type Navigator struct {
	history    History
	logger     *slog.Logger
	pending    []NavigationEvent
	traversals lfq.SPSC[traversal]
}

// defaultOrigin is the initial entry of the history used when none is given.
const defaultOrigin = "http://localhost/"

// NewNavigator returns a navigator over h. If h implements
// Listen(TraversalSink), the navigator subscribes to its traversals.
// A nil h gets a [MemoryHistory] starting at http://localhost/.
func NewNavigator(h History, opts ...Option) *Navigator {
	return newNavigator(h, buildOptions(opts))
}

func newNavigator(h History, o options) *Navigator {
	if h == nil {
		h, _ = NewMemoryHistory(defaultOrigin)
	}
	n := &Navigator{history: h, logger: o.logger}
	n.traversals.Init(o.traversalCapacity)
	if l, ok := h.(interface{ Listen(TraversalSink) }); ok {
		l.Listen(n)
	}
	return n
}

// PushURL pushes an entry with no state and emits an event with absent state.
func (n *Navigator) PushURL(url string) {
	n.history.PushState(nil, url)
	n.emit(nil)
}

// PushState pushes an entry carrying state and emits an event with that state.
func (n *Navigator) PushState(url string, state Value) {
	n.history.PushState(state, url)
	n.emit(state)
}

// ReplaceURL rewrites the current URL and keeps the entry's state.
// No event is emitted: same-document replacement is not a traversal.
func (n *Navigator) ReplaceURL(url string) {
	n.history.ReplaceState(n.history.State(), url)
}

// Go asks the history to traverse. No event is emitted here; the traversal
// is observed only when the environment reports it through PopState.
// An error from the history is returned as is and the position is unchanged.
func (n *Navigator) Go(steps int) error {
	return n.history.Go(steps)
}

// Execute applies one navigation command.
// Returns [ErrUnknownCommand] for anything that is not a navigation command.
func (n *Navigator) Execute(cmd Command) error {
	switch c := cmd.(type) {
	case PushURL:
		n.PushURL(c.URL)
	case PushState:
		n.PushState(c.URL, c.State)
	case ReplaceURL:
		n.ReplaceURL(c.URL)
	case Go:
		return n.Go(c.Steps)
	default:
		return ErrUnknownCommand
	}
	return nil
}

// PopState records a traversal reported by the environment, forwarding its
// href and state verbatim. Returns [iox.ErrWouldBlock] when the traversal
// queue is full; the caller may retry after the logical thread polls.
func (n *Navigator) PopState(href string, state Value) error {
	t := traversal{href: href, state: state}
	if err := n.traversals.Enqueue(&t); err != nil {
		n.logger.Warn("traversal queue full", "href", href)
		return err
	}
	return nil
}

// Poll returns the next navigation event without blocking.
// Events come out in the order the history changed: a command event
// follows every traversal reported before the command ran.
// Returns [iox.ErrWouldBlock] when there is none.
func (n *Navigator) Poll() (NavigationEvent, error) {
	if len(n.pending) > 0 {
		ev := n.pending[0]
		n.pending[0] = NavigationEvent{}
		n.pending = n.pending[1:]
		return ev, nil
	}
	t, err := n.traversals.Dequeue()
	if err != nil {
		return NavigationEvent{}, iox.ErrWouldBlock
	}
	return NavigationEvent{Href: t.href, State: t.state}, nil
}

// emit moves already reported traversals ahead of the command's event
// so that the last event always names the current entry.
func (n *Navigator) emit(state Value) {
	for {
		t, err := n.traversals.Dequeue()
		if err != nil {
			break
		}
		n.pending = append(n.pending, NavigationEvent{Href: t.href, State: t.state})
	}
	n.pending = append(n.pending, NavigationEvent{Href: n.history.Href(), State: state})
}
