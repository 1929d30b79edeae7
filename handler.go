// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import "context"

// Handler performs one operation of a kind family.
//
// Handle runs on its own goroutine and may block. It returns exactly one
// outcome: a value, or an error that the runtime reports as a
// [HandlerFailure]. Handlers registered for concurrent requests must be safe
// for concurrent use.
type Handler interface {
	Handle(ctx context.Context, args Value) (Value, error)
}

// HandlerFunc adapts an ordinary function to [Handler].
type HandlerFunc func(ctx context.Context, args Value) (Value, error)

// Handle calls f(ctx, args).
func (f HandlerFunc) Handle(ctx context.Context, args Value) (Value, error) {
	return f(ctx, args)
}

// typedHandler decodes arguments into A before calling f.
type typedHandler[A, R any] struct {
	f func(ctx context.Context, args A) (R, error)
}

func (h typedHandler[A, R]) Handle(ctx context.Context, args Value) (Value, error) {
	a, err := Decode[A](args)
	if err != nil {
		return nil, err
	}
	r, err := h.f(ctx, a)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Typed builds a [Handler] whose arguments have schema A and whose result
// has type R. Arguments that do not decode into A fail with
// [ErrInvalidArguments] without calling f.
func Typed[A, R any](f func(ctx context.Context, args A) (R, error)) Handler {
	return typedHandler[A, R]{f: f}
}
