// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import "code.hybscloud.com/kont"

// Command is a value the application core issues to the [Host]:
// an [EffectRequest] or one of the navigation commands
// [PushURL], [PushState], [ReplaceURL], [Go].
type Command interface {
	command()
}

// Event is a value the [Host] returns to the application core:
// an [EffectResult] or a [NavigationEvent].
type Event interface {
	event()
}

// EffectRequest asks the runtime to run Operation of the Kind family with Args.
// ID must not be in flight when the request is submitted.
type EffectRequest struct {
	ID        CorrelationID
	Kind      string
	Operation string
	Args      Value
}

func (EffectRequest) command() {}

// Outcome is Right(value) on success and Left(failure) otherwise.
type Outcome = kont.Either[*Failure, Value]

// EffectResult is the single result produced for a submitted [EffectRequest].
type EffectResult struct {
	ID        CorrelationID
	Kind      string
	Operation string
	Outcome   Outcome
}

func (EffectResult) event() {}

// OK reports whether the request succeeded.
func (r EffectResult) OK() bool { return r.Outcome.IsRight() }

// Value returns the success value and true, or nil and false.
func (r EffectResult) Value() (Value, bool) { return r.Outcome.GetRight() }

// Failure returns the failure and true, or nil and false.
func (r EffectResult) Failure() (*Failure, bool) { return r.Outcome.GetLeft() }

// Err returns the failure as an error, or nil on success.
func (r EffectResult) Err() error {
	if f, ok := r.Outcome.GetLeft(); ok {
		return f
	}
	return nil
}

// succeeded builds the result for a completed request.
func succeeded(req EffectRequest, v Value) EffectResult {
	return EffectResult{
		ID:        req.ID,
		Kind:      req.Kind,
		Operation: req.Operation,
		Outcome:   kont.Right[*Failure, Value](v),
	}
}

// failed builds the result for a rejected request.
func failed(req EffectRequest, code Code, detail string, cause error) EffectResult {
	return EffectResult{
		ID:        req.ID,
		Kind:      req.Kind,
		Operation: req.Operation,
		Outcome: kont.Left[*Failure, Value](&Failure{
			Code:      code,
			Kind:      req.Kind,
			Operation: req.Operation,
			Detail:    detail,
			Err:       cause,
		}),
	}
}
