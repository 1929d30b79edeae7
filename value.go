// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"encoding/json"
	"fmt"
)

// Value is an opaque structured value carried by requests, results and
// navigation state. Handlers give it a schema per operation via [Typed].
type Value = any

// Decode converts v into a value of type A.
//
// Accepted shapes: an A itself, nil (zero A), raw JSON ([json.RawMessage] or
// []byte), or any JSON-shaped value such as a map[string]any decoded from a
// wire message. Failures wrap [ErrInvalidArguments].
func Decode[A any](v Value) (A, error) {
	var a A
	switch x := v.(type) {
	case nil:
		return a, nil
	case A:
		return x, nil
	case json.RawMessage:
		if len(x) == 0 {
			return a, nil
		}
		if err := json.Unmarshal(x, &a); err != nil {
			return a, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		}
		return a, nil
	case []byte:
		if len(x) == 0 {
			return a, nil
		}
		if err := json.Unmarshal(x, &a); err != nil {
			return a, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		}
		return a, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, fmt.Errorf("%w: %T into %T: %v", ErrInvalidArguments, v, a, err)
	}
	return a, nil
}
