// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package storage provides the "storage" operation family, a string
// key-value store with localStorage semantics, and the stores behind it.
//
// Operations:
//
//	getItem    {key}        → Item
//	setItem    {key, value} → nothing
//	removeItem {key}        → nothing
//	keys                    → sorted []string
//	clear                   → nothing
package storage

import (
	"context"
	"errors"
)

// Kind is the family name under which Family is registered.
const Kind = "storage"

// ErrEmptyKey reports a request without a key.
var ErrEmptyKey = errors.New("storage: empty key")

// Store is a string key-value store. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the value at key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns every key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	// Clear removes every key.
	Clear(ctx context.Context) error
}
