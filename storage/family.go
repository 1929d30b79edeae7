// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package storage

import (
	"context"

	"code.hybscloud.com/port"
)

// KeyArgs are the arguments of getItem and removeItem.
type KeyArgs struct {
	Key string `json:"key"`
}

// SetArgs are the arguments of setItem.
type SetArgs struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Item is the result of getItem. Found is false when the key is absent.
type Item struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// Family returns the storage handlers over s.
func Family(s Store) map[string]port.Handler {
	f := family{s}
	return map[string]port.Handler{
		"getItem":    port.Typed(f.getItem),
		"setItem":    port.Typed(f.setItem),
		"removeItem": port.Typed(f.removeItem),
		"keys":       port.Typed(f.keys),
		"clear":      port.Typed(f.clear),
	}
}

type family struct{ s Store }

func (f family) getItem(ctx context.Context, args KeyArgs) (Item, error) {
	if args.Key == "" {
		return Item{}, ErrEmptyKey
	}
	v, ok, err := f.s.Get(ctx, args.Key)
	if err != nil {
		return Item{}, err
	}
	return Item{Key: args.Key, Value: v, Found: ok}, nil
}

func (f family) setItem(ctx context.Context, args SetArgs) (port.Value, error) {
	if args.Key == "" {
		return nil, ErrEmptyKey
	}
	return nil, f.s.Set(ctx, args.Key, args.Value)
}

func (f family) removeItem(ctx context.Context, args KeyArgs) (port.Value, error) {
	if args.Key == "" {
		return nil, ErrEmptyKey
	}
	return nil, f.s.Delete(ctx, args.Key)
}

func (f family) keys(ctx context.Context, _ struct{}) ([]string, error) {
	return f.s.Keys(ctx)
}

func (f family) clear(ctx context.Context, _ struct{}) (port.Value, error) {
	return nil, f.s.Clear(ctx)
}
