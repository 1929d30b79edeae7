// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package random provides the "random" operation family.
//
// Operations:
//
//	bytes {n}        → []byte of n random bytes, 0 ≤ n ≤ MaxBytes
//	int   {min, max} → int64 uniform in [min, max]
//	float            → float64 uniform in [0, 1)
//	uuid             → RFC 4122 version 4 UUID string
package random

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"sync"

	"code.hybscloud.com/port"
	"github.com/google/uuid"
)

// Kind is the family name under which Family is registered.
const Kind = "random"

// MaxBytes bounds a single bytes request, matching the per-call quota of
// the browser's getRandomValues.
const MaxBytes = 65536

// BytesArgs are the arguments of the bytes operation.
type BytesArgs struct {
	N int `json:"n"`
}

// IntArgs are the arguments of the int operation. Both bounds are inclusive.
type IntArgs struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// source serializes reads from a reader that may not be safe for concurrent use.
type source struct {
	mu sync.Mutex
	r  io.Reader
}

func (s *source) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.ReadFull(s.r, p)
}

// Family returns the random handlers reading entropy from r,
// typically crypto/rand.Reader.
func Family(r io.Reader) map[string]port.Handler {
	s := &source{r: r}
	return map[string]port.Handler{
		"bytes": port.Typed(s.readBytes),
		"int":   port.Typed(s.intRange),
		"float": port.Typed(s.unitFloat),
		"uuid":  port.Typed(s.newUUID),
	}
}

func (s *source) readBytes(_ context.Context, args BytesArgs) ([]byte, error) {
	if args.N < 0 || args.N > MaxBytes {
		return nil, fmt.Errorf("random: n=%d out of range [0, %d]", args.N, MaxBytes)
	}
	buf := make([]byte, args.N)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *source) intRange(_ context.Context, args IntArgs) (int64, error) {
	if args.Min > args.Max {
		return 0, fmt.Errorf("random: min %d > max %d", args.Min, args.Max)
	}
	span := new(big.Int).Sub(big.NewInt(args.Max), big.NewInt(args.Min))
	span.Add(span, big.NewInt(1))
	n, err := randInt(s, span)
	if err != nil {
		return 0, err
	}
	return n.Add(n, big.NewInt(args.Min)).Int64(), nil
}

func (s *source) unitFloat(_ context.Context, _ struct{}) (float64, error) {
	var b [8]byte
	if _, err := io.ReadFull(s, b[:]); err != nil {
		return 0, err
	}
	// 53 random bits scaled into [0, 1).
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53), nil
}

func (s *source) newUUID(_ context.Context, _ struct{}) (string, error) {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// randInt returns a uniform value in [0, max) by rejection sampling.
func randInt(r io.Reader, max *big.Int) (*big.Int, error) {
	bitLen := max.BitLen()
	byteLen := (bitLen + 7) / 8
	excess := uint(byteLen*8 - bitLen)
	buf := make([]byte, byteLen)
	n := new(big.Int)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		buf[0] &= byte(0xff >> excess)
		n.SetBytes(buf)
		if n.Cmp(max) < 0 {
			return n, nil
		}
	}
}
