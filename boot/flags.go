// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package boot

import (
	"fmt"
	"io"
	"time"

	"code.hybscloud.com/port/clock"
)

// SeedSize is the size of the startup seed.
const SeedSize = 32

// Flags are the read-only values handed to the application once at startup.
type Flags struct {
	InitialURL string         `json:"initialUrl"`
	Locale     string         `json:"locale"`
	Seed       [SeedSize]byte `json:"seed"`
	Now        time.Time      `json:"now"`
}

// NewFlags reads the seed from r and the start time from c.
func NewFlags(cfg Config, r io.Reader, c clock.Clock) (Flags, error) {
	if c == nil {
		c = clock.Real
	}
	f := Flags{
		InitialURL: cfg.InitialURL,
		Locale:     cfg.Locale,
		Now:        c.Now(),
	}
	if _, err := io.ReadFull(r, f.Seed[:]); err != nil {
		return Flags{}, fmt.Errorf("read seed: %w", err)
	}
	return f, nil
}
