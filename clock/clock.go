// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the "time" operation family.
//
// Operations:
//
//	now         → Instant of the current time
//	zone        → Zone of the clock's location
//	sleep {ms}  → waits ms milliseconds, then returns now
package clock

import (
	"context"
	"fmt"
	"time"

	"code.hybscloud.com/port"
)

// Kind is the family name under which Family is registered.
const Kind = "time"

// MaxSleep bounds a single sleep request.
const MaxSleep = time.Hour

// Clock tells the time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real is the wall clock.
var Real Clock = realClock{}

// Fixed is a clock that always returns the same instant.
type Fixed time.Time

// Now implements [Clock].
func (f Fixed) Now() time.Time { return time.Time(f) }

// Instant is the result of now.
type Instant struct {
	UnixMillis int64  `json:"unixMillis"`
	ISO        string `json:"iso"`
}

// Zone is the result of zone.
type Zone struct {
	Name          string `json:"name"`
	OffsetSeconds int    `json:"offsetSeconds"`
}

// SleepArgs are the arguments of sleep.
type SleepArgs struct {
	Ms int64 `json:"ms"`
}

// Family returns the time handlers reading c. A nil c means [Real].
func Family(c Clock) map[string]port.Handler {
	if c == nil {
		c = Real
	}
	f := family{c}
	return map[string]port.Handler{
		"now":   port.Typed(f.now),
		"zone":  port.Typed(f.zone),
		"sleep": port.Typed(f.sleep),
	}
}

type family struct{ c Clock }

// InstantOf formats t the way now reports it.
func InstantOf(t time.Time) Instant {
	return Instant{
		UnixMillis: t.UnixMilli(),
		ISO:        t.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func (f family) now(context.Context, struct{}) (Instant, error) {
	return InstantOf(f.c.Now()), nil
}

func (f family) zone(context.Context, struct{}) (Zone, error) {
	name, offset := f.c.Now().Zone()
	return Zone{Name: name, OffsetSeconds: offset}, nil
}

func (f family) sleep(ctx context.Context, args SleepArgs) (Instant, error) {
	d := time.Duration(args.Ms) * time.Millisecond
	if d < 0 || d > MaxSleep {
		return Instant{}, fmt.Errorf("clock: sleep %dms out of range [0, %d]", args.Ms, MaxSleep.Milliseconds())
	}
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return Instant{}, ctx.Err()
		}
	}
	return InstantOf(f.c.Now()), nil
}
