package fib

import (
	"fmt"
	"strings"
)

// Trend is the directional context that decides which side of the
// range levels are measured from.
type Trend int

const (
	Uptrend Trend = iota
	Downtrend
)

func (t Trend) String() string {
	switch t {
	case Uptrend:
		return "uptrend"
	case Downtrend:
		return "downtrend"
	default:
		return fmt.Sprintf("trend(%d)", int(t))
	}
}

// Label is the human readable form used in reports.
func (t Trend) Label() string {
	if t == Downtrend {
		return "Downtrend (Bearish)"
	}
	return "Uptrend (Bullish)"
}

// ParseTrend accepts "uptrend"/"downtrend" and the usual shorthands.
func ParseTrend(s string) (Trend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uptrend", "up", "bull", "bullish", "long":
		return Uptrend, nil
	case "downtrend", "down", "bear", "bearish", "short":
		return Downtrend, nil
	default:
		return Uptrend, fmt.Errorf("unknown trend %q (want uptrend or downtrend)", s)
	}
}

func (t Trend) MarshalText() ([]byte, error) {
	if t != Uptrend && t != Downtrend {
		return nil, fmt.Errorf("invalid trend %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Trend) UnmarshalText(b []byte) error {
	v, err := ParseTrend(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
