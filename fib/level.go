package fib

import "math"

// Highlight marks rows a renderer should emphasise.
type Highlight int

const (
	HighlightNone Highlight = iota
	// HighlightKeyZone is the 38.2-61.8% entry band.
	HighlightKeyZone
	// HighlightGolden is the 161.8% extension.
	HighlightGolden
)

func (h Highlight) String() string {
	switch h {
	case HighlightKeyZone:
		return "key-zone"
	case HighlightGolden:
		return "golden"
	default:
		return ""
	}
}

func (h Highlight) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Highlight) UnmarshalText(b []byte) error {
	switch string(b) {
	case "key-zone":
		*h = HighlightKeyZone
	case "golden":
		*h = HighlightGolden
	default:
		*h = HighlightNone
	}
	return nil
}

// LevelResult is one computed row of a retracement or extension table.
// For extensions Zone holds the take-profit target label.
type LevelResult struct {
	Ratio     float64   `json:"ratio"`
	Percent   string    `json:"percent"`
	Price     float64   `json:"price"`
	Position  string    `json:"position"`
	Zone      string    `json:"zone"`
	Highlight Highlight `json:"highlight,omitempty"`
}

// Bias is the trading side of the row's zone label.
func (l LevelResult) Bias() Bias {
	return BiasOf(l.Zone)
}

// Find returns the level with exactly the given ratio.
func Find(levels []LevelResult, ratio float64) (LevelResult, bool) {
	for _, l := range levels {
		if l.Ratio == ratio {
			return l, true
		}
	}
	return LevelResult{}, false
}

// Nearest returns the level whose price is closest to price. Ties go to
// the earlier level. ok is false for an empty slice.
func Nearest(levels []LevelResult, price float64) (LevelResult, bool) {
	if len(levels) == 0 {
		return LevelResult{}, false
	}
	best := 0
	bestDiff := math.Abs(levels[0].Price - price)
	for i := 1; i < len(levels); i++ {
		if d := math.Abs(levels[i].Price - price); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return levels[best], true
}
