package fib

import "fmt"

// RatioTable holds the ordered ratios the engine applies to a range.
// Retracement ratios run from 0 to 1, extension ratios are all above 1.
type RatioTable struct {
	Retracement []float64 `json:"retracement" yaml:"retracement"`
	Extension   []float64 `json:"extension" yaml:"extension"`
}

var (
	retracementRatios = [...]float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}
	extensionRatios   = [...]float64{1.272, 1.414, 1.618, 2.0, 2.618, 3.618, 4.236}
)

// DefaultRatios returns a fresh copy of the standard Fibonacci table.
func DefaultRatios() RatioTable {
	return RatioTable{
		Retracement: append([]float64(nil), retracementRatios[:]...),
		Extension:   append([]float64(nil), extensionRatios[:]...),
	}
}

// Validate checks ordering and bounds of both sequences.
func (rt RatioTable) Validate() error {
	if len(rt.Retracement) == 0 {
		return fmt.Errorf("retracement ratios are required")
	}
	if len(rt.Extension) == 0 {
		return fmt.Errorf("extension ratios are required")
	}
	for i, r := range rt.Retracement {
		if r < 0 || r > 1 {
			return fmt.Errorf("retracement ratio %v out of [0, 1]", r)
		}
		if i > 0 && r <= rt.Retracement[i-1] {
			return fmt.Errorf("retracement ratios must be strictly ascending at index %d", i)
		}
	}
	for i, r := range rt.Extension {
		if r <= 1 {
			return fmt.Errorf("extension ratio %v must be greater than 1", r)
		}
		if i > 0 && r <= rt.Extension[i-1] {
			return fmt.Errorf("extension ratios must be strictly ascending at index %d", i)
		}
	}
	return nil
}
