package fib

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when high <= low or either bound is not finite.
var ErrInvalidRange = errors.New("invalid price range")

// PriceRange is a swing high and low. High must be strictly above Low.
type PriceRange struct {
	High float64 `json:"high" yaml:"high"`
	Low  float64 `json:"low" yaml:"low"`
}

// NewPriceRange validates the bounds and returns the range.
func NewPriceRange(high, low float64) (PriceRange, error) {
	r := PriceRange{High: high, Low: low}
	if err := r.Validate(); err != nil {
		return PriceRange{}, err
	}
	return r, nil
}

func (r PriceRange) Validate() error {
	if !finite(r.High) || !finite(r.Low) {
		return fmt.Errorf("%w: high and low must be finite numbers", ErrInvalidRange)
	}
	if r.High <= r.Low {
		return fmt.Errorf("%w: high %s must be greater than low %s",
			ErrInvalidRange, FormatPrice(r.High), FormatPrice(r.Low))
	}
	return nil
}

// Range is High - Low.
func (r PriceRange) Range() float64 {
	return r.High - r.Low
}

// RangePercent is the range as a percentage of the low. Zero when the
// low is not positive.
func (r PriceRange) RangePercent() float64 {
	if r.Low <= 0 {
		return 0
	}
	return r.Range() / r.Low * 100
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
