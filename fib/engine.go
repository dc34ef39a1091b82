package fib

const (
	goldenRetracement = 0.618
	goldenExtension   = 1.618
)

var keyZoneRatios = []float64{0.382, 0.5, goldenRetracement}

// Retracement computes one level per ratio in table.Retracement, in ratio
// order. Uptrend levels are measured down from the high, downtrend levels
// up from the low.
func Retracement(table RatioTable, high, low float64, trend Trend) ([]LevelResult, error) {
	pr, err := NewPriceRange(high, low)
	if err != nil {
		return nil, err
	}
	rng := pr.Range()

	levels := make([]LevelResult, 0, len(table.Retracement))
	for _, r := range table.Retracement {
		var price float64
		switch {
		// Anchors are the inputs themselves so 0% and 100% never drift.
		case r == 0 && trend == Uptrend, r == 1 && trend == Downtrend:
			price = high
		case r == 0, r == 1:
			price = low
		case trend == Uptrend:
			price = high - rng*r
		default:
			price = low + rng*r
		}

		lvl := LevelResult{
			Ratio:    r,
			Percent:  PercentLabel(r),
			Price:    price,
			Position: retracementPosition(r, trend),
			Zone:     ClassifyZone(trend, r),
		}
		if isKeyZone(r) {
			lvl.Highlight = HighlightKeyZone
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Extension computes one level per ratio in table.Extension, projected
// above the high in an uptrend and below the low in a downtrend.
func Extension(table RatioTable, high, low float64, trend Trend) ([]LevelResult, error) {
	pr, err := NewPriceRange(high, low)
	if err != nil {
		return nil, err
	}
	rng := pr.Range()

	levels := make([]LevelResult, 0, len(table.Extension))
	for _, r := range table.Extension {
		var price float64
		if trend == Uptrend {
			price = high + rng*(r-1)
		} else {
			price = low - rng*(r-1)
		}

		lvl := LevelResult{
			Ratio:    r,
			Percent:  PercentLabel(r),
			Price:    price,
			Position: PercentLabel(r) + " Extension",
			Zone:     ClassifyTarget(r),
		}
		if r == goldenExtension {
			lvl.Highlight = HighlightGolden
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Analysis bundles everything computed for one range and trend.
type Analysis struct {
	Range           PriceRange       `json:"range"`
	Trend           Trend            `json:"trend"`
	Retracements    []LevelResult    `json:"retracements"`
	Extensions      []LevelResult    `json:"extensions"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Analyze runs both tables and builds the recommendation blocks.
func Analyze(table RatioTable, high, low float64, trend Trend) (Analysis, error) {
	ret, err := Retracement(table, high, low, trend)
	if err != nil {
		return Analysis{}, err
	}
	ext, err := Extension(table, high, low, trend)
	if err != nil {
		return Analysis{}, err
	}
	pr := PriceRange{High: high, Low: low}
	return Analysis{
		Range:           pr,
		Trend:           trend,
		Retracements:    ret,
		Extensions:      ext,
		Recommendations: Recommendations(pr, trend, ret),
	}, nil
}

func retracementPosition(r float64, trend Trend) string {
	switch r {
	case 0:
		if trend == Uptrend {
			return "High"
		}
		return "Low"
	case 1:
		if trend == Uptrend {
			return "Low"
		}
		return "High"
	}
	return PercentLabel(r) + " Retracement"
}

func isKeyZone(r float64) bool {
	for _, k := range keyZoneRatios {
		if r == k {
			return true
		}
	}
	return false
}
