package fib

import "strings"

const (
	// NoZone is returned for ratios that have no retracement commentary.
	NoZone = "-"
	// GenericTarget is returned for extension ratios without a named target.
	GenericTarget = "Target Zone"
)

// Bias is the trading side a zone label leans towards.
type Bias int

const (
	Neutral Bias = iota
	Buy
	Sell
)

func (b Bias) String() string {
	switch b {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "neutral"
	}
}

type zoneRow struct {
	trend Trend
	ratio float64
	label string
}

// Keyed on exact ratio values. The ratios are engine constants, never
// derived from user input, so float equality is safe here.
var zoneTable = []zoneRow{
	{Uptrend, 0, "Resistance - Take Profit Area"},
	{Uptrend, 0.236, "Weak Support - Light Buy Zone"},
	{Uptrend, 0.382, "Moderate Support - Good Buy Zone"},
	{Uptrend, 0.5, "Strong Support - Ideal Buy Zone"},
	{Uptrend, 0.618, "Golden Ratio - Strong Buy Zone"},
	{Uptrend, 0.786, "Critical Support - Last Buy Zone"},
	{Uptrend, 1, "Major Support - Stop Loss Area"},

	{Downtrend, 0, "Support - Take Profit Area"},
	{Downtrend, 0.236, "Weak Resistance - Light Sell Zone"},
	{Downtrend, 0.382, "Moderate Resistance - Good Sell Zone"},
	{Downtrend, 0.5, "Strong Resistance - Ideal Sell Zone"},
	{Downtrend, 0.618, "Golden Ratio - Strong Sell Zone"},
	{Downtrend, 0.786, "Critical Resistance - Last Sell Zone"},
	{Downtrend, 1, "Major Resistance - Stop Loss Area"},
}

type targetRow struct {
	ratio float64
	label string
}

var targetTable = []targetRow{
	{1.272, "TP1 - First Target"},
	{1.414, "TP2 - Second Target"},
	{1.618, "TP3 - Golden Target"},
	{2.0, "TP4 - Extended Target"},
	{2.618, "TP5 - Major Target"},
	{3.618, "TP6 - Maximum Target"},
	{4.236, "TP7 - Extreme Target"},
}

// ClassifyZone returns the retracement commentary for ratio under trend,
// or NoZone when the ratio is not in the table.
func ClassifyZone(trend Trend, ratio float64) string {
	for _, row := range zoneTable {
		if row.trend == trend && row.ratio == ratio {
			return row.label
		}
	}
	return NoZone
}

// ClassifyTarget returns the take-profit label for an extension ratio,
// or GenericTarget when the ratio is not in the table.
func ClassifyTarget(ratio float64) string {
	for _, row := range targetTable {
		if row.ratio == ratio {
			return row.label
		}
	}
	return GenericTarget
}

// BiasOf reads the trading side out of a zone label.
func BiasOf(label string) Bias {
	switch {
	case strings.Contains(label, "Buy"):
		return Buy
	case strings.Contains(label, "Sell"):
		return Sell
	default:
		return Neutral
	}
}
