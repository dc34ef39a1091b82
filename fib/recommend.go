package fib

import "fmt"

// RecommendationKind identifies a block of trading commentary.
type RecommendationKind string

const (
	KindSetup    RecommendationKind = "setup"
	KindEntry    RecommendationKind = "entry"
	KindProfit   RecommendationKind = "profit"
	KindStrategy RecommendationKind = "strategy"
)

type RecommendationItem struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

// Recommendation is a titled list of commentary lines. Ordered lists are
// in priority order.
type Recommendation struct {
	Kind    RecommendationKind   `json:"kind"`
	Title   string               `json:"title"`
	Bias    Bias                 `json:"-"`
	Ordered bool                 `json:"ordered,omitempty"`
	Items   []RecommendationItem `json:"items"`
	Footer  string               `json:"footer,omitempty"`
}

var strategyNotes = []string{
	"Wait for price to retrace to key Fibonacci levels",
	"Look for confirmation signals (candlestick patterns, volume, indicators)",
	"Scale in positions across multiple Fibonacci levels",
	"Use proper position sizing and risk management",
	"Take partial profits at extension levels",
}

var entryPriority = []struct {
	ratio float64
	label string
	note  string
}{
	{0.618, "Golden Ratio (61.8%)", "Strongest %s zone"},
	{0.5, "50% Level", "Good risk/reward"},
	{0.382, "38.2% Level", "Conservative entry"},
}

// Recommendations builds the setup, entry, profit and strategy blocks for
// a computed retracement table. Entry levels missing from retracements are
// skipped.
func Recommendations(pr PriceRange, trend Trend, retracements []LevelResult) []Recommendation {
	up := trend == Uptrend

	setup := Recommendation{Kind: KindSetup}
	if up {
		setup.Title = "BULLISH SETUP"
		setup.Bias = Buy
		setup.Items = append(setup.Items, RecommendationItem{
			Label: "Market Structure",
			Text:  "Uptrend - Look for BUY opportunities on pullbacks",
		})
	} else {
		setup.Title = "BEARISH SETUP"
		setup.Bias = Sell
		setup.Items = append(setup.Items, RecommendationItem{
			Label: "Market Structure",
			Text:  "Downtrend - Look for SELL opportunities on rallies",
		})
	}
	setup.Items = append(setup.Items, RecommendationItem{
		Label: "Price Range",
		Text:  fmt.Sprintf("%s (%.2f%%)", FormatPrice(pr.Range()), pr.RangePercent()),
	})

	side := "buy"
	entry := Recommendation{Kind: KindEntry, Ordered: true, Bias: Buy, Title: "BUY ENTRY ZONES (Priority Order)"}
	if !up {
		side = "sell"
		entry.Bias = Sell
		entry.Title = "SELL ENTRY ZONES (Priority Order)"
	}
	for _, p := range entryPriority {
		lvl, ok := Find(retracements, p.ratio)
		if !ok {
			continue
		}
		note := p.note
		if p.ratio == goldenRetracement {
			note = fmt.Sprintf(p.note, side)
		}
		entry.Items = append(entry.Items, RecommendationItem{
			Label: p.label,
			Text:  FormatPrice(lvl.Price) + " - " + note,
		})
	}
	if up {
		entry.Footer = fmt.Sprintf("Stop Loss: Below %s (78.6%% level or previous low)", FormatPrice(pr.Low))
	} else {
		entry.Footer = fmt.Sprintf("Stop Loss: Above %s (78.6%% level or previous high)", FormatPrice(pr.High))
	}

	profit := Recommendation{Kind: KindProfit, Title: "TAKE PROFIT TARGETS"}
	if up {
		profit.Items = append(profit.Items, RecommendationItem{Label: "TP1", Text: "Previous high " + FormatPrice(pr.High)})
	} else {
		profit.Items = append(profit.Items, RecommendationItem{Label: "TP1", Text: "Previous low " + FormatPrice(pr.Low)})
	}
	profit.Items = append(profit.Items,
		RecommendationItem{Label: "TP2", Text: "127.2% Extension"},
		RecommendationItem{Label: "TP3", Text: "161.8% Extension (Golden target)"},
	)

	strategy := Recommendation{Kind: KindStrategy, Title: "TRADING STRATEGY"}
	for _, n := range strategyNotes {
		strategy.Items = append(strategy.Items, RecommendationItem{Text: n})
	}

	return []Recommendation{setup, entry, profit, strategy}
}
