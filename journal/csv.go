package journal

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/rustyeddy/fibjournal/fib"
)

// WriteCSV writes one row per entry with a price column per retracement
// ratio of the default table. Prices use fib.PricePrecision decimals.
func WriteCSV(w io.Writer, entries []Entry) error {
	ratios := fib.DefaultRatios().Retracement

	header := []string{"id", "symbol", "date", "trend", "high", "low", "range"}
	for _, r := range ratios {
		header = append(header, levelColumn(r))
	}
	header = append(header, "notes", "created_at")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.Symbol,
			e.Date,
			e.Trend.String(),
			fib.FormatPrice(e.High),
			fib.FormatPrice(e.Low),
			fib.FormatPrice(e.Range),
		}
		for _, r := range ratios {
			if lvl, ok := fib.Find(e.Levels, r); ok {
				row = append(row, fib.FormatPrice(lvl.Price))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, e.Notes, e.CreatedAt.UTC().Format(time.RFC3339))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// levelColumn names a ratio column the way saved entries key their
// levels: 0.236 -> fib_236, 0.5 -> fib_50, 1 -> fib_100.
func levelColumn(r float64) string {
	p := strings.TrimSuffix(fib.PercentLabel(r), "%")
	p = strings.TrimSuffix(p, ".0")
	return "fib_" + strings.ReplaceAll(p, ".", "")
}
