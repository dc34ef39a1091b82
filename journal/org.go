package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fibjournal/fib"
)

// FormatEntryOrg renders an entry as an Org-mode block: structured facts
// in a PROPERTIES drawer, the level snapshot as a table, notes below.
func FormatEntryOrg(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Fib: %s %s (%s)\n", e.Symbol, e.Date, shortID(e.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", e.ID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", e.Symbol)
	fmt.Fprintf(&b, ":DATE: %s\n", e.Date)
	fmt.Fprintf(&b, ":TREND: %s\n", e.Trend)
	fmt.Fprintf(&b, ":HIGH: %s\n", fib.FormatPrice(e.High))
	fmt.Fprintf(&b, ":LOW: %s\n", fib.FormatPrice(e.Low))
	fmt.Fprintf(&b, ":RANGE: %s\n", fib.FormatPrice(e.Range))
	fmt.Fprintf(&b, ":CREATED: %s\n", e.CreatedAt.UTC().Format(time.RFC3339))
	if !e.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, ":UPDATED: %s\n", e.UpdatedAt.UTC().Format(time.RFC3339))
	}
	b.WriteString(":END:\n")

	writeOrgTable(&b, "Retracements", e.Levels)
	writeOrgTable(&b, "Extensions", e.Extensions)

	if e.Notes != "" {
		b.WriteString("\n*** Notes\n")
		b.WriteString(e.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEntriesOrg renders multiple entries separated by blank lines.
func FormatEntriesOrg(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}

func writeOrgTable(b *strings.Builder, title string, levels []fib.LevelResult) {
	if len(levels) == 0 {
		return
	}
	fmt.Fprintf(b, "\n*** %s\n", title)
	b.WriteString("| Level | Price | Position | Zone |\n")
	b.WriteString("|-------+-------+----------+------|\n")
	for _, l := range levels {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", l.Percent, fib.FormatPrice(l.Price), l.Position, l.Zone)
	}
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
