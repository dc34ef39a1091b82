// Package report renders level tables and journal entries for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rustyeddy/fibjournal/fib"
	"github.com/rustyeddy/fibjournal/journal"
)

// Printer writes reports to w. Colors are only emitted when enabled.
type Printer struct {
	w     io.Writer
	color bool
	Now   func() time.Time

	green, red, yellow, cyan, bold func(a ...interface{}) string
}

func New(w io.Writer, useColor bool) *Printer {
	p := &Printer{w: w, color: useColor, Now: time.Now}
	p.green = p.paint(color.FgGreen)
	p.red = p.paint(color.FgRed)
	p.yellow = p.paint(color.FgYellow)
	p.cyan = p.paint(color.FgCyan, color.Bold)
	p.bold = p.paint(color.Bold)
	return p
}

func (p *Printer) paint(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (p *Printer) biased(b fib.Bias, s string) string {
	switch b {
	case fib.Buy:
		return p.green(s)
	case fib.Sell:
		return p.red(s)
	default:
		return p.yellow(s)
	}
}

// Analysis prints the range summary, both level tables and the
// recommendation blocks.
func (p *Printer) Analysis(a fib.Analysis) error {
	p.RangeSummary(a.Range, a.Trend)
	if err := p.Levels("Fibonacci Retracement", "Zone", a.Retracements); err != nil {
		return err
	}
	if err := p.Levels("Fibonacci Extension", "Target", a.Extensions); err != nil {
		return err
	}
	p.Recommendations(a.Recommendations)
	return nil
}

func (p *Printer) RangeSummary(pr fib.PriceRange, trend fib.Trend) {
	fmt.Fprintln(p.w, p.cyan("Price Range"))
	fmt.Fprintf(p.w, "  High:  %s\n", fib.FormatPrice(pr.High))
	fmt.Fprintf(p.w, "  Low:   %s\n", fib.FormatPrice(pr.Low))
	fmt.Fprintf(p.w, "  Range: %s\n", fib.FormatPrice(pr.Range()))
	label := trend.Label()
	if trend == fib.Uptrend {
		label = p.green(label)
	} else {
		label = p.red(label)
	}
	fmt.Fprintf(p.w, "  Trend: %s\n\n", label)
}

// Levels prints one table. Key-zone rows are marked with "*", the golden
// extension with "★".
func (p *Printer) Levels(title, labelHeader string, levels []fib.LevelResult) error {
	fmt.Fprintln(p.w, p.cyan(title))

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  \tLevel\tPrice\tPosition\t%s\n", labelHeader)
	for _, l := range levels {
		mark := ""
		switch l.Highlight {
		case fib.HighlightKeyZone:
			mark = "*"
		case fib.HighlightGolden:
			mark = "★"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			mark, l.Percent, fib.FormatPrice(l.Price), l.Position, p.biased(l.Bias(), l.Zone))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(p.w)
	return nil
}

func (p *Printer) Recommendations(recs []fib.Recommendation) {
	for _, r := range recs {
		fmt.Fprintln(p.w, p.biased(r.Bias, p.bold(r.Title)))
		for i, item := range r.Items {
			bullet := "-"
			if r.Ordered {
				bullet = fmt.Sprintf("%d.", i+1)
			}
			if item.Label != "" {
				fmt.Fprintf(p.w, "  %s %s: %s\n", bullet, item.Label, item.Text)
			} else {
				fmt.Fprintf(p.w, "  %s %s\n", bullet, item.Text)
			}
		}
		if r.Footer != "" {
			fmt.Fprintf(p.w, "  %s\n", p.yellow(r.Footer))
		}
		fmt.Fprintln(p.w)
	}
}

// Entries prints a one line summary per journal entry.
func (p *Printer) Entries(entries []journal.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(p.w, "No journal entries saved yet.")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSymbol\tDate\tTrend\tHigh\tLow\tRange\tSaved")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Symbol, e.Date, e.Trend,
			fib.FormatPrice(e.High), fib.FormatPrice(e.Low), fib.FormatPrice(e.Range),
			p.ago(e.CreatedAt))
	}
	return tw.Flush()
}

// Entry prints one entry in full. When near is non-nil the level closest
// to that price is called out.
func (p *Printer) Entry(e journal.Entry, near *float64) error {
	fmt.Fprintf(p.w, "%s  %s\n", p.bold(e.Symbol), e.Date)
	fmt.Fprintf(p.w, "ID: %s (saved %s", e.ID, p.ago(e.CreatedAt))
	if !e.UpdatedAt.IsZero() {
		fmt.Fprintf(p.w, ", edited %s", p.ago(e.UpdatedAt))
	}
	fmt.Fprint(p.w, ")\n\n")

	p.RangeSummary(fib.PriceRange{High: e.High, Low: e.Low}, e.Trend)
	if err := p.Levels("Fibonacci Levels & Trading Decisions", "Zone", e.Levels); err != nil {
		return err
	}
	if len(e.Extensions) > 0 {
		if err := p.Levels("Fibonacci Extension", "Target", e.Extensions); err != nil {
			return err
		}
	}

	if near != nil {
		if l, ok := fib.Nearest(e.Levels, *near); ok {
			fmt.Fprintf(p.w, "Price %s is nearest the %s level (%s): %s\n\n",
				fib.FormatPrice(*near), l.Percent, fib.FormatPrice(l.Price), p.biased(l.Bias(), l.Zone))
		}
	}

	if strings.TrimSpace(e.Notes) != "" {
		fmt.Fprintln(p.w, p.bold("Notes"))
		fmt.Fprintln(p.w, e.Notes)
	}
	return nil
}

func (p *Printer) ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, p.Now(), "ago", "from now")
}
