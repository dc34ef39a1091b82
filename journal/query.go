package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAmbiguousID = errors.New("ambiguous entry id")

// Filter selects entries by symbol and journal date. Zero fields match
// everything.
type Filter struct {
	Symbol string
	From   time.Time // inclusive
	To     time.Time // exclusive
}

func (f Filter) match(e Entry) bool {
	if f.Symbol != "" && !strings.EqualFold(f.Symbol, e.Symbol) {
		return false
	}
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return false
	}
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !d.Before(f.To) {
		return false
	}
	return true
}

// Select returns the entries matching f, keeping their order.
func Select(entries []Entry, f Filter) []Entry {
	var out []Entry
	for _, e := range entries {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// ListFiltered is List followed by Select.
func (j *Journal) ListFiltered(f Filter) ([]Entry, error) {
	entries, err := j.List()
	if err != nil {
		return nil, err
	}
	return Select(entries, f), nil
}

// DayBounds returns [start, end) of the YYYY-MM-DD day in UTC, the
// zone journal dates are compared in.
func DayBounds(day string) (time.Time, time.Time, error) {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return t, t.AddDate(0, 0, 1), nil
}

// Resolve expands an id prefix, as printed by the short Org headings, to
// the full entry id.
func (j *Journal) Resolve(prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	entries, err := j.List()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, e := range entries {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d entries", ErrAmbiguousID, prefix, len(matches))
	}
}
