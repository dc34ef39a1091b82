package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/rustyeddy/fibjournal/fib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock returns a Now func that advances one minute per call.
func clock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

func newTestJournal(t *testing.T, opts Options) (*Journal, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	if opts.Now == nil {
		opts.Now = clock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	}
	return New(store, opts), store
}

func btcDraft() Draft {
	return Draft{
		Symbol: "BTC/USDT",
		Date:   "2024-03-15",
		High:   100,
		Low:    50,
		Trend:  fib.Uptrend,
		Notes:  "pullback into golden pocket",
	}
}

func TestAddComputesSnapshot(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{})

	e, err := j.Add(btcDraft())
	require.NoError(t, err)

	assert.Len(t, e.ID, 26)
	assert.Equal(t, "BTC/USDT", e.Symbol)
	assert.Equal(t, 50.0, e.Range)
	assert.True(t, e.CreatedAt.Equal(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))
	assert.True(t, e.UpdatedAt.IsZero())
	require.Len(t, e.Levels, 7)
	require.Len(t, e.Extensions, 7)

	golden, ok := fib.Find(e.Levels, 0.618)
	require.True(t, ok)
	assert.InDelta(t, 69.1, golden.Price, 1e-9)

	entries, err := j.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, e.Levels, entries[0].Levels)
}

func TestAddDefaultsDate(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{})
	d := btcDraft()
	d.Date = ""

	e, err := j.Add(d)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", e.Date)
}

func TestAddRejectsInvalidDrafts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Draft)
		target error
	}{
		{"missing symbol", func(d *Draft) { d.Symbol = "  " }, ErrSymbolRequired},
		{"bad date", func(d *Draft) { d.Date = "15/03/2024" }, ErrInvalidDate},
		{"high equals low", func(d *Draft) { d.Low = d.High }, fib.ErrInvalidRange},
		{"high below low", func(d *Draft) { d.High = 10 }, fib.ErrInvalidRange},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			j, _ := newTestJournal(t, Options{})
			d := btcDraft()
			tt.mutate(&d)

			_, err := j.Add(d)
			assert.ErrorIs(t, err, tt.target)

			entries, err := j.List()
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestAddMostRecentFirstAndCapped(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{})

	var ids []string
	for i := 0; i < DefaultMaxEntries+5; i++ {
		d := btcDraft()
		d.Symbol = fmt.Sprintf("SYM%02d", i)
		e, err := j.Add(d)
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	entries, err := j.List()
	require.NoError(t, err)
	require.Len(t, entries, DefaultMaxEntries)

	assert.Equal(t, "SYM24", entries[0].Symbol)
	assert.Equal(t, "SYM05", entries[len(entries)-1].Symbol)
	assert.Equal(t, ids[len(ids)-1], entries[0].ID)
}

func TestCustomMaxEntries(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{MaxEntries: 2})
	for i := 0; i < 3; i++ {
		_, err := j.Add(btcDraft())
		require.NoError(t, err)
	}
	entries, err := j.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpdateKeepsIdentityAndPosition(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{})

	first, err := j.Add(btcDraft())
	require.NoError(t, err)
	second := btcDraft()
	second.Symbol = "ETH/USDT"
	_, err = j.Add(second)
	require.NoError(t, err)

	d := first.Draft()
	d.Trend = fib.Downtrend
	d.Notes = "flipped"

	updated, err := j.Update(first.ID, d)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(first.CreatedAt))
	assert.False(t, updated.UpdatedAt.IsZero())
	assert.Equal(t, fib.Downtrend, updated.Trend)
	assert.Equal(t, 50.0, updated.Levels[0].Price)

	entries, err := j.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ETH/USDT", entries[0].Symbol)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, "flipped", entries[1].Notes)
}

func TestUpdateErrors(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{})
	e, err := j.Add(btcDraft())
	require.NoError(t, err)

	_, err = j.Update("missing", btcDraft())
	assert.ErrorIs(t, err, ErrNotFound)

	bad := e.Draft()
	bad.Low = 200
	_, err = j.Update(e.ID, bad)
	assert.ErrorIs(t, err, fib.ErrInvalidRange)

	got, err := j.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Low)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{})
	a, err := j.Add(btcDraft())
	require.NoError(t, err)
	b, err := j.Add(btcDraft())
	require.NoError(t, err)

	require.NoError(t, j.Delete(a.ID))

	entries, err := j.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, b.ID, entries[0].ID)

	assert.ErrorIs(t, j.Delete(a.ID), ErrNotFound)
	_, err = j.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMalformedStateLoadsEmpty(t *testing.T) {
	t.Parallel()

	j, store := newTestJournal(t, Options{})
	store.SetRaw(DefaultKey, []byte(`{not json`))

	entries, err := j.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = j.Add(btcDraft())
	require.NoError(t, err)
	entries, err = j.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestKeysAreIndependent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	a := New(store, Options{Key: "a"})
	b := New(store, Options{Key: "b"})

	_, err := a.Add(btcDraft())
	require.NoError(t, err)

	entries, err := b.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRestoreCaps(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t, Options{MaxEntries: 3})
	var entries []Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, Entry{ID: fmt.Sprintf("E%d", i), Symbol: "X", High: 2, Low: 1, Range: 1})
	}

	n, err := j.Restore(entries)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := j.List()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "E0", got[0].ID)
}

func TestRestoreRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"missing id", []Entry{{Symbol: "X", High: 2, Low: 1}}, ErrMissingID},
		{"duplicate id", []Entry{
			{ID: "A", Symbol: "X", High: 2, Low: 1},
			{ID: "A", Symbol: "Y", High: 4, Low: 3},
		}, ErrDuplicateID},
		{"inverted range", []Entry{{ID: "A", Symbol: "X", High: 10, Low: 20}}, fib.ErrInvalidRange},
		{"flat range", []Entry{{ID: "A", Symbol: "X", High: 5, Low: 5}}, fib.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, _ := newTestJournal(t, Options{})
			_, err := j.Add(btcDraft())
			require.NoError(t, err)

			n, err := j.Restore(tt.entries)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, n)

			got, err := j.List()
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "BTC/USDT", got[0].Symbol)
		})
	}
}
