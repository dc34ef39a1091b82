package journal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/fibjournal/fib"
	"github.com/rustyeddy/fibjournal/id"
	"github.com/rustyeddy/fibjournal/logger"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultKey is the storage key the entry list lives under.
	DefaultKey = "tradingJournal"
	// DefaultMaxEntries caps the persisted list; oldest entries fall off.
	DefaultMaxEntries = 20

	DateLayout = "2006-01-02"
)

var (
	ErrNotFound       = errors.New("entry not found")
	ErrSymbolRequired = errors.New("symbol is required")
	ErrInvalidDate    = errors.New("invalid date")
	ErrMissingID      = errors.New("entry without id")
	ErrDuplicateID    = errors.New("duplicate entry id")
)

// Entry is one saved journal record with the levels computed when it
// was saved.
type Entry struct {
	ID         string            `json:"id"`
	Symbol     string            `json:"symbol"`
	Date       string            `json:"date"`
	High       float64           `json:"high"`
	Low        float64           `json:"low"`
	Range      float64           `json:"range"`
	Trend      fib.Trend         `json:"trend"`
	Notes      string            `json:"notes,omitempty"`
	Levels     []fib.LevelResult `json:"levels"`
	Extensions []fib.LevelResult `json:"extensions,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Draft is the user supplied part of an entry.
type Draft struct {
	Symbol string
	Date   string // YYYY-MM-DD, today when empty
	High   float64
	Low    float64
	Trend  fib.Trend
	Notes  string
}

// Validate checks the draft the way the entry form does before any
// levels are computed.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Symbol) == "" {
		return ErrSymbolRequired
	}
	if d.Date != "" {
		if _, err := time.Parse(DateLayout, d.Date); err != nil {
			return fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, d.Date)
		}
	}
	if _, err := fib.NewPriceRange(d.High, d.Low); err != nil {
		return err
	}
	return nil
}

// Store is the key-value persistence contract. Load returns the entries
// most-recent-first; unreadable state loads as an empty list.
type Store interface {
	Load(key string) ([]Entry, error)
	Save(key string, entries []Entry) error
	Close() error
}

// KeyLister is implemented by stores that can enumerate the journals
// they hold.
type KeyLister interface {
	Keys() ([]string, error)
}

type Options struct {
	Key        string
	MaxEntries int
	Ratios     fib.RatioTable
	Now        func() time.Time
	Log        logrus.FieldLogger
}

// Journal composes the level engine with a Store. Every mutation is a
// load, modify, save cycle; the last writer wins.
type Journal struct {
	store Store
	opts  Options
}

func New(store Store, opts Options) *Journal {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if len(opts.Ratios.Retracement) == 0 && len(opts.Ratios.Extension) == 0 {
		opts.Ratios = fib.DefaultRatios()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = logger.Discard().WithComponent("journal")
	}
	return &Journal{store: store, opts: opts}
}

// List returns all entries, most recent first.
func (j *Journal) List() ([]Entry, error) {
	entries, err := j.store.Load(j.opts.Key)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return entries, nil
}

func (j *Journal) Get(entryID string) (Entry, error) {
	entries, err := j.List()
	if err != nil {
		return Entry{}, err
	}
	i := indexOf(entries, entryID)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, entryID)
	}
	return entries[i], nil
}

// Add computes the levels for d and saves it at the top of the list.
func (j *Journal) Add(d Draft) (Entry, error) {
	now := j.opts.Now()
	e, err := j.build(d, now)
	if err != nil {
		return Entry{}, err
	}
	e.ID = id.NewAt(now)
	e.CreatedAt = now.UTC()

	entries, err := j.List()
	if err != nil {
		return Entry{}, err
	}
	entries = append([]Entry{e}, entries...)
	if len(entries) > j.opts.MaxEntries {
		j.opts.Log.WithField("dropped", len(entries)-j.opts.MaxEntries).Debug("journal full, dropping oldest entries")
		entries = entries[:j.opts.MaxEntries]
	}

	if err := j.save(entries); err != nil {
		return Entry{}, err
	}
	j.opts.Log.WithFields(logrus.Fields{"id": e.ID, "symbol": e.Symbol}).Info("entry added")
	return e, nil
}

// Update recomputes the entry in place. ID, CreatedAt and the entry's
// position in the list are kept.
func (j *Journal) Update(entryID string, d Draft) (Entry, error) {
	entries, err := j.List()
	if err != nil {
		return Entry{}, err
	}
	i := indexOf(entries, entryID)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, entryID)
	}

	now := j.opts.Now()
	e, err := j.build(d, now)
	if err != nil {
		return Entry{}, err
	}
	e.ID = entries[i].ID
	e.CreatedAt = entries[i].CreatedAt
	e.UpdatedAt = now.UTC()
	entries[i] = e

	if err := j.save(entries); err != nil {
		return Entry{}, err
	}
	j.opts.Log.WithField("id", e.ID).Info("entry updated")
	return e, nil
}

func (j *Journal) Delete(entryID string) error {
	entries, err := j.List()
	if err != nil {
		return err
	}
	i := indexOf(entries, entryID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, entryID)
	}
	entries = append(entries[:i], entries[i+1:]...)

	if err := j.save(entries); err != nil {
		return err
	}
	j.opts.Log.WithField("id", entryID).Info("entry deleted")
	return nil
}

// Restore replaces the stored list, keeping at most MaxEntries.
// Entries are checked first; nothing is saved if any is rejected.
func (j *Journal) Restore(entries []Entry) (int, error) {
	if err := checkEntries(entries); err != nil {
		return 0, err
	}
	if len(entries) > j.opts.MaxEntries {
		entries = entries[:j.opts.MaxEntries]
	}
	if err := j.save(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (j *Journal) build(d Draft, now time.Time) (Entry, error) {
	if err := d.Validate(); err != nil {
		return Entry{}, err
	}
	date := d.Date
	if date == "" {
		date = now.Format(DateLayout)
	}

	ret, err := fib.Retracement(j.opts.Ratios, d.High, d.Low, d.Trend)
	if err != nil {
		return Entry{}, err
	}
	ext, err := fib.Extension(j.opts.Ratios, d.High, d.Low, d.Trend)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Symbol:     strings.TrimSpace(d.Symbol),
		Date:       date,
		High:       d.High,
		Low:        d.Low,
		Range:      d.High - d.Low,
		Trend:      d.Trend,
		Notes:      d.Notes,
		Levels:     ret,
		Extensions: ext,
	}, nil
}

func (j *Journal) save(entries []Entry) error {
	if err := j.store.Save(j.opts.Key, entries); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}

func indexOf(entries []Entry, entryID string) int {
	for i := range entries {
		if entries[i].ID == entryID {
			return i
		}
	}
	return -1
}

// Draft returns the editable fields of e.
func (e Entry) Draft() Draft {
	return Draft{
		Symbol: e.Symbol,
		Date:   e.Date,
		High:   e.High,
		Low:    e.Low,
		Trend:  e.Trend,
		Notes:  e.Notes,
	}
}

// checkEntries rejects lists Add could not have produced: missing or
// repeated ids and ranges where high is not above low.
func checkEntries(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("entry %d: %w", i, ErrMissingID)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
		if err := (fib.PriceRange{High: e.High, Low: e.Low}).Validate(); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
	}
	return nil
}

// finiteEntry reports whether the entry's numbers can be JSON encoded.
func finiteEntry(e Entry) bool {
	for _, x := range []float64{e.High, e.Low, e.Range} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
