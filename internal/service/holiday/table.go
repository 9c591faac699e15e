package holiday

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
)

// Table is the loaded holiday set. It is safe for concurrent use and can
// be reloaded while being read.
type Table struct {
	source holiday.Source

	mu      sync.RWMutex
	byDate  map[civil.Date]string
	entries []holiday.Holiday
	origin  holiday.Origin
}

var _ holiday.Lookup = (*Table)(nil)

// NewTable starts with the fallback list. source may be nil, in which case
// Load keeps the fallback.
func NewTable(source holiday.Source) *Table {
	t := &Table{source: source}
	t.swap(fallbackHolidays(), holiday.OriginFallback)
	return t
}

// Load fetches the source and replaces the table. On failure a table
// already loaded from the source is kept, otherwise the fallback list is
// used; Load itself never fails.
func (t *Table) Load(ctx context.Context) {
	if t.source == nil {
		t.swap(fallbackHolidays(), holiday.OriginFallback)
		return
	}

	entries, err := t.source.Fetch(ctx)
	if err != nil {
		if t.Origin() == holiday.OriginSource {
			slog.Warn("Holiday refresh failed, keeping previous table", "error", err)
			return
		}
		slog.Warn("Holiday source unavailable, using fallback list", "error", err)
		t.swap(fallbackHolidays(), holiday.OriginFallback)
		return
	}

	t.swap(entries, holiday.OriginSource)
	slog.Info("Holidays loaded", "count", len(entries))
}

func (t *Table) swap(entries []holiday.Holiday, origin holiday.Origin) {
	byDate := make(map[civil.Date]string, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e.Name
	}

	sorted := make([]holiday.Holiday, 0, len(byDate))
	for d, name := range byDate {
		sorted = append(sorted, holiday.Holiday{Date: d, Name: name})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	t.byDate = byDate
	t.entries = sorted
	t.origin = origin
}

// Lookup implements holiday.Lookup.
func (t *Table) Lookup(date civil.Date) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	name, ok := t.byDate[date]
	return name, ok
}

// LookupString looks up a "YYYY-MM-DD" date.
func (t *Table) LookupString(date string) (string, bool) {
	d, err := civil.ParseDate(date)
	if err != nil {
		return "", false
	}
	return t.Lookup(d)
}

// Entries returns the holidays sorted by date.
func (t *Table) Entries() []holiday.Holiday {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]holiday.Holiday(nil), t.entries...)
}

func (t *Table) Origin() holiday.Origin {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.origin
}
