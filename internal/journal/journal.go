// Package journal keeps one free-text entry per calendar day.
package journal

import (
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DateLayout formats entry keys.
const DateLayout = "2006-01-02"

// DefaultTemplate seeds a day that has no entry yet.
const DefaultTemplate = ""

// DateKey returns the entry key of the day t falls on, in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseKey is the inverse of DateKey, in the local zone.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("journal key %q: %w", key, err)
	}
	return t, nil
}

// Store persists entries by key.
type Store interface {
	Load(key string) (string, bool)
	Save(key, text string) error
	Keys() []string
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Load(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.entries[key]
	return s, ok
}

func (m *MemoryStore) Save(key, text string) error {
	m.mu.Lock()
	m.entries[key] = text
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Journal is the open-day cursor over a Store.
type Journal struct {
	store Store
	now   func() time.Time
	date  time.Time

	// OnChange runs after the open day or its text changes.
	OnChange func()
}

// New opens the journal on today's entry.
func New(store Store) *Journal {
	return newJournal(store, time.Now)
}

func newJournal(store Store, now func() time.Time) *Journal {
	j := &Journal{store: store, now: now}
	j.open(now())
	return j
}

func (j *Journal) open(day time.Time) {
	y, m, d := day.Date()
	j.date = time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	key := j.Key()
	if _, ok := j.store.Load(key); !ok {
		if err := j.store.Save(key, DefaultTemplate); err != nil {
			log.WithError(err).WithField("key", key).Warn("seed journal entry")
		}
	}
	if j.OnChange != nil {
		j.OnChange()
	}
}

// Date is midnight of the open day.
func (j *Journal) Date() time.Time { return j.date }

// Key is the open day's entry key.
func (j *Journal) Key() string { return DateKey(j.date) }

// Title formats the open day for a header, e.g. "Sat, Oct 17, 2026".
func (j *Journal) Title() string { return j.date.Format("Mon, Jan 2, 2006") }

// SetDate opens the entry for day.
func (j *Journal) SetDate(day time.Time) { j.open(day) }

// Shift moves the open day by n days.
func (j *Journal) Shift(n int) { j.open(j.date.AddDate(0, 0, n)) }

// Today opens the current day.
func (j *Journal) Today() { j.open(j.now()) }

// Text returns the open day's entry.
func (j *Journal) Text() string {
	s, ok := j.store.Load(j.Key())
	if !ok {
		return DefaultTemplate
	}
	return s
}

// SetText saves the open day's entry.
func (j *Journal) SetText(text string) error {
	key := j.Key()
	if err := j.store.Save(key, text); err != nil {
		log.WithError(err).WithField("key", key).Error("save journal entry")
		return fmt.Errorf("save journal %s: %w", key, err)
	}
	if j.OnChange != nil {
		j.OnChange()
	}
	return nil
}

// HasEntry reports whether day has non-template text.
func (j *Journal) HasEntry(day time.Time) bool {
	s, ok := j.store.Load(DateKey(day))
	return ok && s != DefaultTemplate
}
