package journal

import (
	"slices"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	prefsPrefix = "journal."
	prefsIndex  = "journal.keys"
)

// PrefsStore keeps entries in the application's Fyne preferences so they
// survive restarts.
type PrefsStore struct {
	mu    sync.Mutex
	prefs fyne.Preferences
}

// NewPrefsStore wraps p.
func NewPrefsStore(p fyne.Preferences) *PrefsStore {
	return &PrefsStore{prefs: p}
}

func (s *PrefsStore) Load(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.prefs.StringList(prefsIndex), key) {
		return "", false
	}
	return s.prefs.String(prefsPrefix + key), true
}

func (s *PrefsStore) Save(key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.prefs.StringList(prefsIndex)
	if !slices.Contains(keys, key) {
		keys = append(keys, key)
		slices.Sort(keys)
		s.prefs.SetStringList(prefsIndex, keys)
	}
	s.prefs.SetString(prefsPrefix+key, text)
	return nil
}

func (s *PrefsStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.prefs.StringList(prefsIndex))
}
