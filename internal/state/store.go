package state

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultMinItemSize is the smallest width or height an item may have.
const DefaultMinItemSize = 100

// ChangeKind says which store operation produced a Change.
type ChangeKind uint8

const (
	ChangeCreated ChangeKind = iota
	ChangeMoved
	ChangeResized
	ChangeContent
	ChangeDeleted
	ChangeSelection
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeMoved:
		return "moved"
	case ChangeResized:
		return "resized"
	case ChangeContent:
		return "content"
	case ChangeDeleted:
		return "deleted"
	case ChangeSelection:
		return "selection"
	}
	return "unknown"
}

// Change is delivered to subscribers after every effective mutation.
type Change struct {
	Kind     ChangeKind
	ID       string
	Revision uint64
}

// Store is the authoritative list of board items plus the selection and
// editing references that point into it.
//
// Every mutation replaces the item slice instead of writing into it, so a
// slice obtained from Items is never modified behind the caller's back.
type Store struct {
	mu       sync.RWMutex
	items    []BoardItem
	selected string
	editing  string
	minSize  int
	clock    revisionClock

	listeners    map[uint64]func(Change)
	nextListener uint64

	newID func() string
}

// NewStore creates an empty board. minItemSize values below 1 fall back to
// DefaultMinItemSize.
func NewStore(minItemSize int) *Store {
	if minItemSize < 1 {
		minItemSize = DefaultMinItemSize
	}
	return &Store{
		items:     make([]BoardItem, 0),
		minSize:   minItemSize,
		listeners: make(map[uint64]func(Change)),
		newID:     uuid.NewString,
	}
}

// MinItemSize returns the size floor enforced on every item.
func (s *Store) MinItemSize() int {
	return s.minSize
}

// Subscribe registers fn to run after each effective mutation. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.mu.Lock()
	s.nextListener++
	id := s.nextListener
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// notify runs listeners outside the lock so they may read the store.
func (s *Store) notify(c Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Create appends a new note at anchor and returns its id.
// An unknown variant is treated as VariantRect.
func (s *Store) Create(variant Variant, color string, anchor Point) string {
	if !variant.Valid() {
		log.WithField("variant", variant).Warn("unknown variant, using rect")
		variant = VariantRect
	}
	return s.add(BoardItem{
		Position: anchor,
		Size:     s.clampSize(variant.DefaultSize()),
		Color:    color,
		Variant:  variant,
	})
}

// CreateImage appends an image item of the given (already fitted) size.
// The size is kept as given so the image keeps its aspect ratio; the size
// floor only applies once the item is resized.
func (s *Store) CreateImage(img ImagePayload, size Size, anchor Point) string {
	payload := img
	payload.Data = slices.Clone(img.Data)
	return s.add(BoardItem{
		Position: anchor,
		Size:     Size{Width: max(1, size.Width), Height: max(1, size.Height)},
		Color:    "#fff",
		Content:  Content{Image: &payload},
		Variant:  VariantImage,
	})
}

func (s *Store) add(it BoardItem) string {
	s.mu.Lock()
	it.ID = s.newID()
	next := make([]BoardItem, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, it)
	rev := s.clock.tick()
	s.mu.Unlock()

	log.WithFields(log.Fields{"id": it.ID, "variant": it.Variant}).Debug("item created")
	s.notify(Change{Kind: ChangeCreated, ID: it.ID, Revision: rev})
	return it.ID
}

// UpdatePosition moves the item. Missing ids are ignored.
func (s *Store) UpdatePosition(id string, p Point) {
	s.update(id, ChangeMoved, func(it *BoardItem) { it.Position = p })
}

// UpdateSize resizes the item, clamping each side to the size floor.
// Missing ids are ignored.
func (s *Store) UpdateSize(id string, size Size) {
	size = s.clampSize(size)
	s.update(id, ChangeResized, func(it *BoardItem) { it.Size = size })
}

// UpdateContent replaces the item's content. Missing ids are ignored.
func (s *Store) UpdateContent(id string, c Content) {
	s.update(id, ChangeContent, func(it *BoardItem) { it.Content = c })
}

// UpdateText replaces only the text of the item's content.
func (s *Store) UpdateText(id string, text string) {
	s.update(id, ChangeContent, func(it *BoardItem) { it.Content.Text = text })
}

// update applies fn to a copy of the item and swaps in a new list when the
// result differs from what is stored.
func (s *Store) update(id string, kind ChangeKind, fn func(*BoardItem)) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		log.WithField("id", id).Debug("update on missing item ignored")
		return
	}
	changed := s.items[idx]
	fn(&changed)
	if changed.Equal(s.items[idx]) {
		s.mu.Unlock()
		return
	}
	next := slices.Clone(s.items)
	next[idx] = changed
	s.items = next
	rev := s.clock.tick()
	s.mu.Unlock()

	log.WithFields(log.Fields{"id": id, "change": kind}).Debug("item updated")
	s.notify(Change{Kind: kind, ID: id, Revision: rev})
}

// Delete removes the item and clears any selection or editing reference to
// it in the same critical section.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := make([]BoardItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	if s.selected == id {
		s.selected = ""
	}
	if s.editing == id {
		s.editing = ""
	}
	rev := s.clock.tick()
	s.mu.Unlock()

	log.WithField("id", id).Debug("item deleted")
	s.notify(Change{Kind: ChangeDeleted, ID: id, Revision: rev})
}

// Items returns the current authoritative list.
func (s *Store) Items() []BoardItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Item looks up a single item by id.
func (s *Store) Item(id string) (BoardItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return BoardItem{}, false
}

// Len returns the number of items on the board.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Revision returns the stamp of the latest effective mutation.
func (s *Store) Revision() uint64 {
	return s.clock.current()
}

// Select marks id as selected. Unknown ids are ignored; "" clears.
func (s *Store) Select(id string) {
	s.setRefs(func() bool {
		if id != "" && s.indexOf(id) < 0 {
			return false
		}
		if s.selected == id {
			return false
		}
		s.selected = id
		return true
	})
}

// SetEditing puts id into text-edit mode. Unknown ids are ignored; "" leaves
// edit mode.
func (s *Store) SetEditing(id string) {
	s.setRefs(func() bool {
		if id != "" && s.indexOf(id) < 0 {
			return false
		}
		if s.editing == id {
			return false
		}
		s.editing = id
		return true
	})
}

// ClearSelection drops both the selection and the editing reference.
func (s *Store) ClearSelection() {
	s.setRefs(func() bool {
		if s.selected == "" && s.editing == "" {
			return false
		}
		s.selected, s.editing = "", ""
		return true
	})
}

func (s *Store) setRefs(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	rev := s.clock.tick()
	sel := s.selected
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeSelection, ID: sel, Revision: rev})
}

// Selected returns the selected id, or "".
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Editing returns the id being edited, or "".
func (s *Store) Editing() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clampSize(size Size) Size {
	return Size{Width: max(s.minSize, size.Width), Height: max(s.minSize, size.Height)}
}
