// Package todo holds the task list state, keeps it in sync with a key-value
// Storage and renders it into View snapshots.
package todo

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tgienger/todo/internal/models"
)

// DefaultKey is the storage key holding the JSON array of tasks
const DefaultKey = "todo-items"

// Option configures a Store
type Option func(*Store)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for load failures and persistence errors
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithIDFunc replaces the id generator
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store owns the ordered task list and the derived search view.
// It is not safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger
	newID   func() string

	items     []models.Task
	filtered  []models.Task
	filtering bool
	query     string

	listeners []func(View)
}

// NewStore creates a store backed by storage and loads the persisted items
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:   NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = s.Load()
	return s
}

// Load reads the persisted items. Missing or unreadable data, invalid JSON
// and non-array values yield an empty list. Array elements that are not
// tasks are skipped.
func (s *Store) Load() []models.Task {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		s.logger.Error("todo items read error", "key", s.key, "err", err)
		return []models.Task{}
	}
	if !ok {
		return []models.Task{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		s.logger.Error("todo items parse error", "key", s.key, "err", err)
		return []models.Task{}
	}

	// A bad element only costs that element
	items := make([]models.Task, 0, len(elems))
	for i, elem := range elems {
		var t models.Task
		if err := json.Unmarshal(elem, &t); err != nil {
			s.logger.Error("skipping malformed todo item", "key", s.key, "index", i, "err", err)
			continue
		}
		items = append(items, t)
	}
	return items
}

// Persist overwrites the storage key with the current items
func (s *Store) Persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode todo items: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("save todo items: %w", err)
	}
	return nil
}

// Add appends a new unchecked task. The caller is responsible for rejecting
// blank titles.
func (s *Store) Add(title string) (models.Task, error) {
	task := models.Task{
		ID:    s.newID(),
		Title: title,
	}
	s.items = append(s.items, task)
	return task, s.commit()
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	kept := make([]models.Task, 0, len(s.items))
	for _, t := range s.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.items = kept
	return s.commit()
}

// Toggle flips the checked state of the task with the given id
func (s *Store) Toggle(id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsChecked = !s.items[i].IsChecked
		}
	}
	return s.commit()
}

// ClearAll removes every task
func (s *Store) ClearAll() error {
	s.items = []models.Task{}
	return s.commit()
}

// ApplyFilter narrows the displayed tasks to titles containing query,
// ignoring case. An empty result is still an active filter.
func (s *Store) ApplyFilter(query string) {
	s.query = query
	s.filtering = true
	s.refilter()
	s.notify()
}

// ClearFilter drops the active search
func (s *Store) ClearFilter() {
	s.query = ""
	s.filtering = false
	s.filtered = nil
	s.notify()
}

// Items returns a copy of the full task list
func (s *Store) Items() []models.Task {
	return append([]models.Task{}, s.items...)
}

// Filtered returns a copy of the search view and whether a filter is active
func (s *Store) Filtered() ([]models.Task, bool) {
	if !s.filtering {
		return nil, false
	}
	return append([]models.Task{}, s.filtered...), true
}

// Query returns the active search query, or "" when no filter is active
func (s *Store) Query() string {
	return s.query
}

// Len returns the number of tasks in the full list
func (s *Store) Len() int {
	return len(s.items)
}

// Get looks up a task by id
func (s *Store) Get(id string) (models.Task, bool) {
	for _, t := range s.items {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// View renders the current state
func (s *Store) View() View {
	return Render(s.items, s.filtered, s.filtering, s.query)
}

// OnRender registers fn to receive a fresh View after every change.
// fn is called once immediately with the current state.
func (s *Store) OnRender(fn func(View)) {
	s.listeners = append(s.listeners, fn)
	fn(s.View())
}

// commit keeps the search view in step with items, persists and re-renders.
// Listeners are notified even when persisting fails.
func (s *Store) commit() error {
	if s.filtering {
		s.refilter()
	}
	err := s.Persist()
	s.notify()
	return err
}

func (s *Store) refilter() {
	q := strings.ToLower(s.query)
	s.filtered = make([]models.Task, 0, len(s.items))
	for _, t := range s.items {
		if strings.Contains(strings.ToLower(t.Title), q) {
			s.filtered = append(s.filtered, t)
		}
	}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	v := s.View()
	for _, fn := range s.listeners {
		fn(v)
	}
}
