package todo

import (
	"strings"
	"time"
)

// DisappearDelay is how long a deleted row stays in its disappearing state
// before the task is removed.
const DisappearDelay = 400 * time.Millisecond

// DeleteAllPrompt is the question asked before clearing the list
const DeleteAllPrompt = "Are you sure you want to delete all?"

// Confirmer asks the user a yes/no question
type Confirmer func(prompt string) bool

// Controller translates user interactions into store operations
type Controller struct {
	store        *Store
	disappearing map[string]bool
	lastErr      error
}

// NewController binds a controller to store
func NewController(store *Store) *Controller {
	return &Controller{
		store:        store,
		disappearing: make(map[string]bool),
	}
}

// Store returns the underlying store
func (c *Controller) Store() *Store {
	return c.store
}

// SubmitNewTask adds input as a new task unless it is blank, and resets the
// search. It reports whether a task was added; the caller then clears its
// input field.
func (c *Controller) SubmitNewTask(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	_, err := c.store.Add(input)
	c.record("add", err)
	c.store.ClearFilter()
	return true
}

// SubmitSearch does nothing. Search follows SearchInput as the user types.
func (c *Controller) SubmitSearch() {}

// SearchInput filters by the trimmed value, or clears the filter when it is
// blank.
func (c *Controller) SearchInput(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		c.store.ClearFilter()
		return
	}
	c.store.ApplyFilter(value)
}

// DeleteAll clears the list if confirm answers yes
func (c *Controller) DeleteAll(confirm Confirmer) bool {
	if !confirm(DeleteAllPrompt) {
		return false
	}
	clear(c.disappearing)
	c.record("clear", c.store.ClearAll())
	return true
}

// DeleteItem starts the disappearing transition for id. The caller must call
// FinishDelete after the returned delay. ok is false when the row is already
// disappearing, in which case no second removal needs scheduling.
func (c *Controller) DeleteItem(id string) (delay time.Duration, ok bool) {
	if c.disappearing[id] {
		return 0, false
	}
	c.disappearing[id] = true
	return DisappearDelay, true
}

// FinishDelete removes id once its transition has elapsed. Stale ids are
// ignored.
func (c *Controller) FinishDelete(id string) {
	delete(c.disappearing, id)
	c.record("remove", c.store.Remove(id))
}

// Disappearing reports whether id is in its removal transition
func (c *Controller) Disappearing(id string) bool {
	return c.disappearing[id]
}

// ChangeCheckbox toggles the task whose row id is id
func (c *Controller) ChangeCheckbox(id string) {
	c.record("toggle", c.store.Toggle(id))
}

// LastErr returns the most recent persistence error, or nil if the last
// mutation succeeded.
func (c *Controller) LastErr() error {
	return c.lastErr
}

func (c *Controller) record(op string, err error) {
	c.lastErr = err
	if err != nil {
		c.store.logger.Error("todo operation failed", "op", op, "err", err)
	}
}
