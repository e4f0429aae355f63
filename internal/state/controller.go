package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/skipper/internal/skips"
)

// Phase is the progress of the one fetch a Controller performs.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrLoadStarted is returned by BeginLoad once a fetch has been issued.
	ErrLoadStarted = errors.New("load already started")
	// ErrNotLoading is returned by Complete outside the loading phase.
	ErrNotLoading = errors.New("no load in progress")
)

// InvalidSelectionError rejects a selection of a record that is not part
// of the current record set.
type InvalidSelectionError struct {
	ID    int64
	Phase Phase
}

func (e *InvalidSelectionError) Error() string {
	if e.Phase != PhaseReady {
		return fmt.Sprintf("cannot select skip %d while %s", e.ID, e.Phase)
	}
	return fmt.Sprintf("skip %d is not in the current record set", e.ID)
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Phase      Phase
	Records    []skips.Skip
	Visible    []skips.Skip
	Query      string
	Selected   *skips.Skip
	LastError  error
	StartedAt  time.Time
	FinishedAt time.Time
}

// HasSelection reports whether a skip is selected.
func (s Snapshot) HasSelection() bool {
	return s.Selected != nil
}

// Controller owns the record set, filter query and selection for one
// picker instance. It is not safe for concurrent use; the UI update loop
// is its only writer.
type Controller struct {
	phase      Phase
	records    []skips.Skip
	index      map[int64]int
	err        error
	query      string
	selected   *skips.Skip
	startedAt  time.Time
	finishedAt time.Time
}

// NewController returns an idle controller with no records and no selection.
func NewController() *Controller {
	return &Controller{phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// BeginLoad moves idle to loading. A controller fetches exactly once; a
// full reload means building a new controller.
func (c *Controller) BeginLoad() error {
	if c.phase != PhaseIdle {
		return ErrLoadStarted
	}
	c.phase = PhaseLoading
	c.startedAt = time.Now()
	return nil
}

// Complete records the outcome of the fetch. A nil err stores records as
// the new set and moves to ready; otherwise the error is kept and the
// controller is failed for good.
func (c *Controller) Complete(records []skips.Skip, err error) error {
	if c.phase != PhaseLoading {
		return ErrNotLoading
	}
	c.finishedAt = time.Now()
	if err != nil {
		c.phase = PhaseFailed
		c.err = err
		c.records = nil
		c.index = nil
		c.selected = nil
		return nil
	}
	c.phase = PhaseReady
	c.err = nil
	c.records = skips.Clone(records)
	c.index = make(map[int64]int, len(c.records))
	for i, r := range c.records {
		c.index[r.ID] = i
	}
	c.selected = nil
	return nil
}

// Err returns the fetch failure, if any.
func (c *Controller) Err() error {
	return c.err
}

// Records returns a copy of the full record set in fetch order.
func (c *Controller) Records() []skips.Skip {
	return skips.Clone(c.records)
}

// SetQuery replaces the filter query. Selection is untouched.
func (c *Controller) SetQuery(query string) {
	c.query = query
}

// Query returns the current filter query.
func (c *Controller) Query() string {
	return c.query
}

// Visible returns the records matching the current query.
func (c *Controller) Visible() []skips.Skip {
	return Filter(c.records, c.query)
}

// Select toggles the selection of the record with the given id: a
// different or absent selection becomes id, the same id clears it.
// Unknown ids are rejected with *InvalidSelectionError and leave the
// selection unchanged.
func (c *Controller) Select(id int64) error {
	if c.phase != PhaseReady {
		return &InvalidSelectionError{ID: id, Phase: c.phase}
	}
	i, ok := c.index[id]
	if !ok {
		return &InvalidSelectionError{ID: id, Phase: c.phase}
	}
	if c.selected != nil && c.selected.ID == id {
		c.selected = nil
		return nil
	}
	record := c.records[i]
	c.selected = &record
	return nil
}

// Deselect clears the selection.
func (c *Controller) Deselect() {
	c.selected = nil
}

// Selected returns the selected record regardless of the current filter.
func (c *Controller) Selected() (skips.Skip, bool) {
	if c.selected == nil {
		return skips.Skip{}, false
	}
	return *c.selected, true
}

// Continue reports the selection to the caller. It never changes state.
func (c *Controller) Continue() (skips.Skip, bool) {
	return c.Selected()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      c.phase,
		Records:    skips.Clone(c.records),
		Visible:    c.Visible(),
		Query:      c.query,
		LastError:  c.err,
		StartedAt:  c.startedAt,
		FinishedAt: c.finishedAt,
	}
	if c.selected != nil {
		sel := *c.selected
		snap.Selected = &sel
	}
	return snap
}

// Filter returns the records whose size contains query as a
// case-insensitive substring, in input order. An empty query keeps every
// record. The result never aliases records.
func Filter(records []skips.Skip, query string) []skips.Skip {
	if query == "" {
		return skips.Clone(records)
	}
	needle := strings.ToLower(query)
	var out []skips.Skip
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.SizeString()), needle) {
			out = append(out, r)
		}
	}
	return out
}
