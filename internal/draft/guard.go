// Package draft implements the unsaved-changes guard over the store.
//
// Persistence already happens on every dispatch, so the guard is a
// confirmation gate and not a durability mechanism.
package draft

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/store"
)

// State of the guard.
type State string

// Guard states
const (
	StateClean           State = "clean"
	StatePendingDecision State = "pending_decision"
)

// Decision is the user's answer to the confirmation prompt.
type Decision string

// Decisions
const (
	DecisionSave    Decision = "save"
	DecisionDiscard Decision = "discard"
	DecisionCancel  Decision = "cancel"
)

// ParseDecision validates a decision name.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionSave, DecisionDiscard, DecisionCancel:
		return d, nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// ErrNoPendingDecision is returned by Decide when the prompt is not open.
var ErrNoPendingDecision = errors.New("no decision pending")

// ErrDecisionPending is returned by Trigger when the prompt is already open.
var ErrDecisionPending = errors.New("a decision is already pending")

// Action is the work a trigger wants to perform once the user agrees.
type Action struct {
	Name string
	Run  func() error
}

// Status is the observable state of the guard.
type Status struct {
	State             State  `json:"state"`
	Dirty             bool   `json:"dirty"`
	NeedsConfirmation bool   `json:"needsConfirmation"`
	PendingAction     string `json:"pendingAction,omitempty"`
}

// Outcome reports what happened to a trigger or decision.
type Outcome struct {
	Status  Status `json:"status"`
	Ran     string `json:"ran,omitempty"`
	Dropped string `json:"dropped,omitempty"`
}

// Guard tracks whether a confirmation prompt is open and which action is
// waiting on it.
type Guard struct {
	store *store.Store

	mu      sync.Mutex
	state   State
	pending *Action
}

// NewGuard creates a guard over s.
func NewGuard(s *store.Store) *Guard {
	return &Guard{store: s, state: StateClean}
}

// NeedsConfirmation reports whether leaving now should prompt the user.
func (g *Guard) NeedsConfirmation() bool {
	return g.store.IsDirty()
}

// Status returns the current guard status.
func (g *Guard) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

func (g *Guard) statusLocked() Status {
	dirty := g.store.IsDirty()
	st := Status{State: g.state, Dirty: dirty, NeedsConfirmation: dirty}
	if g.pending != nil {
		st.PendingAction = g.pending.Name
	}
	return st
}

// Trigger requests an action that would discard unsaved work. When the
// document is clean the action runs immediately; otherwise the prompt opens
// and the action waits for Decide.
func (g *Guard) Trigger(a Action) (Outcome, error) {
	g.mu.Lock()
	if g.state == StatePendingDecision {
		g.mu.Unlock()
		return Outcome{Status: g.Status()}, ErrDecisionPending
	}
	if g.store.IsDirty() {
		g.state = StatePendingDecision
		g.pending = &a
		out := Outcome{Status: g.statusLocked()}
		g.mu.Unlock()
		return out, nil
	}
	g.mu.Unlock()

	if err := run(a); err != nil {
		return Outcome{Status: g.Status()}, err
	}
	return Outcome{Status: g.Status(), Ran: a.Name}, nil
}

// Decide answers the open prompt. Save and discard mark the store clean and
// run the pending action; cancel closes the prompt and drops it.
func (g *Guard) Decide(d Decision) (Outcome, error) {
	g.mu.Lock()
	if g.state != StatePendingDecision {
		g.mu.Unlock()
		return Outcome{Status: g.Status()}, ErrNoPendingDecision
	}
	pending := g.pending
	g.state = StateClean
	g.pending = nil
	g.mu.Unlock()

	var name string
	if pending != nil {
		name = pending.Name
	}

	if d == DecisionCancel {
		return Outcome{Status: g.Status(), Dropped: name}, nil
	}

	g.store.MarkClean()
	if pending == nil {
		return Outcome{Status: g.Status()}, nil
	}
	if err := run(*pending); err != nil {
		return Outcome{Status: g.Status()}, err
	}
	return Outcome{Status: g.Status(), Ran: name}, nil
}

func run(a Action) error {
	if a.Run == nil {
		return nil
	}
	return a.Run()
}
