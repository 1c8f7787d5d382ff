package resource

import (
	"fmt"
	"sync"
)

// Phase is the coarse state of a view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseEditing
	PhaseSaving
)

// String returns a log-friendly phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseEditing:
		return "editing"
	case PhaseSaving:
		return "saving"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a phase plus the row index for Editing and Saving.
type State struct {
	Phase Phase
	Index int
}

// String returns a log-friendly state name such as "editing(2)".
func (s State) String() string {
	switch s.Phase {
	case PhaseEditing, PhaseSaving:
		return fmt.Sprintf("%s(%d)", s.Phase, s.Index)
	default:
		return s.Phase.String()
	}
}

// Editing reports whether a row is under edit, including while it saves.
func (s State) Editing() (int, bool) {
	if s.Phase == PhaseEditing || s.Phase == PhaseSaving {
		return s.Index, true
	}
	return 0, false
}

// Event drives a view transition.
type Event int

const (
	EventLoadStart Event = iota
	EventLoadDone
	EventBegin
	EventSaveStart
	EventSaveOK
	EventSaveFail
	EventCancel
	// EventRowMoved re-points an open edit after the collection changed.
	// A negative index means the edited row is gone.
	EventRowMoved
)

// String returns a log-friendly event name.
func (e Event) String() string {
	switch e {
	case EventLoadStart:
		return "load_start"
	case EventLoadDone:
		return "load_done"
	case EventBegin:
		return "begin"
	case EventSaveStart:
		return "save_start"
	case EventSaveOK:
		return "save_ok"
	case EventSaveFail:
		return "save_fail"
	case EventCancel:
		return "cancel"
	case EventRowMoved:
		return "row_moved"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Transition applies ev to from. index is only read by EventBegin and
// EventRowMoved.
//
// Load events never disturb an open edit: a load that starts or finishes
// while a row is under edit leaves the state unchanged. EventRowMoved keeps
// the edit on the same entity when rows shift, closes an edit whose row was
// removed and leaves a pending save alone until it settles.
func Transition(from State, ev Event, index int) (State, error) {
	switch ev {
	case EventLoadStart:
		if from.Phase == PhaseReady {
			return State{Phase: PhaseLoading}, nil
		}
		return from, nil
	case EventLoadDone:
		if from.Phase == PhaseLoading {
			return State{Phase: PhaseReady}, nil
		}
		return from, nil
	case EventBegin:
		switch from.Phase {
		case PhaseLoading:
			return from, ErrNotReady
		case PhaseReady:
			if index < 0 {
				return from, ErrRowNotFound
			}
			return State{Phase: PhaseEditing, Index: index}, nil
		case PhaseEditing:
			if from.Index != index {
				return from, ErrEditInProgress
			}
			return from, nil
		case PhaseSaving:
			return from, ErrSaveInFlight
		}
	case EventSaveStart:
		switch from.Phase {
		case PhaseEditing:
			return State{Phase: PhaseSaving, Index: from.Index}, nil
		case PhaseSaving:
			return from, ErrSaveInFlight
		default:
			return from, ErrNoActiveEdit
		}
	case EventSaveOK:
		if from.Phase == PhaseSaving {
			return State{Phase: PhaseReady}, nil
		}
	case EventSaveFail:
		if from.Phase == PhaseSaving {
			return State{Phase: PhaseEditing, Index: from.Index}, nil
		}
	case EventCancel:
		switch from.Phase {
		case PhaseEditing:
			return State{Phase: PhaseReady}, nil
		case PhaseSaving:
			return from, ErrSaveInFlight
		default:
			return from, nil
		}
	case EventRowMoved:
		switch from.Phase {
		case PhaseEditing:
			if index < 0 {
				return State{Phase: PhaseReady}, nil
			}
			return State{Phase: PhaseEditing, Index: index}, nil
		case PhaseSaving:
			if index < 0 {
				return from, nil
			}
			return State{Phase: PhaseSaving, Index: index}, nil
		default:
			return from, nil
		}
	}
	return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, from)
}

// Machine holds the current view state behind a mutex.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a machine in the Loading phase, the state of a freshly
// mounted view.
func NewMachine() *Machine {
	return &Machine{state: State{Phase: PhaseLoading}}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fire applies ev and returns the resulting state. A rejected event leaves
// the state unchanged.
func (m *Machine) Fire(ev Event, index int) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := Transition(m.state, ev, index)
	if err != nil {
		return m.state, err
	}
	m.state = next
	return next, nil
}
