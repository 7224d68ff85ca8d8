package domain

// TransitionKind defines how a transition changes the navigation stack.
type TransitionKind int

const (
	// TransitionPush opens a screen on top of the current one.
	TransitionPush TransitionKind = iota + 1
	// TransitionPop dismisses Depth screens; the target is whatever lies beneath.
	TransitionPop
	// TransitionReset replaces the whole stack with the target.
	TransitionReset
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionPush:
		return "push"
	case TransitionPop:
		return "pop"
	case TransitionReset:
		return "reset"
	default:
		return "invalid"
	}
}

// Transition is an edge leaving a screen, with the steps that perform it.
type Transition struct {
	Kind  TransitionKind `json:"kind"`
	To    Screen         `json:"to,omitempty"`
	Depth int            `json:"depth,omitempty"`
	Steps []Step         `json:"steps"`
}

// Apply returns the navigation stack after following t.
// ok is false when a pop is deeper than the stack allows.
func (t Transition) Apply(stack []Screen) (next []Screen, ok bool) {
	switch t.Kind {
	case TransitionPush:
		next = make([]Screen, len(stack), len(stack)+1)
		copy(next, stack)
		return append(next, t.To), true
	case TransitionPop:
		if t.Depth < 1 || len(stack) <= t.Depth {
			return nil, false
		}
		next = make([]Screen, len(stack)-t.Depth)
		copy(next, stack)
		return next, true
	case TransitionReset:
		return []Screen{t.To}, true
	default:
		return nil, false
	}
}
