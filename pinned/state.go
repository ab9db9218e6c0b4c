package pinned

import (
	"math"

	"github.com/lixenwraith/spatial-shell/input"
)

// State is the gesture phase of one pinned menu
type State uint8

const (
	Idle       State = iota
	Arming           // Show held, scroll below lock-in distance
	Scrolling        // Direction locked, highlighting a slot
	Confirming       // Show released, selection being committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Arming:
		return "arming"
	case Scrolling:
		return "scrolling"
	case Confirming:
		return "confirming"
	default:
		return "unknown"
	}
}

// EffectKind identifies a side effect requested by Step
type EffectKind uint8

const (
	// EffectAcquire takes the ray lock, hides the default ray and captures the scroll origin
	EffectAcquire EffectKind = iota
	// EffectHighlight highlights Effect.Slot only
	EffectHighlight
	// EffectCommit selects the highlighted button's tool
	EffectCommit
	// EffectCycle selects the tool after the active one
	EffectCycle
	// EffectPulse plays the click pulse on the menu's hand
	EffectPulse
	// EffectRelease clears highlights, ends the scroll session, releases the lock and restores the ray
	EffectRelease
)

func (k EffectKind) String() string {
	switch k {
	case EffectAcquire:
		return "acquire"
	case EffectHighlight:
		return "highlight"
	case EffectCommit:
		return "commit"
	case EffectCycle:
		return "cycle"
	case EffectPulse:
		return "pulse"
	case EffectRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Effect is one side effect for the controller to apply, in order
type Effect struct {
	Kind EffectKind
	Slot int // EffectHighlight only
}

// Sample is the scroll result for the current tick
type Sample struct {
	Resolved bool
	Position float64
}

// Input is everything Step observes for one tick
type Input struct {
	// Enabled is false when the menu has nothing to scroll through
	Enabled bool

	Show   input.ControlState
	Select input.ControlState

	// Sample is set when a scroll was performed this tick
	Sample *Sample

	// WithinGrace reports whether the show press is still inside the quick-toggle window
	WithinGrace bool

	// ButtonCount is the number of tool slots, excluding the main-menu slot
	ButtonCount int
}

// Scrollable reports whether the controller should feed the scroll engine before stepping
func Scrollable(state State, in Input) bool {
	return in.Enabled && (state == Arming || state == Scrolling) && in.Show.Held && !in.Select.Held
}

// Step is the pure transition function of the pinned menu gesture
func Step(state State, in Input) (State, []Effect) {
	if state == Confirming {
		return Idle, nil
	}

	if !in.Enabled {
		if state == Idle {
			return Idle, nil
		}
		return Idle, []Effect{{Kind: EffectRelease}}
	}

	switch state {
	case Idle:
		if in.Show.JustPressed {
			return Arming, []Effect{{Kind: EffectAcquire}}
		}
		return Idle, nil

	case Arming, Scrolling:
		if !in.Show.Held {
			return release(state, in)
		}
		if in.Sample == nil {
			return state, nil
		}
		if !in.Sample.Resolved {
			return Arming, nil
		}
		return Scrolling, []Effect{{Kind: EffectHighlight, Slot: SlotForPosition(in.ButtonCount, in.Sample.Position)}}
	}

	return state, nil
}

func release(state State, in Input) (State, []Effect) {
	switch {
	case state == Scrolling:
		return Confirming, []Effect{{Kind: EffectCommit}, {Kind: EffectPulse}, {Kind: EffectRelease}}
	case in.WithinGrace:
		return Confirming, []Effect{{Kind: EffectCycle}, {Kind: EffectPulse}, {Kind: EffectRelease}}
	default:
		return Idle, []Effect{{Kind: EffectRelease}}
	}
}

// SlotForPosition maps a looping scroll position in [0,1) to a tool slot order
// Slot 0 is the main menu, so the result is in [1, buttonCount]
func SlotForPosition(buttonCount int, position float64) int {
	if buttonCount <= 0 {
		return 0
	}
	slot := int(math.Floor(float64(buttonCount)*position)) + 1
	return max(1, min(slot, buttonCount))
}
