// Package cardfsm drives the selector card interaction: a small state machine
// over pointer events plus a spring integrator for the lift and tilt motion.
// The machine is pure; it never touches timers or the render layer itself,
// it only emits effects for the host to execute.
package cardfsm

import "time"

// State is the card's interaction state.
type State string

const (
	StateAppear State = "Appear" // intro animation, input ignored until AppearDone
	StateIdle   State = "Idle"
	StateHover  State = "Hover"
	StatePress  State = "Press"
	StateEase   State = "Ease" // post-release settle before Hover or Idle
)

// Interaction timings.
const (
	AppearDuration = 240 * time.Millisecond
	EaseDuration   = 140 * time.Millisecond
)

// EventType names a pointer or timer event fed into the machine.
type EventType string

const (
	PointerEnter  EventType = "enter"
	PointerLeave  EventType = "leave"
	PointerDown   EventType = "down"
	PointerMove   EventType = "move"
	PointerUp     EventType = "up"
	PointerCancel EventType = "cancel"
	LostCapture   EventType = "lostcapture"
	AppearDone    EventType = "appeardone"
	EaseDone      EventType = "easedone"
)

// Event is one input to the machine. Over carries the host's hit test result
// for events where the pointer may have left the card while captured.
type Event struct {
	Type      EventType
	PointerID int
	Over      bool
}

// EffectType names a side effect the host must perform.
type EffectType string

const (
	EffectCapturePointer EffectType = "capture"
	EffectReleasePointer EffectType = "release"
	EffectScheduleEase   EffectType = "schedule-ease"
	EffectStartMotion    EffectType = "start-motion"
	EffectActivate       EffectType = "activate" // the card was clicked
)

// Effect is one side effect. ScheduleEase carries the state to enter once the
// ease timer fires, delivered back as an EaseDone event.
type Effect struct {
	Type      EffectType
	PointerID int
	Next      State
}

// Machine is the card FSM. Not safe for concurrent use; a card has one input
// stream.
type Machine struct {
	state       State
	interactive bool
	over        bool
	pointerID   int
	easeNext    State
}

// New starts a machine in the appear state. Non-interactive cards render but
// ignore all pointer input.
func New(interactive bool) *Machine {
	return &Machine{
		state:       StateAppear,
		interactive: interactive,
		pointerID:   -1,
		easeNext:    StateIdle,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Over reports whether the pointer is over the card.
func (m *Machine) Over() bool {
	return m.over
}

// Lifted reports whether the card should rise to its hover height.
func (m *Machine) Lifted() bool {
	switch m.state {
	case StateHover, StatePress:
		return true
	case StateEase:
		return m.easeNext == StateHover
	}
	return false
}

// Handle advances the machine and returns the effects to execute, in order.
func (m *Machine) Handle(e Event) []Effect {
	if e.Type == AppearDone {
		if m.state == StateAppear {
			m.state = StateIdle
		}
		return nil
	}
	if e.Type == EaseDone {
		if m.state == StateEase {
			m.state = m.easeNext
		}
		return nil
	}
	if !m.interactive || m.state == StateAppear {
		return nil
	}

	switch e.Type {
	case PointerEnter:
		m.over = true
		m.state = StateHover
		return []Effect{{Type: EffectStartMotion}}

	case PointerLeave:
		if m.state == StatePress {
			// captured; the move handler tracks over/out instead
			return nil
		}
		m.over = false
		m.state = StateIdle
		return []Effect{{Type: EffectStartMotion}}

	case PointerDown:
		m.pointerID = e.PointerID
		m.over = true
		m.state = StatePress
		return []Effect{
			{Type: EffectCapturePointer, PointerID: e.PointerID},
			{Type: EffectStartMotion},
		}

	case PointerMove:
		effects := []Effect{{Type: EffectStartMotion}}
		if m.state == StatePress {
			m.over = e.Over
		}
		return effects

	case PointerUp:
		if m.pointerID != e.PointerID {
			return nil
		}
		m.pointerID = -1
		m.over = e.Over
		m.state = StateEase
		if e.Over {
			m.easeNext = StateHover
		} else {
			m.easeNext = StateIdle
		}
		effects := []Effect{
			{Type: EffectReleasePointer, PointerID: e.PointerID},
			{Type: EffectScheduleEase, Next: m.easeNext},
			{Type: EffectStartMotion},
		}
		if e.Over {
			effects = append(effects, Effect{Type: EffectActivate})
		}
		return effects

	case PointerCancel:
		if m.pointerID != e.PointerID {
			return nil
		}
		m.pointerID = -1
		m.over = false
		m.state = StateEase
		m.easeNext = StateIdle
		return []Effect{
			{Type: EffectScheduleEase, Next: StateIdle},
			{Type: EffectStartMotion},
		}

	case LostCapture:
		if m.pointerID == -1 {
			return nil
		}
		m.pointerID = -1
		m.over = false
		m.state = StateEase
		m.easeNext = StateIdle
		return []Effect{
			{Type: EffectScheduleEase, Next: StateIdle},
			{Type: EffectStartMotion},
		}
	}
	return nil
}
