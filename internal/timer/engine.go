// Package timer implements the focus/break countdown as a state machine
// driven by external ticks. It never schedules anything itself.
package timer

import (
	"time"

	"github.com/j-veylop/focus-tui/internal/models"
)

// State is whether the countdown is advancing.
type State int

const (
	// Idle means ticks are ignored.
	Idle State = iota
	// Running means each tick removes one second.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Event reports what a tick did.
type Event int

const (
	// EventIgnored is returned for ticks that arrive while Idle.
	EventIgnored Event = iota
	// EventTicked means one second elapsed.
	EventTicked
	// EventCompleted means the interval finished and the mode switched.
	EventCompleted
)

// CompletionHandler is notified when an interval runs to zero.
type CompletionHandler interface {
	SessionCompleted(mode models.SessionMode, minutes int)
}

// Engine is the countdown state machine. It is not safe for concurrent use;
// one owner drives it.
type Engine struct {
	handler CompletionHandler

	state     State
	mode      models.SessionMode
	remaining int
	armed     int

	focusMinutes int
	breakMinutes int

	generation uint64
}

// New returns an idle engine in focus mode with the full focus duration.
func New(focusMinutes, breakMinutes int, handler CompletionHandler) *Engine {
	e := &Engine{
		handler:      handler,
		state:        Idle,
		mode:         models.SessionFocus,
		focusMinutes: focusMinutes,
		breakMinutes: breakMinutes,
	}
	e.arm()
	return e
}

// SetHandler replaces the completion handler.
func (e *Engine) SetHandler(h CompletionHandler) {
	e.handler = h
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Running reports whether the countdown is advancing.
func (e *Engine) Running() bool { return e.state == Running }

// Mode returns the current interval kind.
func (e *Engine) Mode() models.SessionMode { return e.mode }

// Remaining returns the time left in the current interval.
func (e *Engine) Remaining() time.Duration {
	return time.Duration(e.remaining) * time.Second
}

// Total returns the length the current interval was armed with.
func (e *Engine) Total() time.Duration {
	return time.Duration(e.armed) * time.Second
}

// Progress returns the elapsed fraction of the current interval.
func (e *Engine) Progress() float64 {
	if e.armed <= 0 {
		return 0
	}
	return float64(e.armed-e.remaining) / float64(e.armed)
}

// Durations returns the configured focus and break lengths in minutes.
func (e *Engine) Durations() (focusMinutes, breakMinutes int) {
	return e.focusMinutes, e.breakMinutes
}

// Generation changes every time the engine starts or stops. Tick sources
// tag scheduled ticks with it and drop ticks whose generation is stale.
func (e *Engine) Generation() uint64 { return e.generation }

// Start begins counting down. No-op while Running.
func (e *Engine) Start() {
	if e.state == Running {
		return
	}
	e.setState(Running)
}

// Pause stops counting down and keeps the remaining time.
func (e *Engine) Pause() {
	if e.state == Idle {
		return
	}
	e.setState(Idle)
}

// Toggle starts an idle engine and pauses a running one.
func (e *Engine) Toggle() {
	if e.state == Running {
		e.Pause()
		return
	}
	e.Start()
}

// Tick advances a running countdown by one second. When it reaches zero the
// handler is told, the mode flips and the engine goes Idle with the new
// mode's full duration.
func (e *Engine) Tick() Event {
	if e.state != Running {
		return EventIgnored
	}

	e.remaining--
	if e.remaining > 0 {
		return EventTicked
	}

	e.complete()
	return EventCompleted
}

func (e *Engine) complete() {
	finished := e.mode
	minutes := e.armed / 60

	e.setState(Idle)
	if finished == models.SessionFocus {
		e.mode = models.SessionBreak
	} else {
		e.mode = models.SessionFocus
	}
	e.arm()

	if e.handler != nil {
		e.handler.SessionCompleted(finished, minutes)
	}
}

// SwitchMode stops the countdown and arms the target mode's full duration.
func (e *Engine) SwitchMode(mode models.SessionMode) {
	e.setState(Idle)
	e.mode = mode
	e.arm()
}

// Reset restores the full duration of the current mode. No-op while Running.
func (e *Engine) Reset() {
	if e.state == Running {
		return
	}
	e.arm()
}

// Stop pauses and resets in one step.
func (e *Engine) Stop() {
	e.setState(Idle)
	e.arm()
}

// SetDurations changes the configured lengths. While Idle the current
// interval is re-armed immediately. While Running the countdown keeps its
// length and the new values apply from the next completion, switch or reset.
func (e *Engine) SetDurations(focusMinutes, breakMinutes int) {
	changed := focusMinutes != e.focusMinutes || breakMinutes != e.breakMinutes
	e.focusMinutes = focusMinutes
	e.breakMinutes = breakMinutes
	if changed && e.state == Idle {
		e.arm()
	}
}

func (e *Engine) arm() {
	minutes := e.focusMinutes
	if e.mode == models.SessionBreak {
		minutes = e.breakMinutes
	}
	if minutes < 0 {
		minutes = 0
	}
	e.armed = minutes * 60
	e.remaining = e.armed
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.state = s
	e.generation++
}
