// Package notify is the fire-and-forget side channel used by the games to
// announce transitions ("win", "card", "jackpot"...) to audio or any other
// listener. Sinks can fail or be slow; none of that reaches game logic.
package notify

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Event is a named trigger fired at a state transition.
type Event string

// Event names. Each maps to one sound in a playing front end.
const (
	EventSpin     Event = "spin"
	EventWin      Event = "win"
	EventLose     Event = "lose"
	EventClick    Event = "click"
	EventJackpot  Event = "jackpot"
	EventCard     Event = "card"
	EventRoulette Event = "roulette"
	EventCoin     Event = "coin"
)

// String returns the event name.
func (e Event) String() string {
	return string(e)
}

// Notifier receives events. Implementations must not block for long.
type Notifier interface {
	Notify(Event)
}

// Func adapts a function to a Notifier.
type Func func(Event)

// Notify calls f(e).
func (f Func) Notify(e Event) { f(e) }

// Nop discards every event.
var Nop Notifier = Func(func(Event) {})

// Multi fans an event out to several sinks. A sink that panics is logged and
// skipped; the remaining sinks still receive the event.
type Multi struct {
	sinks  []Notifier
	logger *log.Logger
}

// NewMulti creates a fan-out notifier. Nil sinks are dropped.
func NewMulti(logger *log.Logger, sinks ...Notifier) *Multi {
	m := &Multi{logger: logger.WithPrefix("notify")}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Notify delivers e to every sink.
func (m *Multi) Notify(e Event) {
	for _, s := range m.sinks {
		m.deliver(s, e)
	}
}

func (m *Multi) deliver(s Notifier, e Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("Notification sink failed", "event", e, "error", r)
		}
	}()
	s.Notify(e)
}

// Switch forwards events only while enabled. It backs the sound toggle.
type Switch struct {
	next    Notifier
	enabled atomic.Bool
}

// NewSwitch creates an enabled switch in front of next.
func NewSwitch(next Notifier) *Switch {
	s := &Switch{next: next}
	s.enabled.Store(true)
	return s
}

// Notify forwards e when enabled.
func (s *Switch) Notify(e Event) {
	if s.enabled.Load() {
		s.next.Notify(e)
	}
}

// SetEnabled turns forwarding on or off.
func (s *Switch) SetEnabled(on bool) {
	s.enabled.Store(on)
}

// Toggle flips the switch and returns the new state.
func (s *Switch) Toggle() bool {
	for {
		old := s.enabled.Load()
		if s.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Enabled reports whether events are forwarded.
func (s *Switch) Enabled() bool {
	return s.enabled.Load()
}

// Logger writes every event to a logger at debug level.
type Logger struct {
	logger *log.Logger
}

// NewLogger creates a logging sink.
func NewLogger(logger *log.Logger) *Logger {
	return &Logger{logger: logger.WithPrefix("event")}
}

// Notify logs e.
func (l *Logger) Notify(e Event) {
	l.logger.Debug("Event fired", "event", e)
}
