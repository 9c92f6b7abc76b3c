package input

import (
	"sync/atomic"
	"time"
)

type Action int

const (
	Left Action = iota
	Right
	Jump
	actionCount
)

// State is the intent sampled once per frame.
type State struct {
	Left, Right, Jump bool
}

// Intent records presses from an event source and is read by the frame loop.
// Presses are stored as unix-nano timestamps so writers never block the loop.
type Intent struct {
	pressed [actionCount]atomic.Int64
	hold    time.Duration
}

// NewIntent returns an Intent that treats a press as held for hold after it
// arrives. Terminals never report key release, so repeated presses keep the
// action alive. A zero hold keeps an action held until Release.
func NewIntent(hold time.Duration) *Intent {
	return &Intent{hold: hold}
}

func (in *Intent) Press(a Action, at time.Time) {
	if a < 0 || a >= actionCount {
		return
	}
	in.pressed[a].Store(at.UnixNano())
}

func (in *Intent) Release(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	in.pressed[a].Store(0)
}

// Reset releases every action.
func (in *Intent) Reset() {
	for i := range in.pressed {
		in.pressed[i].Store(0)
	}
}

func (in *Intent) held(a Action, now time.Time) bool {
	ts := in.pressed[a].Load()
	if ts == 0 {
		return false
	}
	if in.hold == 0 {
		return true
	}
	return now.Sub(time.Unix(0, ts)) < in.hold
}

// State samples all actions at now.
func (in *Intent) State(now time.Time) State {
	return State{
		Left:  in.held(Left, now),
		Right: in.held(Right, now),
		Jump:  in.held(Jump, now),
	}
}
