package ui

import "time"

type pendingTimer struct {
	delay time.Duration
	token uint64
}

// effects collects what the engine and auto-hide machine ask for during one
// Update so the model can turn it into commands afterwards.
type effects struct {
	frame      bool
	timers     []pendingTimer
	visibility []bool
}

func (f *effects) RequestFrame() {
	f.frame = true
}

func (f *effects) Defer(d time.Duration, token uint64) {
	f.timers = append(f.timers, pendingTimer{delay: d, token: token})
}

func (f *effects) SetHidden(hidden bool) {
	f.visibility = append(f.visibility, hidden)
}

func (f *effects) reset() {
	f.frame = false
	f.timers = f.timers[:0]
	f.visibility = f.visibility[:0]
}
