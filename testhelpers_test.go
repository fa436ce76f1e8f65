package kivi

import "github.com/gernest/kivi/hosttest"

// newTestScheduler builds a Scheduler wired to fresh hosttest fakes, for
// tests that only need a scheduler to satisfy Component/Invalidator
// plumbing and don't drive real frame ticks.
func newTestScheduler() *Scheduler {
	return NewScheduler(hosttest.New(), &hosttest.TickSource{}, &hosttest.MicrotaskDriver{}, &hosttest.MacrotaskDriver{}, nil, DefaultConfig())
}
