package hosttest

import "github.com/gernest/kivi"

// TickSource is a fake kivi.FrameTickSource: it records the pending
// callback instead of scheduling a real animation frame, and a test fires
// it explicitly via Tick.
type TickSource struct {
	pending func(timestampMS float64)
}

var _ kivi.FrameTickSource = (*TickSource)(nil)

func (t *TickSource) RequestTick(cb func(timestampMS float64)) { t.pending = cb }

// Pending reports whether a tick request is outstanding.
func (t *TickSource) Pending() bool { return t.pending != nil }

// Tick fires the pending request (if any) with the given timestamp.
func (t *TickSource) Tick(timestampMS float64) {
	cb := t.pending
	t.pending = nil
	if cb != nil {
		cb(timestampMS)
	}
}

// MicrotaskDriver is a fake kivi.MicrotaskDriver: RequestMicrotask queues
// the callback, and a test drains it explicitly via Flush.
type MicrotaskDriver struct {
	queue []func()
}

var _ kivi.MicrotaskDriver = (*MicrotaskDriver)(nil)

func (d *MicrotaskDriver) RequestMicrotask(cb func()) { d.queue = append(d.queue, cb) }

// Flush runs every queued microtask callback, including ones enqueued by
// callbacks that ran earlier in the same Flush.
func (d *MicrotaskDriver) Flush() {
	for len(d.queue) > 0 {
		batch := d.queue
		d.queue = nil
		for _, cb := range batch {
			cb()
		}
	}
}

// MacrotaskDriver is the macrotask-boundary counterpart of MicrotaskDriver.
type MacrotaskDriver struct {
	queue []func()
}

var _ kivi.MacrotaskDriver = (*MacrotaskDriver)(nil)

func (d *MacrotaskDriver) RequestMacrotask(cb func()) { d.queue = append(d.queue, cb) }

func (d *MacrotaskDriver) Flush() {
	for len(d.queue) > 0 {
		batch := d.queue
		d.queue = nil
		for _, cb := range batch {
			cb()
		}
	}
}
