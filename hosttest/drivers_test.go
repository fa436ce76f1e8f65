package hosttest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMicrotaskDriverFlushDrainsReentrantQueue(t *testing.T) {
	d := &MicrotaskDriver{}
	var order []string
	d.RequestMicrotask(func() {
		order = append(order, "first")
		d.RequestMicrotask(func() { order = append(order, "second") })
	})

	d.Flush()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTickSourcePendingAndTick(t *testing.T) {
	ts := &TickSource{}
	assert.False(t, ts.Pending())

	var got float64
	ts.RequestTick(func(ms float64) { got = ms })
	assert.True(t, ts.Pending())

	ts.Tick(42)
	assert.Equal(t, float64(42), got)
	assert.False(t, ts.Pending())
}

func TestHostAppendAndRemoveChild(t *testing.T) {
	h := New()
	parent := h.CreateElement("div")
	child := h.CreateTextNode("x")
	h.AppendChild(parent, child)

	first, ok := h.FirstChild(parent)
	assert.True(t, ok)
	assert.Equal(t, child, first)

	h.RemoveChild(parent, child)
	_, ok = h.FirstChild(parent)
	assert.False(t, ok)
}
