package kivi

import (
	"testing"

	"github.com/gernest/kivi/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelState struct {
	text string
}

var labelDescriptor = &ComponentDescriptor{
	Name: "label",
	Init: func(c *Component) {
		props, _ := c.Props().(string)
		c.SetState(&labelState{text: props})
	},
	Update: func(c *Component) *VNode {
		st := c.State().(*labelState)
		return NewRoot("span", nil, nil, "", "", []*VNode{NewText(st.text)})
	},
}

func TestRuntimeMountRendersComponentTree(t *testing.T) {
	host := hosttest.New()
	tick := &hosttest.TickSource{}
	micro := &hosttest.MicrotaskDriver{}
	macro := &hosttest.MacrotaskDriver{}

	rt := New(host, tick, micro, macro, nil, DefaultConfig())
	c := rt.Mount(labelDescriptor, "hello")

	require.NotNil(t, c.Element())
	span := c.Element().(*hosttest.Node)
	assert.Equal(t, "span", span.Tag)
	require.Len(t, span.Children(), 1)
	assert.Equal(t, "hello", span.Children()[0].Value)
}

func TestRuntimeUnmountDisposesComponent(t *testing.T) {
	host := hosttest.New()
	tick := &hosttest.TickSource{}
	micro := &hosttest.MicrotaskDriver{}
	macro := &hosttest.MacrotaskDriver{}

	rt := New(host, tick, micro, macro, nil, DefaultConfig())
	c := rt.Mount(labelDescriptor, "bye")

	rt.Unmount(c)

	assert.True(t, c.is(FlagDisposed))
}

func TestRuntimeStateChangeReSyncsOnNextFrame(t *testing.T) {
	host := hosttest.New()
	tick := &hosttest.TickSource{}
	micro := &hosttest.MicrotaskDriver{}
	macro := &hosttest.MacrotaskDriver{}

	rt := New(host, tick, micro, macro, nil, DefaultConfig())
	c := rt.Mount(labelDescriptor, "v1")

	c.SetState(&labelState{text: "v2"})
	require.True(t, tick.Pending())
	tick.Tick(16)

	span := c.Element().(*hosttest.Node)
	assert.Equal(t, "v2", span.Children()[0].Value)
}
