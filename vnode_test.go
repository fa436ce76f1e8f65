package kivi

import (
	"testing"

	"github.com/gernest/kivi/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVNodeRenderBuildsHostSubtree(t *testing.T) {
	h := hosttest.New()
	owner := newTestOwner(h)

	root := NewElement("div", nil, Props{"title": "hi"}, Attrs{"id": "app"}, "color:red", "box", []*VNode{
		NewText("hello"),
	})
	root.create(owner)
	root.render(owner, 0)

	node := root.ref.(*hosttest.Node)
	require.Equal(t, "div", node.Tag)
	assert.Equal(t, "hi", node.Props["title"])
	assert.Equal(t, "app", node.Attrs["id"])
	assert.Equal(t, "color:red", node.Style)
	assert.Equal(t, "box", node.Class)
	require.Len(t, node.Children(), 1)
	assert.Equal(t, "hello", node.Children()[0].Value)
}

func TestVNodeNamespacedAttrRoutesThroughSetAttributeNS(t *testing.T) {
	h := hosttest.New()
	owner := newTestOwner(h)

	root := NewElement("use", nil, nil, Attrs{"xlink:href": "#icon"}, "", "", nil)
	root.flags |= FlagSvg
	root.create(owner)
	root.render(owner, 0)

	found := false
	for _, line := range h.Log {
		if line == `setAttributeNS <use> http://www.w3.org/1999/xlink href="#icon"` {
			found = true
		}
	}
	assert.True(t, found, "expected an SetAttributeNS call for the xlink:-prefixed key, got log: %v", h.Log)
}

func TestVNodeSyncCompatible(t *testing.T) {
	a := NewElement("div", "k1", nil, nil, "", "", nil)
	b := NewElement("div", "k1", nil, nil, "", "", nil)
	assert.True(t, syncCompatible(a, b))

	c := NewElement("div", "k2", nil, nil, "", "", nil)
	assert.False(t, syncCompatible(a, c))

	d := NewElement("span", "k1", nil, nil, "", "", nil)
	assert.False(t, syncCompatible(a, d))
}

func TestVNodeDisposeSkipsKeepAlive(t *testing.T) {
	h := hosttest.New()
	owner := newTestOwner(h)

	child := NewElement("div", nil, nil, nil, "", "", nil)
	child.flags |= FlagKeepAlive
	root := NewElement("div", nil, nil, nil, "", "", []*VNode{child})
	root.create(owner)
	root.render(owner, 0)

	h.Log = nil
	root.dispose(owner)

	for _, line := range h.Log {
		assert.NotContains(t, line, "removeChild")
	}
}
