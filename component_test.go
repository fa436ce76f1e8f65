package kivi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentSetStateAlwaysDirty(t *testing.T) {
	sched := newTestScheduler()
	renders := 0
	descriptor := &ComponentDescriptor{
		Name: "counter",
		Update: func(c *Component) *VNode {
			renders++
			return NewText("x")
		},
	}
	c := NewComponent(sched, descriptor, 0)
	c.update() // initial render

	c.SetState(1)
	assert.True(t, c.is(FlagDirty))
}

func TestComponentSetPropsImmutableIdentityCompare(t *testing.T) {
	sched := newTestScheduler()
	descriptor := &ComponentDescriptor{
		Name:      "immutable",
		MarkFlags: FlagImmutableProps,
		Update:    func(c *Component) *VNode { return NewText("x") },
	}
	c := NewComponent(sched, descriptor, 0)
	c.update()

	same := "same"
	c.SetProps(same) // establishes the baseline identity
	c.flags &^= FlagDirty

	c.SetProps(same)
	assert.False(t, c.is(FlagDirty), "identical prop identity should not mark dirty")

	c.SetProps("different")
	assert.True(t, c.is(FlagDirty))
}

func TestComponentSetPropsCustomPredicateWins(t *testing.T) {
	sched := newTestScheduler()
	descriptor := &ComponentDescriptor{
		Name: "predicate",
		PropsChanged: func(old, new interface{}) bool {
			return false // never dirty, regardless of identity
		},
		Update: func(c *Component) *VNode { return NewText("x") },
	}
	c := NewComponent(sched, descriptor, 0)
	c.update()

	c.SetProps("anything new")
	assert.False(t, c.is(FlagDirty))
}

func TestComponentDisposeCancelsSubscriptions(t *testing.T) {
	sched := newTestScheduler()
	descriptor := &ComponentDescriptor{
		Name:   "disposable",
		Update: func(c *Component) *VNode { return NewText("x") },
	}
	c := NewComponent(sched, descriptor, 0)
	c.update()
	c.attach()

	inv := NewInvalidator()
	sub := c.Subscribe(inv)

	c.dispose()

	assert.True(t, c.is(FlagDisposed))
	assert.True(t, sub.Cancelled())
}

func TestComponentDisposeTwicePanics(t *testing.T) {
	Debug = true
	defer func() { Debug = false }()

	sched := newTestScheduler()
	descriptor := &ComponentDescriptor{
		Name:   "double-dispose",
		Update: func(c *Component) *VNode { return NewText("x") },
	}
	c := NewComponent(sched, descriptor, 0)
	c.update()
	c.dispose()

	assert.Panics(t, func() { c.dispose() })
}

func TestComponentRecyclePoolReusesInstance(t *testing.T) {
	sched := newTestScheduler()
	descriptor := &ComponentDescriptor{
		Name:    "recycled",
		Recycle: NewRecyclePool(4),
		Update:  func(c *Component) *VNode { return NewText("x") },
	}
	c1 := NewComponent(sched, descriptor, 0)
	c1.update()
	c1.attach()
	c1.dispose()

	assert.True(t, c1.is(FlagRecycled))

	c2 := NewComponent(sched, descriptor, 2)
	assert.Same(t, c1, c2, "recycled instance should be handed back by NewComponent")
	assert.Equal(t, 2, c2.Depth())
	assert.False(t, c2.is(FlagRecycled))
}
