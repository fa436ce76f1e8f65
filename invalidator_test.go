package kivi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidatorPermanentFiresEveryTime(t *testing.T) {
	inv := NewInvalidator()
	calls := 0
	inv.Subscribe(func() { calls++ })

	inv.Invalidate(1, nil)
	inv.Invalidate(2, nil)

	assert.Equal(t, 2, calls)
}

func TestInvalidatorSkipsSameTickRefire(t *testing.T) {
	inv := NewInvalidator()
	calls := 0
	inv.Subscribe(func() { calls++ })

	inv.Invalidate(5, nil)
	inv.Invalidate(5, nil)

	assert.Equal(t, 1, calls)
}

func TestInvalidatorTransientFiresOnceThenDrops(t *testing.T) {
	inv := NewInvalidator()
	calls := 0
	sub := inv.TransientSubscribe(func() { calls++ })

	inv.Invalidate(1, nil)
	assert.Equal(t, 1, calls)
	assert.True(t, sub.Cancelled())

	inv.Invalidate(2, nil)
	assert.Equal(t, 1, calls, "transient subscription must not fire a second time")
}

func TestSubscriptionCancelStopsFiring(t *testing.T) {
	inv := NewInvalidator()
	calls := 0
	sub := inv.Subscribe(func() { calls++ })

	sub.Cancel()
	inv.Invalidate(1, nil)

	assert.Equal(t, 0, calls)
	assert.True(t, sub.Cancelled())
}

func TestComponentCancelTransientSubscriptionsEmptiesList(t *testing.T) {
	sched := newTestScheduler()
	c := NewComponent(sched, &ComponentDescriptor{Name: "x"}, 0)

	inv1, inv2 := NewInvalidator(), NewInvalidator()
	c.TransientSubscribe(inv1)
	c.TransientSubscribe(inv2)

	c.cancelTransientSubscriptions()

	assert.Nil(t, c.transHead)
	assert.Nil(t, c.transTail)
}
