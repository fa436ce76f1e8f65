package kivi

import (
	"testing"

	"github.com/gernest/kivi/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingContainer is a ContainerManager that records which hook fired,
// standing in for an animated-list transition manager (§4.6).
type recordingContainer struct {
	inserted, moved, removed []interface{}
}

func (r *recordingContainer) InsertChild(parent HostNode, child *VNode, ref HostNode, owner *Owner) {
	r.inserted = append(r.inserted, child.Key())
	if !child.created {
		child.create(owner)
		child.render(owner, 0)
	}
	if ref == nil {
		owner.Host.AppendChild(parent, child.Ref())
	} else {
		owner.Host.InsertBefore(parent, child.Ref(), ref)
	}
}

func (r *recordingContainer) ReplaceChild(parent HostNode, newChild, oldChild *VNode, owner *Owner) {
	owner.Host.ReplaceChild(parent, newChild.Ref(), oldChild.Ref())
}

func (r *recordingContainer) MoveChild(parent HostNode, child *VNode, ref HostNode, owner *Owner) {
	r.moved = append(r.moved, child.Key())
	if ref == nil {
		owner.Host.AppendChild(parent, child.Ref())
	} else {
		owner.Host.InsertBefore(parent, child.Ref(), ref)
	}
}

func (r *recordingContainer) RemoveChild(parent HostNode, child *VNode, owner *Owner) {
	r.removed = append(r.removed, child.Key())
	owner.Host.RemoveChild(parent, child.Ref())
}

func TestContainerManagerReceivesChildMutations(t *testing.T) {
	h := hosttest.New()
	owner := newTestOwner(h)

	mgr := &recordingContainer{}
	root := NewRoot("ul", nil, nil, "", "", letters("a", "b")).
		WithTrackByKey().
		WithContainerManager(mgr)
	root.create(owner)
	root.render(owner, 0)

	require.Empty(t, mgr.inserted, "initial render bypasses the container manager (§4.2/§4.6)")

	next := NewRoot("ul", nil, nil, "", "", letters("a", "b", "c")).
		WithTrackByKey().
		WithContainerManager(mgr)
	Sync(root, next, owner)

	assert.Contains(t, mgr.inserted, "c")
}
