package kivi

// ContainerManager overrides child insert/replace/move/remove for a
// ManagedContainer VNode (§4.6). A manager implements all four hooks: once
// a ManagedContainer parent has one, every child insert/replace/move/remove
// goes to it, and there is no per-hook fallback to the host child API. This
// is how animated list transitions hook into the reconciler without it
// knowing anything about animation.
type ContainerManager interface {
	InsertChild(parent HostNode, child *VNode, ref HostNode, owner *Owner)
	ReplaceChild(parent HostNode, newChild, oldChild *VNode, owner *Owner)
	MoveChild(parent HostNode, child *VNode, ref HostNode, owner *Owner)
	RemoveChild(parent HostNode, child *VNode, owner *Owner)
}

// containerOps resolves the four child mutation operations for a parent
// VNode, routing through its ContainerManager when ManagedContainer is set
// and a manager is installed, and to the host element API otherwise (§4.2,
// §4.6).
type containerOps struct {
	parent *VNode
	owner  *Owner
}

func newContainerOps(parent *VNode, owner *Owner) containerOps {
	return containerOps{parent: parent, owner: owner}
}

func (c containerOps) manager() ContainerManager {
	if !c.parent.flags.Has(FlagManagedContainer) {
		return nil
	}
	m, _ := c.parent.cref.(ContainerManager)
	return m
}

// insert creates and renders child (unless it has already been created) and
// places its host node before ref (or appends when ref is nil). It does not
// attach child; replace likewise does not attach the new child.
func (c containerOps) insert(child *VNode, ref HostNode) {
	if !child.created {
		child.create(c.owner)
		child.render(c.owner, 0)
	}
	if m := c.manager(); m != nil {
		m.InsertChild(c.parent.ref, child, ref, c.owner)
		return
	}
	if ref == nil {
		c.owner.Host.AppendChild(c.parent.ref, child.ref)
	} else {
		c.owner.Host.InsertBefore(c.parent.ref, child.ref, ref)
	}
}

func (c containerOps) replace(newChild, oldChild *VNode) {
	newChild.create(c.owner)
	newChild.render(c.owner, 0)
	if m := c.manager(); m != nil {
		m.ReplaceChild(c.parent.ref, newChild, oldChild, c.owner)
	} else {
		c.owner.Host.ReplaceChild(c.parent.ref, newChild.ref, oldChild.ref)
	}
	oldChild.dispose(c.owner)
}

func (c containerOps) move(child *VNode, ref HostNode) {
	if m := c.manager(); m != nil {
		m.MoveChild(c.parent.ref, child, ref, c.owner)
		return
	}
	if ref == nil {
		c.owner.Host.AppendChild(c.parent.ref, child.ref)
	} else {
		c.owner.Host.InsertBefore(c.parent.ref, child.ref, ref)
	}
}

func (c containerOps) remove(child *VNode) {
	if m := c.manager(); m != nil {
		m.RemoveChild(c.parent.ref, child, c.owner)
	} else {
		c.owner.Host.RemoveChild(c.parent.ref, child.ref)
	}
	child.dispose(c.owner)
}
