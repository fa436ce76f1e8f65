package kivi

// RecyclePool is a bounded, exclusive-owner hand-off pool of detached
// Component instances kept alive (element retained) so a future create of
// the same descriptor can reuse the host element instead of allocating one.
// Additions and removals only ever happen during component create/dispose,
// never concurrently with a pooled component's own use (§5).
type RecyclePool struct {
	max   int
	items []*Component
}

// NewRecyclePool returns a pool that holds at most max components.
func NewRecyclePool(max int) *RecyclePool { return &RecyclePool{max: max} }

func (p *RecyclePool) push(c *Component) bool {
	if p == nil || len(p.items) >= p.max {
		return false
	}
	p.items = append(p.items, c)
	return true
}

func (p *RecyclePool) pop() *Component {
	if p == nil || len(p.items) == 0 {
		return nil
	}
	n := len(p.items) - 1
	c := p.items[n]
	p.items = p.items[:n]
	return c
}

// ComponentDescriptor is the shared, immutable template behind a family of
// Component instances (§3, §4.4). Every hook is optional.
type ComponentDescriptor struct {
	// Name identifies the descriptor in diagnostics; it has no runtime
	// meaning otherwise.
	Name string
	// Namespace records the namespace of the component's root element. The
	// core does not read it: a root VNode's element namespace is chosen by
	// its FlagSvg bit alone.
	Namespace string

	// Init runs once, before the component's first update.
	Init func(c *Component)
	// Update builds the component's new root VNode from its current
	// props/state. It must be pure with respect to host mutation: all host
	// writes happen through the VNode it returns, synced by the Reconciler.
	Update func(c *Component) *VNode
	// NewPropsReceived runs inside SetProps, before props are replaced on an
	// existing instance (a parent-driven prop change). The initial props set
	// by render or mount do not pass through it.
	NewPropsReceived func(c *Component, oldProps, newProps interface{})
	// PropsChanged, if set, decides dirtiness on setProps (§4.4); otherwise
	// ImmutableProps governs identity comparison, else every setProps call
	// marks the component dirty.
	PropsChanged func(oldProps, newProps interface{}) bool
	// Attached/Detached/Disposed are lifecycle notifications (§4.3).
	Attached func(c *Component)
	Detached func(c *Component)
	Disposed func(c *Component)

	// MarkFlags are OR'd onto every instance's flags at creation time
	// (shared 16-23 bit region, §9) — e.g. FlagImmutableProps, FlagKeepAlive.
	MarkFlags Flags
	// ShallowUpdate, when true, means the Reconciler never triggers a
	// child-component update from a parent sync purely because the parent
	// re-rendered; only an explicit setProps/setState/invalidate on the
	// child itself schedules work.
	ShallowUpdate bool

	// Recycle, if non-nil, is consulted on dispose: an instance whose pool
	// isn't full is detached and stashed instead of destroyed, and pulled
	// back out by a future NewComponent call for the same descriptor.
	Recycle *RecyclePool
}

// Component is one stateful unit of the tree (§3, §4.4).
type Component struct {
	descriptor *ComponentDescriptor
	scheduler  *Scheduler

	element HostNode
	depth   int
	props   interface{}
	state   interface{}
	mtime   int
	root    *VNode
	flags   Flags
	mounting bool

	subsHead, subsTail   *Subscription
	transHead, transTail *Subscription
}

// NewComponent allocates a component instance for descriptor at the given
// depth, attached to scheduler for update queuing.
func NewComponent(scheduler *Scheduler, descriptor *ComponentDescriptor, depth int) *Component {
	if recycled := descriptor.Recycle.pop(); recycled != nil {
		recycled.flags &^= FlagRecycled
		recycled.depth = depth
		return recycled
	}
	c := &Component{
		descriptor: descriptor,
		scheduler:  scheduler,
		depth:      depth,
		flags:      descriptor.MarkFlags,
	}
	return c
}

func (c *Component) Descriptor() *ComponentDescriptor { return c.descriptor }
func (c *Component) Depth() int                       { return c.depth }
func (c *Component) Element() HostNode                { return c.element }
func (c *Component) Props() interface{}               { return c.props }
func (c *Component) State() interface{}               { return c.state }
func (c *Component) MTime() int                        { return c.mtime }
func (c *Component) Flags() Flags                      { return c.flags }
func (c *Component) Root() *VNode                       { return c.root }

func (c *Component) is(mask Flags) bool { return c.flags.Has(mask) }

// SetProps assigns new props. Whether this marks the component dirty
// follows §4.4: a custom PropsChanged predicate wins; otherwise identity
// comparison under ImmutableProps; otherwise every call is dirty.
func (c *Component) SetProps(p interface{}) {
	old := c.props
	dirty := true
	switch {
	case c.descriptor.PropsChanged != nil:
		dirty = c.descriptor.PropsChanged(old, p)
	case c.is(FlagImmutableProps):
		dirty = old != p
	}
	if c.descriptor.NewPropsReceived != nil {
		guard(c.scheduler.reporter, "newPropsReceived", func() {
			c.descriptor.NewPropsReceived(c, old, p)
		})
	}
	c.props = p
	if dirty {
		c.markDirty()
	}
}

// SetState assigns new state and enqueues the component for the next frame
// (§4.4) — unlike SetProps, a state change is always considered dirty.
func (c *Component) SetState(s interface{}) {
	c.state = s
	c.markDirty()
}

func (c *Component) markDirty() {
	if c.is(FlagDisposed) {
		return
	}
	c.flags |= FlagDirty
	c.scheduler.enqueueComponent(c)
}

// Invalidate marks the component dirty, cancels its transient subscriptions
// (unless preserveTransient), and enqueues it for the next frame (§4.4,
// §4.5). A disposed component ignores invalidation (§5).
func (c *Component) Invalidate(preserveTransient bool) { c.invalidate(FlagDirty, preserveTransient) }

func (c *Component) invalidate(set Flags, preserveTransient bool) {
	if c.is(FlagDisposed) {
		return
	}
	if c.is(FlagDirty) {
		return
	}
	c.flags |= set
	if !preserveTransient {
		c.cancelTransientSubscriptions()
	}
	c.scheduler.enqueueComponent(c)
}

// Subscribe creates a permanent invalidator subscription bound to this
// component, recorded in its subscription list for mass-cancel on detach.
func (c *Component) Subscribe(inv *Invalidator) *Subscription {
	return inv.SubscribeComponent(c)
}

// TransientSubscribe creates a transient subscription, recorded in the
// component's transient list for mass-cancel on invalidate or detach.
func (c *Component) TransientSubscribe(inv *Invalidator) *Subscription {
	return inv.TransientSubscribeComponent(c)
}

func (c *Component) addSubscription(s *Subscription) {
	var head, tail **Subscription
	if s.kind.transient() {
		head, tail = &c.transHead, &c.transTail
	} else {
		head, tail = &c.subsHead, &c.subsTail
	}
	if *tail == nil {
		*head, *tail = s, s
		return
	}
	(*tail).nextInSubscriber = s
	s.prevInSubscriber = *tail
	*tail = s
}

func (c *Component) removeSubscription(s *Subscription) {
	var head, tail **Subscription
	if s.kind.transient() {
		head, tail = &c.transHead, &c.transTail
	} else {
		head, tail = &c.subsHead, &c.subsTail
	}
	if s.prevInSubscriber != nil {
		s.prevInSubscriber.nextInSubscriber = s.nextInSubscriber
	} else {
		*head = s.nextInSubscriber
	}
	if s.nextInSubscriber != nil {
		s.nextInSubscriber.prevInSubscriber = s.prevInSubscriber
	} else {
		*tail = s.prevInSubscriber
	}
	s.prevInSubscriber, s.nextInSubscriber = nil, nil
}

// cancelTransientSubscriptions clears every transient subscription this
// component holds, detaching each one from its invalidator too. After this
// call c.transHead/transTail are both nil (§8, Testable Properties).
func (c *Component) cancelTransientSubscriptions() {
	s := c.transHead
	c.transHead, c.transTail = nil, nil
	for s != nil {
		next := s.nextInSubscriber
		s.prevInSubscriber, s.nextInSubscriber = nil, nil
		if !s.cancelled {
			s.cancelled = true
			s.detachFromInvalidator()
		}
		s = next
	}
}

func (c *Component) cancelAllSubscriptions() {
	c.cancelTransientSubscriptions()
	s := c.subsHead
	c.subsHead, c.subsTail = nil, nil
	for s != nil {
		next := s.nextInSubscriber
		s.prevInSubscriber, s.nextInSubscriber = nil, nil
		if !s.cancelled {
			s.cancelled = true
			s.detachFromInvalidator()
		}
		s = next
	}
}

// StartUpdateEachFrame subscribes the component to per-frame updates
// (§4.1, §4.4).
func (c *Component) StartUpdateEachFrame() {
	if c.is(FlagUpdateEachFrame) {
		return
	}
	c.flags |= FlagUpdateEachFrame
	c.scheduler.startUpdateComponentEachFrame(c)
}

// StopUpdateEachFrame unsubscribes the component from per-frame updates.
func (c *Component) StopUpdateEachFrame() {
	c.flags &^= FlagUpdateEachFrame
}

// update runs the descriptor's Update hook, publishes the resulting VNode
// through sync, and clears Dirty/InUpdateQueue. Disposed components are a
// no-op (§9, open question: a disposed component must no-op even if still
// queued).
func (c *Component) update() {
	if c.is(FlagDisposed) {
		return
	}
	var newRoot *VNode
	guard(c.scheduler.reporter, "component-update", func() {
		if c.descriptor.Update != nil {
			newRoot = c.descriptor.Update(c)
		}
	})
	if newRoot != nil {
		c.sync(newRoot)
	}
	c.mtime = c.scheduler.clock
	c.flags &^= (FlagDirty | FlagInUpdateQueue)
}

// sync publishes newRoot as the component's current tree. The very first
// publish either renders the node into a freshly created host node, which
// then becomes the component's element, or, during the mounting phase,
// mounts it onto the existing element; subsequent publishes delegate to
// Reconciler.Sync against the previous root (§4.4).
func (c *Component) sync(newRoot *VNode) {
	owner := &Owner{Host: c.scheduler.host, Reporter: c.scheduler.reporter, Scheduler: c.scheduler, Depth: c.depth}
	if c.root == nil {
		if c.mounting {
			newRoot.mount(c.element, owner)
		} else {
			newRoot.render(owner, 0)
		}
	} else {
		Sync(c.root, newRoot, owner)
	}
	c.root = newRoot
	c.element = newRoot.ref
}

// attach propagates the Attached state into the component's root subtree
// and then fires its own Attached hook (§4.3). Attaching resets Recycled:
// a component pulled from a descriptor's pool is, from this point on,
// indistinguishable from a freshly created one.
func (c *Component) attach() {
	c.flags = (c.flags &^ FlagRecycled) | FlagAttached
	if c.root != nil {
		owner := &Owner{Host: c.scheduler.host, Reporter: c.scheduler.reporter, Scheduler: c.scheduler, Depth: c.depth}
		c.root.attach(owner)
	}
	if c.descriptor.Attached != nil {
		guard(c.scheduler.reporter, "component-attached", func() { c.descriptor.Attached(c) })
	}
}

// detach is the mirror of attach: it recurses into the root subtree first,
// then cancels every subscription the component holds (permanent and
// transient, §5) before firing Detached.
func (c *Component) detach() {
	c.flags &^= FlagAttached
	if c.root != nil {
		owner := &Owner{Host: c.scheduler.host, Reporter: c.scheduler.reporter, Scheduler: c.scheduler, Depth: c.depth}
		c.root.detach(owner)
	}
	c.cancelAllSubscriptions()
	if c.descriptor.Detached != nil {
		guard(c.scheduler.reporter, "component-detached", func() { c.descriptor.Detached(c) })
	}
}

// dispose frees the component. Recyclable descriptors with room left in
// their pool detach (but are not destroyed) and are stashed for reuse;
// otherwise the component is marked Disposed, its root subtree disposed,
// it is detached if still attached, and Disposed fires (§4.3).
func (c *Component) dispose() {
	assertf(!c.is(FlagDisposed), "Component.dispose", "component disposed twice")
	if c.descriptor.Recycle != nil {
		if c.is(FlagAttached) {
			c.detach()
		}
		c.flags |= FlagRecycled
		if c.descriptor.Recycle.push(c) {
			return
		}
	}
	c.flags |= FlagDisposed
	if c.root != nil {
		owner := &Owner{Host: c.scheduler.host, Reporter: c.scheduler.reporter, Scheduler: c.scheduler, Depth: c.depth}
		c.root.dispose(owner)
	}
	if c.is(FlagAttached) {
		c.detach()
	}
	if c.descriptor.Disposed != nil {
		guard(c.scheduler.reporter, "component-disposed", func() { c.descriptor.Disposed(c) })
	}
}
