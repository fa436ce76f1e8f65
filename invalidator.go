package kivi

// SubscriptionKind distinguishes what a Subscription notifies and how long
// it lives.
type SubscriptionKind int

const (
	CallbackPermanent SubscriptionKind = iota
	CallbackTransient
	ComponentPermanent
	ComponentTransient
)

func (k SubscriptionKind) transient() bool {
	return k == CallbackTransient || k == ComponentTransient
}

// Invalidator is a reactive signal source. Calling Invalidate fires every
// subscription registered on it, at most once per scheduler clock tick
// (§4.5): a second Invalidate call within the same tick is a no-op, since
// mtime already caught up to clock.
type Invalidator struct {
	mtime int

	permHead, permTail       *Subscription
	transHead, transTail     *Subscription
}

// NewInvalidator returns an invalidator with mtime 0.
func NewInvalidator() *Invalidator { return &Invalidator{} }

// MTime returns the scheduler clock value at which this invalidator last
// fired.
func (inv *Invalidator) MTime() int { return inv.mtime }

// Subscription links an Invalidator to a subscriber (a plain callback or a
// Component). It carries two independent sets of sibling pointers: one for
// O(1) removal from the invalidator's own list, one for O(1) removal from
// the subscriber's list (so a Component can mass-cancel its transient
// subscriptions without walking the owning invalidators).
type Subscription struct {
	invalidator *Invalidator
	kind        SubscriptionKind
	callback    func()
	component   *Component
	cancelled   bool

	prevInInvalidator, nextInInvalidator *Subscription
	prevInSubscriber, nextInSubscriber   *Subscription
}

// Cancelled reports whether Cancel has already been called.
func (s *Subscription) Cancelled() bool { return s.cancelled }

// Cancel detaches the subscription from both its invalidator's list and its
// subscriber's list. Cancelling twice is a PreconditionViolation in debug
// mode and a no-op otherwise.
func (s *Subscription) Cancel() {
	if s.cancelled {
		assertf(false, "Subscription.Cancel", "subscription already cancelled")
		return
	}
	s.cancelled = true
	s.detachFromInvalidator()
	s.detachFromSubscriberList()
}

func (s *Subscription) detachFromInvalidator() {
	inv := s.invalidator
	var head, tail **Subscription
	if s.kind.transient() {
		head, tail = &inv.transHead, &inv.transTail
	} else {
		head, tail = &inv.permHead, &inv.permTail
	}
	if s.prevInInvalidator != nil {
		s.prevInInvalidator.nextInInvalidator = s.nextInInvalidator
	} else {
		*head = s.nextInInvalidator
	}
	if s.nextInInvalidator != nil {
		s.nextInInvalidator.prevInInvalidator = s.prevInInvalidator
	} else {
		*tail = s.prevInInvalidator
	}
	s.prevInInvalidator, s.nextInInvalidator = nil, nil
}

func (s *Subscription) detachFromSubscriberList() {
	if s.component == nil {
		return
	}
	s.component.removeSubscription(s)
}

func appendSub(head, tail **Subscription, s *Subscription) {
	if *tail == nil {
		*head, *tail = s, s
		return
	}
	(*tail).nextInInvalidator = s
	s.prevInInvalidator = *tail
	*tail = s
}

func (inv *Invalidator) add(kind SubscriptionKind, cb func(), c *Component) *Subscription {
	s := &Subscription{invalidator: inv, kind: kind, callback: cb, component: c}
	if kind.transient() {
		appendSub(&inv.transHead, &inv.transTail, s)
	} else {
		appendSub(&inv.permHead, &inv.permTail, s)
	}
	if c != nil {
		c.addSubscription(s)
	}
	return s
}

// Subscribe registers a permanent callback subscription.
func (inv *Invalidator) Subscribe(cb func()) *Subscription {
	return inv.add(CallbackPermanent, cb, nil)
}

// TransientSubscribe registers a transient callback subscription: it is
// automatically cancelled the next time its own invalidator fires a
// transient-cancelling event (here: every time Invalidate runs, since
// Invalidator itself drops its transient list wholesale on every fire, §4.5).
func (inv *Invalidator) TransientSubscribe(cb func()) *Subscription {
	return inv.add(CallbackTransient, cb, nil)
}

// SubscribeComponent registers a permanent subscription whose firing calls
// c.invalidate(...).
func (inv *Invalidator) SubscribeComponent(c *Component) *Subscription {
	return inv.add(ComponentPermanent, nil, c)
}

// TransientSubscribeComponent registers a transient subscription whose
// firing calls c.invalidate(...); it is cancelled as a group whenever c is
// invalidated or detached, and whenever this invalidator itself fires.
func (inv *Invalidator) TransientSubscribeComponent(c *Component) *Subscription {
	return inv.add(ComponentTransient, nil, c)
}

// Invalidate fires every subscription on inv, in permanent-then-transient
// order, at most once per clock tick. Firing the transient list cancels it
// as a whole (both from the invalidator's side and, per subscriber, from
// each subscriber's own transient list) before any transient callback runs,
// since §4.5 requires the invalidator to "drop its transient list" on fire
// regardless of what the callbacks themselves do.
func (inv *Invalidator) Invalidate(clock int, r Reporter) {
	if inv.mtime >= clock {
		return
	}
	inv.mtime = clock

	for s := inv.permHead; s != nil; {
		next := s.nextInInvalidator
		inv.fire(s, r)
		s = next
	}

	trans := inv.transHead
	inv.transHead, inv.transTail = nil, nil
	var fired []*Subscription
	for s := trans; s != nil; {
		next := s.nextInInvalidator
		s.prevInInvalidator, s.nextInInvalidator = nil, nil
		s.cancelled = true
		s.detachFromSubscriberList()
		fired = append(fired, s)
		s = next
	}
	for _, s := range fired {
		inv.fire(s, r)
	}
}

func (inv *Invalidator) fire(s *Subscription, r Reporter) {
	guard(r, "invalidator-subscription", func() {
		switch s.kind {
		case CallbackPermanent, CallbackTransient:
			if s.callback != nil {
				s.callback()
			}
		case ComponentPermanent, ComponentTransient:
			if s.component != nil {
				s.component.invalidate(FlagDirty, false)
			}
		}
	})
}
