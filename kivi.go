// Package kivi implements the core of a retained-mode UI runtime: a
// frame-driven cooperative scheduler, a virtual-tree reconciler, component
// lifecycle management and a reactive invalidation graph. It consumes a
// Host (element API), a FrameTickSource, a MicrotaskDriver and a
// MacrotaskDriver; it never touches a real DOM or WASM runtime directly.
package kivi

// Runtime ties a Host and its driving collaborators to a Scheduler, the
// same way vected.New() bundles a runtime's pieces behind one constructor.
type Runtime struct {
	Scheduler *Scheduler
	Config    Config
}

// New wires host, tickSource, microtaskDriver and macrotaskDriver into a
// ready-to-use Runtime. reporter may be nil. A zero Config is filled in
// with DefaultConfig() (§10.3).
func New(host Host, tickSource FrameTickSource, microtaskDriver MicrotaskDriver, macrotaskDriver MacrotaskDriver, reporter Reporter, config Config) *Runtime {
	sched := NewScheduler(host, tickSource, microtaskDriver, macrotaskDriver, reporter, config)
	return &Runtime{Scheduler: sched, Config: sched.config}
}

// Mount renders descriptor's root component fresh onto a newly created host
// element and attaches it. This is the "render" entry point; use
// MountOn to bind to prerendered host markup instead.
func (rt *Runtime) Mount(descriptor *ComponentDescriptor, props interface{}) *Component {
	owner := &Owner{Host: rt.Scheduler.host, Reporter: rt.Scheduler.reporter, Scheduler: rt.Scheduler, Depth: 0}
	root := NewComponentNode(descriptor, nil, props, "")
	root.create(owner)
	root.render(owner, 0)
	c := root.Component()
	c.attach()
	return c
}

// MountOn binds descriptor's root component to a pre-existing host element
// (e.g. server-rendered markup), per the mount input format (§6).
func (rt *Runtime) MountOn(hostNode HostNode, descriptor *ComponentDescriptor, props interface{}) *Component {
	owner := &Owner{Host: rt.Scheduler.host, Reporter: rt.Scheduler.reporter, Scheduler: rt.Scheduler, Depth: 0}
	root := NewComponentNode(descriptor, nil, props, "")
	root.mount(hostNode, owner)
	c := root.Component()
	c.attach()
	return c
}

// Unmount detaches and disposes c, tearing down its subtree and releasing
// its subscriptions.
func (rt *Runtime) Unmount(c *Component) {
	c.dispose()
}
