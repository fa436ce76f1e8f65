package kivi

// FrameTasksGroup holds one tick's worth of scheduled work: a dense,
// depth-indexed bucket list of component updates, plus ordered read/write/
// after task queues and an optional focus target (§3).
type FrameTasksGroup struct {
	flags Flags

	componentTasks [][]*Component
	readTasks      []func()
	writeTasks     []func()
	afterTasks     []func()

	focusHost HostNode
	focusNode *VNode
}

func newFrameTasksGroup() *FrameTasksGroup { return &FrameTasksGroup{} }

func (g *FrameTasksGroup) addComponent(c *Component) {
	for len(g.componentTasks) <= c.depth {
		g.componentTasks = append(g.componentTasks, nil)
	}
	g.componentTasks[c.depth] = append(g.componentTasks[c.depth], c)
	g.flags |= FlagGroupComponent
}

func (g *FrameTasksGroup) addRead(cb func()) {
	g.readTasks = append(g.readTasks, cb)
	g.flags |= FlagGroupRead
}

func (g *FrameTasksGroup) addWrite(cb func()) {
	g.writeTasks = append(g.writeTasks, cb)
	g.flags |= FlagGroupWrite
}

func (g *FrameTasksGroup) addAfter(cb func()) {
	g.afterTasks = append(g.afterTasks, cb)
	g.flags |= FlagGroupAfter
}

func (g *FrameTasksGroup) locked() bool { return g.flags.Has(FlagGroupRWLock) }

// Metrics receives scheduler observability events. It is the seam the
// monitoring package's PrometheusFrameMetrics and NoopFrameMetrics attach
// to; nil is a valid, zero-overhead value.
type Metrics interface {
	RecordFrame(clock int, durationMS float64)
	RecordComponentUpdate(depth int)
}

// Scheduler owns the process clock and sequences every microtask, macrotask
// and frame task through the host's frame-tick/microtask/macrotask drivers
// (§4.1).
type Scheduler struct {
	host     Host
	reporter Reporter
	config   Config

	tickSource      FrameTickSource
	microtaskDriver MicrotaskDriver
	macrotaskDriver MacrotaskDriver
	metrics         Metrics

	clock int

	current *FrameTasksGroup
	next    *FrameTasksGroup

	microtasks       []func()
	macrotasks       []func()
	microtaskPending bool
	macrotaskPending bool
	frameTickPending bool

	perFrame map[*Component]bool

	throttleRefCount int
	throttleDeadline float64
	lastTickMS       float64
	emaDuration      float64
	emaSamples       []float64
	emaNext          int
	elapsedSampler   func() float64
}

// NewScheduler wires host, the three external drivers and config into a
// Scheduler ready to receive frame ticks.
func NewScheduler(host Host, tickSource FrameTickSource, microtaskDriver MicrotaskDriver, macrotaskDriver MacrotaskDriver, reporter Reporter, config Config) *Scheduler {
	config = config.withDefaults()
	s := &Scheduler{
		host:            host,
		reporter:        reporter,
		config:          config,
		tickSource:      tickSource,
		microtaskDriver: microtaskDriver,
		macrotaskDriver: macrotaskDriver,
		current:         newFrameTasksGroup(),
		next:            newFrameTasksGroup(),
		perFrame:        make(map[*Component]bool),
		emaDuration:     config.ThrottleDefaultMS,
	}
	// current starts locked: onTick's swap always promotes "next" to
	// "current", so work scheduled before the first tick must accumulate
	// in "next" from the start, the same as work scheduled while a frame
	// is already draining.
	s.current.flags |= FlagGroupRWLock
	return s
}

func (s *Scheduler) Clock() int { return s.clock }

// SetElapsedSampler installs a hook the scheduler calls, from the macrotask
// it schedules after each throttled tick, to measure how long the frame
// actually took. The core has no clock of its own; only the embedder (which
// owns the real frame-tick source) can answer that.
func (s *Scheduler) SetElapsedSampler(fn func() float64) { s.elapsedSampler = fn }

// SetMetrics installs an observability sink for frame/component events.
func (s *Scheduler) SetMetrics(m Metrics) { s.metrics = m }

func (s *Scheduler) currentFrame() *FrameTasksGroup { return s.current }

func (s *Scheduler) nextFrame() *FrameTasksGroup {
	s.requestTick()
	return s.next
}

func (s *Scheduler) requestTick() {
	if s.frameTickPending {
		return
	}
	s.frameTickPending = true
	s.tickSource.RequestTick(s.onTick)
}

// ScheduleRead/ScheduleWrite queue a callback on the current frame if it is
// still open for additions, otherwise on the next one (§4.1, §5).
func (s *Scheduler) ScheduleRead(cb func()) {
	s.frameGroupFor().addRead(cb)
}

func (s *Scheduler) ScheduleWrite(cb func()) {
	s.frameGroupFor().addWrite(cb)
}

// ScheduleAfter queues cb to run once, after the current frame's
// read/component/write phases have fully drained.
func (s *Scheduler) ScheduleAfter(cb func()) {
	s.frameGroupFor().addAfter(cb)
}

// frameGroupFor returns the frame task group new work should land in: the
// current one if it's still open for additions, the next one otherwise
// (§4.1, §5). current is unlocked only while onTick is actively draining it,
// in which case drain's own loop picks up the addition within the same tick
// without a fresh request.
func (s *Scheduler) frameGroupFor() *FrameTasksGroup {
	if s.current.locked() {
		return s.nextFrame()
	}
	return s.current
}

// SetFocus requests that host.Focus(node) run after the current frame's
// after-tasks (§3, FrameTasksGroup.focus).
func (s *Scheduler) SetFocus(node *VNode) {
	s.frameGroupFor().focusNode = node
}

func (s *Scheduler) scheduleMicrotask(cb func()) {
	s.microtasks = append(s.microtasks, cb)
	if !s.microtaskPending {
		s.microtaskPending = true
		s.microtaskDriver.RequestMicrotask(s.drainMicrotasks)
	}
}

func (s *Scheduler) scheduleMacrotask(cb func()) {
	s.macrotasks = append(s.macrotasks, cb)
	if !s.macrotaskPending {
		s.macrotaskPending = true
		s.macrotaskDriver.RequestMacrotask(s.drainMacrotasks)
	}
}

// drainMicrotasks repeatedly drains the microtask queue until it is empty,
// advancing clock once per drain batch (§4.1).
func (s *Scheduler) drainMicrotasks() {
	s.microtaskPending = false
	for len(s.microtasks) > 0 {
		batch := s.microtasks
		s.microtasks = nil
		for _, cb := range batch {
			guard(s.reporter, "microtask", cb)
		}
	}
	s.clock++
}

func (s *Scheduler) drainMacrotasks() {
	s.macrotaskPending = false
	batch := s.macrotasks
	s.macrotasks = nil
	for _, cb := range batch {
		guard(s.reporter, "macrotask", cb)
	}
	s.clock++
}

// EnableThrottling/DisableThrottling are ref-counted: throttling is active
// while the count is positive (§4.1, §5).
func (s *Scheduler) EnableThrottling() { s.throttleRefCount++ }

func (s *Scheduler) DisableThrottling() {
	if s.throttleRefCount > 0 {
		s.throttleRefCount--
	}
}

func (s *Scheduler) throttling() bool { return s.throttleRefCount > 0 }

// FrameTimeRemaining returns milliseconds until the current throttled-frame
// deadline, sampled once at the top of the frame (§4.1). Returns the
// configured max when throttling is off.
func (s *Scheduler) FrameTimeRemaining() float64 {
	if !s.throttling() {
		return s.config.ThrottleMaxMS
	}
	remaining := s.throttleDeadline - s.lastTickMS
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RecordFrameDuration feeds one more sample into the throttled-frame EMA,
// clamped to [ThrottleMinMS, ThrottleMaxMS] (§9).
func (s *Scheduler) RecordFrameDuration(ms float64) {
	window := s.config.ThrottleEMAWindow
	if window <= 0 {
		window = 1
	}
	if len(s.emaSamples) < window {
		s.emaSamples = append(s.emaSamples, ms)
	} else {
		s.emaSamples[s.emaNext%window] = ms
	}
	s.emaNext++
	var sum float64
	for _, v := range s.emaSamples {
		sum += v
	}
	avg := sum / float64(len(s.emaSamples))
	if avg < s.config.ThrottleMinMS {
		avg = s.config.ThrottleMinMS
	}
	if avg > s.config.ThrottleMaxMS {
		avg = s.config.ThrottleMaxMS
	}
	s.emaDuration = avg
}

// enqueueComponent registers c for an update in the earliest still-open
// frame (§4.4).
func (s *Scheduler) enqueueComponent(c *Component) {
	if c.is(FlagInUpdateQueue) {
		return
	}
	c.flags |= FlagInUpdateQueue
	s.frameGroupFor().addComponent(c)
}

func (s *Scheduler) deferToNextFrame(c *Component) {
	c.flags |= FlagInUpdateQueue
	s.next.addComponent(c)
	s.requestTick()
}

// startUpdateComponentEachFrame subscribes c to per-frame updates (§4.1).
func (s *Scheduler) startUpdateComponentEachFrame(c *Component) {
	s.perFrame[c] = true
	s.requestTick()
}

func (s *Scheduler) stopUpdateComponentEachFrame(c *Component) {
	delete(s.perFrame, c)
}

// onTick is the frame-tick callback: steps 1-9 of §4.1.
func (s *Scheduler) onTick(timestampMS float64) {
	s.frameTickPending = false
	s.lastTickMS = timestampMS

	if s.throttling() {
		s.throttleDeadline = timestampMS + s.emaDuration
		s.scheduleMacrotask(func() {
			if s.elapsedSampler != nil {
				s.RecordFrameDuration(s.elapsedSampler())
			}
		})
	}

	s.current, s.next = s.next, newFrameTasksGroup()
	s.current.flags &^= FlagGroupRWLock
	s.next.flags &^= FlagGroupRWLock

	for c := range s.perFrame {
		if !c.is(FlagDirty) {
			c.flags |= FlagDirty
		}
	}

	s.drain(s.current)

	for c := range s.perFrame {
		if !c.is(FlagUpdateEachFrame) {
			delete(s.perFrame, c)
			continue
		}
		s.current.addComponent(c)
	}
	s.drain(s.current)

	s.current.flags |= FlagGroupRWLock
	for _, cb := range s.current.afterTasks {
		guard(s.reporter, "after-task", cb)
	}
	s.current.afterTasks = nil
	if s.current.focusNode != nil && s.current.focusNode.ref != nil {
		s.host.Focus(s.current.focusNode.ref)
	} else if s.current.focusHost != nil {
		s.host.Focus(s.current.focusHost)
	}

	if len(s.perFrame) > 0 {
		s.requestTick()
	}
	if s.metrics != nil {
		s.metrics.RecordFrame(s.clock, s.FrameTimeRemaining())
	}
	s.clock++
}

// drain runs g's read/component/write sub-phases in order, looping until
// all three are empty (nested scheduling during a pass reopens the loop,
// §4.1 step 5).
func (s *Scheduler) drain(g *FrameTasksGroup) {
	for g.flags.Any(FlagGroupRead | FlagGroupComponent | FlagGroupWrite) {
		reads := g.readTasks
		g.readTasks = nil
		g.flags &^= FlagGroupRead
		for _, cb := range reads {
			guard(s.reporter, "read-task", cb)
		}

		comps := g.componentTasks
		g.componentTasks = nil
		g.flags &^= FlagGroupComponent
		for depth := 0; depth < len(comps); depth++ {
			for _, c := range comps[depth] {
				s.runComponentUpdate(c)
			}
		}

		writes := g.writeTasks
		g.writeTasks = nil
		g.flags &^= FlagGroupWrite
		for _, cb := range writes {
			guard(s.reporter, "write-task", cb)
		}
	}
}

func (s *Scheduler) runComponentUpdate(c *Component) {
	if c.is(FlagDisposed) {
		c.flags &^= FlagInUpdateQueue
		return
	}
	if !s.throttling() || c.is(FlagHighPriorityUpdate) || s.FrameTimeRemaining() > 0 {
		if s.metrics != nil {
			s.metrics.RecordComponentUpdate(c.depth)
		}
		guard(s.reporter, "component-update", func() { c.update() })
		return
	}
	c.flags &^= FlagInUpdateQueue
	s.deferToNextFrame(c)
}
