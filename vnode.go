package kivi

// Owner bundles the collaborators a VNode needs while creating, rendering,
// mounting, attaching, detaching or disposing itself: the host element API,
// the error reporter, the scheduler (needed only to construct Component
// instances with the right depth) and the current depth.
type Owner struct {
	Host      Host
	Reporter  Reporter
	Scheduler *Scheduler
	Depth     int
}

func (o *Owner) child() *Owner {
	return &Owner{Host: o.Host, Reporter: o.Reporter, Scheduler: o.Scheduler, Depth: o.Depth}
}

// VNode is a single position in a virtual tree (§3). It is created exactly
// once, rendered or mounted exactly once, and disposed at most once.
// Immutable once frozen — Sync destroys the old node and the replacement
// inherits its ref.
type VNode struct {
	flags Flags
	tag   string
	key   interface{}

	descriptor *ComponentDescriptor // valid for FlagComponent

	props Props
	attrs Attrs
	style string
	class string

	// componentProps holds the arbitrary props value handed to a
	// FlagComponent node's Init/Update hooks. Unlike props (above), it is
	// not constrained to a string-keyed map — components take whatever
	// shape their descriptor expects.
	componentProps interface{}

	// children holds exactly one of: []*VNode, string (textContent
	// shortcut / text node content), or bool (checked-input state). Input
	// value state also lives here as a string.
	children interface{}

	// updateHandler, if set, replaces the default prop/attr/style/className
	// sync on Element/Root kinds (§4.2).
	updateHandler func(node HostNode, oldProps, newProps Props)

	// container, if set (ManagedContainer flag), receives this node's child
	// mutation calls instead of the host element API directly.
	container ContainerManager

	ref     HostNode
	cref    interface{} // *Component for FlagComponent, ContainerManager for ManagedContainer
	created bool
	frozen  bool
}

// Props is a host-property mapping, written via direct property assignment.
type Props map[string]interface{}

// Attrs is a host-attribute mapping, written via attribute setters with
// XML/XLINK namespace detection for "xml:"/"xlink:"-prefixed keys.
type Attrs map[string]string

// Kind returns the VNode's tagged-variant discriminator.
func (v *VNode) Kind() Flags { return v.flags & kindMask }

func (v *VNode) Key() interface{}  { return v.key }
func (v *VNode) Tag() string       { return v.tag }
func (v *VNode) Ref() HostNode     { return v.ref }
func (v *VNode) Flags() Flags      { return v.flags }

// Component returns the bound Component instance for a FlagComponent node,
// or nil before create() has run (or for any other kind).
func (v *VNode) Component() *Component {
	if c, ok := v.cref.(*Component); ok {
		return c
	}
	return nil
}

// NewText returns a Text VNode.
func NewText(text string) *VNode {
	return &VNode{flags: FlagText, children: text}
}

// NewElement returns an Element VNode. key may be nil.
func NewElement(tag string, key interface{}, props Props, attrs Attrs, style, class string, children []*VNode) *VNode {
	return &VNode{
		flags:    FlagElement,
		tag:      tag,
		key:      key,
		props:    props,
		attrs:    attrs,
		style:    style,
		class:    class,
		children: childList(children),
	}
}

// NewRoot returns a Root VNode: same shape rules as Element, but marks the
// top of a component's own subtree.
func NewRoot(tag string, props Props, attrs Attrs, style, class string, children []*VNode) *VNode {
	v := NewElement(tag, nil, props, attrs, style, class, children)
	v.flags = (v.flags &^ FlagElement) | FlagRoot
	return v
}

// NewComponentNode returns a Component VNode referencing descriptor. props
// is passed verbatim to the component's Init/Update hooks.
func NewComponentNode(descriptor *ComponentDescriptor, key interface{}, props interface{}, class string) *VNode {
	return &VNode{flags: FlagComponent, descriptor: descriptor, key: key, componentProps: props, class: class}
}

// NewTextInput / NewCheckedInput build <input>-shaped Element VNodes whose
// children field carries the scalar value/checked state (§3).
func NewTextInput(attrs Attrs, value string) *VNode {
	v := NewElement("input", nil, nil, attrs, "", "", nil)
	v.flags |= FlagTextInputElement
	v.children = value
	return v
}

func NewCheckedInput(attrs Attrs, checked bool) *VNode {
	v := NewElement("input", nil, nil, attrs, "", "", nil)
	v.flags |= FlagCheckedInputElement
	v.children = checked
	return v
}

// WithTrackByKey marks an Element/Root VNode's children as keyed, enabling
// the LIS-based minimum-move diff (§4.2). In debug mode every child must
// carry a non-nil key.
func (v *VNode) WithTrackByKey() *VNode {
	v.flags |= FlagTrackByKeyChildren
	if Debug {
		for _, child := range v.childNodes() {
			assertf(child.key != nil, "WithTrackByKey", "every child must have a key")
		}
	}
	return v
}

// WithContainerManager installs m to receive this node's child mutation
// calls (§4.6).
func (v *VNode) WithContainerManager(m ContainerManager) *VNode {
	v.flags |= FlagManagedContainer
	v.container = m
	v.cref = m
	return v
}

// WithUpdateHandler installs a custom element update handler (§4.2).
func (v *VNode) WithUpdateHandler(h func(node HostNode, oldProps, newProps Props)) *VNode {
	v.updateHandler = h
	return v
}

func childList(children []*VNode) interface{} {
	if children == nil {
		return nil
	}
	return children
}

func (v *VNode) childNodes() []*VNode {
	if cs, ok := v.children.([]*VNode); ok {
		return cs
	}
	return nil
}

func (v *VNode) childText() (string, bool) {
	s, ok := v.children.(string)
	return s, ok
}

func (v *VNode) childChecked() (bool, bool) {
	b, ok := v.children.(bool)
	return b, ok
}

func (v *VNode) freeze() { v.frozen = true }

// syncCompatible reports whether a and b may be synced in place rather than
// replaced: identical flags, tag/descriptor and key (§4.2).
func syncCompatible(a, b *VNode) bool {
	if a.flags != b.flags || a.key != b.key {
		return false
	}
	if a.Kind() == FlagComponent {
		return a.descriptor == b.descriptor
	}
	return a.tag == b.tag
}

// ---- lifecycle operations (§4.3) ----

// create allocates the host node for v. For a Component node it allocates
// the Component instance only; its host element comes from the first update
// in render.
func (v *VNode) create(owner *Owner) {
	switch v.Kind() {
	case FlagText:
		text, _ := v.childText()
		v.ref = owner.Host.CreateTextNode(text)
	case FlagElement, FlagRoot:
		assertValidTag(v.tag)
		if v.flags.Any(FlagSvg) {
			v.ref = owner.Host.CreateElementNS(NamespaceSVG, v.tag)
		} else {
			v.ref = owner.Host.CreateElement(v.tag)
		}
	case FlagComponent:
		c := NewComponent(owner.Scheduler, v.descriptor, owner.Depth+1)
		v.cref = c
	default:
		assertf(false, "VNode.create", "unknown vnode kind %v", v.flags)
	}
	v.created = true
}

// render writes properties, attributes, style, className and children (or
// triggers the bound component's first update), then freezes the node
// (§4.3).
func (v *VNode) render(owner *Owner, renderFlags Flags) {
	if !v.created {
		v.create(owner)
	}

	switch v.Kind() {
	case FlagText:
		// content already supplied at create time.
	case FlagElement, FlagRoot:
		v.renderElement(owner)
	case FlagComponent:
		c := v.cref.(*Component)
		c.props = v.componentProps
		c.mounting = false
		if c.descriptor.Init != nil {
			guard(owner.Reporter, "component-init", func() { c.descriptor.Init(c) })
		}
		c.update()
		v.ref = c.element
		if v.class != "" {
			owner.Host.SetClassName(v.ref, v.class)
		}
	}
	v.freeze()
}

func (v *VNode) renderElement(owner *Owner) {
	if Debug && isVoidElement(v.tag) {
		assertf(v.childNodes() == nil, "VNode.render", "void element %q cannot have children", v.tag)
	}
	writeProps(owner.Host, v.ref, nil, v.props, v.flags)
	writeAttrs(owner.Host, v.ref, nil, v.attrs, v.flags)
	if v.style != "" {
		owner.Host.SetStyleText(v.ref, v.style)
	}
	if v.class != "" {
		if v.flags.Any(FlagSvg) {
			owner.Host.SetClassAttribute(v.ref, v.class)
		} else {
			owner.Host.SetClassName(v.ref, v.class)
		}
	}
	switch {
	case v.flags.Has(FlagTextInputElement):
		value, _ := v.childText()
		owner.Host.SetInputValue(v.ref, value)
	case v.flags.Has(FlagCheckedInputElement):
		checked, _ := v.childChecked()
		owner.Host.SetInputChecked(v.ref, checked)
	default:
		if text, ok := v.childText(); ok {
			owner.Host.SetTextContent(v.ref, text)
		} else if children := v.childNodes(); children != nil {
			child := owner.child()
			for _, cn := range children {
				cn.create(child)
				cn.render(child, 0)
				owner.Host.AppendChild(v.ref, cn.ref)
			}
		}
	}
}

// mount binds v to a pre-existing host subtree rooted at hostNode (§4.3,
// §6 mount input format): the host tree is expected to contain exactly one
// node per VNode position, with adjacent text children separated by empty
// comment placeholders that mount consumes and removes.
func (v *VNode) mount(hostNode HostNode, owner *Owner) {
	v.ref = hostNode
	v.created = true
	switch v.Kind() {
	case FlagText, FlagElement, FlagRoot:
		if children := v.childNodes(); children != nil {
			child := owner.child()
			cur, ok := owner.Host.FirstChild(hostNode)
			for _, cn := range children {
				for ok {
					if isComment(owner.Host, cur) {
						next, hasNext := owner.Host.NextSibling(cur)
						owner.Host.RemoveChild(hostNode, cur)
						cur, ok = next, hasNext
						continue
					}
					break
				}
				if !ok {
					cn.create(child)
					owner.Host.AppendChild(hostNode, cn.ref)
					cn.render(child, 0)
					continue
				}
				next, hasNext := owner.Host.NextSibling(cur)
				cn.mount(cur, child)
				cur, ok = next, hasNext
			}
		}
	case FlagComponent:
		c := NewComponent(owner.Scheduler, v.descriptor, owner.Depth+1)
		v.cref = c
		c.element = hostNode
		c.props = v.componentProps
		c.mounting = true
		if c.descriptor.Init != nil {
			guard(owner.Reporter, "component-init", func() { c.descriptor.Init(c) })
		}
		c.update()
		v.ref = c.element
	}
	v.freeze()
}

func isComment(h Host, node HostNode) bool {
	type commentChecker interface{ IsComment(HostNode) bool }
	if cc, ok := h.(commentChecker); ok {
		return cc.IsComment(node)
	}
	return false
}

// attach propagates the Attached state down the subtree (§4.3).
func (v *VNode) attach(owner *Owner) {
	switch v.Kind() {
	case FlagElement, FlagRoot:
		for _, cn := range v.childNodes() {
			cn.attach(owner)
		}
	case FlagComponent:
		if c := v.Component(); c != nil {
			c.attach()
		}
	}
}

// detach is the mirror of attach (§4.3).
func (v *VNode) detach(owner *Owner) {
	switch v.Kind() {
	case FlagElement, FlagRoot:
		for _, cn := range v.childNodes() {
			cn.detach(owner)
		}
	case FlagComponent:
		if c := v.Component(); c != nil {
			c.detach()
		}
	}
}

// dispose frees the subtree. KeepAlive nodes are skipped — the owner that
// set the flag is responsible for their lifetime (§4.3, §5).
func (v *VNode) dispose(owner *Owner) {
	if v.flags.Has(FlagKeepAlive) {
		return
	}
	switch v.Kind() {
	case FlagElement, FlagRoot:
		for _, cn := range v.childNodes() {
			cn.dispose(owner)
		}
	case FlagComponent:
		if c := v.Component(); c != nil {
			c.dispose()
		}
	}
}
