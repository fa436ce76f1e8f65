// Package hosttest is an in-memory, allocation-cheap fake of kivi.Host plus
// fake frame-tick/microtask/macrotask drivers, so the scheduler and
// reconciler can be exercised synchronously in tests without a real DOM or
// WASM runtime. Modeled on the teacher's vdom/testutil in-memory Object
// fake.
package hosttest

import (
	"fmt"

	"github.com/gernest/kivi"
)

// NodeKind distinguishes a fake Host node's variant.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindText
	KindComment
)

// Node is a fake host node: an element, a text node, or a comment
// placeholder. It is returned (as a kivi.HostNode) from every creation
// method and is the concrete type every other Host method expects back.
type Node struct {
	Kind      NodeKind
	Tag       string
	Namespace string

	Attrs map[string]string
	Props map[string]interface{}
	Style string
	Class string

	Value   string // text content, or input value
	Checked bool

	parent   *Node
	children []*Node
}

// Children returns n's current host children, in order, for test
// assertions. The returned slice is owned by n; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) String() string {
	switch n.Kind {
	case KindText:
		return fmt.Sprintf("#text(%q)", n.Value)
	case KindComment:
		return "#comment"
	default:
		return fmt.Sprintf("<%s>", n.Tag)
	}
}

var _ kivi.Host = (*Host)(nil)

// Host is the fake implementation of kivi.Host.
type Host struct {
	// Log records every mutating call, in order, for assertions on the
	// minimum-mutation-set properties (§8 of the spec this module
	// implements).
	Log []string
}

func New() *Host { return &Host{} }

func (h *Host) log(format string, args ...interface{}) {
	h.Log = append(h.Log, fmt.Sprintf(format, args...))
}

func asNode(hn kivi.HostNode) *Node {
	if hn == nil {
		return nil
	}
	return hn.(*Node)
}

func (h *Host) CreateElement(tag string) kivi.HostNode {
	h.log("createElement %s", tag)
	return &Node{Kind: KindElement, Tag: tag}
}

func (h *Host) CreateElementNS(namespace, tag string) kivi.HostNode {
	h.log("createElementNS %s %s", namespace, tag)
	return &Node{Kind: KindElement, Tag: tag, Namespace: namespace}
}

func (h *Host) CreateTextNode(value string) kivi.HostNode {
	h.log("createTextNode %q", value)
	return &Node{Kind: KindText, Value: value}
}

func (h *Host) CreateComment() kivi.HostNode {
	h.log("createComment")
	return &Node{Kind: KindComment}
}

func (h *Host) AppendChild(parent, child kivi.HostNode) {
	p, c := asNode(parent), asNode(child)
	h.log("appendChild %s -> %s", p, c)
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = p
	p.children = append(p.children, c)
}

func (h *Host) InsertBefore(parent, child, ref kivi.HostNode) {
	p, c, r := asNode(parent), asNode(child), asNode(ref)
	h.log("insertBefore %s -> %s before %s", p, c, r)
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = p
	idx := len(p.children)
	if r != nil {
		for i, n := range p.children {
			if n == r {
				idx = i
				break
			}
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = c
}

func (h *Host) RemoveChild(parent, child kivi.HostNode) {
	p, c := asNode(parent), asNode(child)
	h.log("removeChild %s -> %s", p, c)
	p.removeChild(c)
}

func (h *Host) ReplaceChild(parent, newChild, oldChild kivi.HostNode) {
	p, nc, oc := asNode(parent), asNode(newChild), asNode(oldChild)
	h.log("replaceChild %s -> %s for %s", p, nc, oc)
	for i, n := range p.children {
		if n == oc {
			p.children[i] = nc
			nc.parent = p
			oc.parent = nil
			return
		}
	}
}

func (n *Node) removeChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (h *Host) FirstChild(node kivi.HostNode) (kivi.HostNode, bool) {
	n := asNode(node)
	if len(n.children) == 0 {
		return nil, false
	}
	return n.children[0], true
}

func (h *Host) NextSibling(node kivi.HostNode) (kivi.HostNode, bool) {
	n := asNode(node)
	if n.parent == nil {
		return nil, false
	}
	for i, c := range n.parent.children {
		if c == n {
			if i+1 < len(n.parent.children) {
				return n.parent.children[i+1], true
			}
			return nil, false
		}
	}
	return nil, false
}

func (h *Host) SetAttribute(node kivi.HostNode, key, value string) {
	n := asNode(node)
	h.log("setAttribute %s %s=%q", n, key, value)
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

func (h *Host) SetAttributeNS(node kivi.HostNode, namespace, key, value string) {
	n := asNode(node)
	h.log("setAttributeNS %s %s %s=%q", n, namespace, key, value)
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

func (h *Host) RemoveAttribute(node kivi.HostNode, key string) {
	n := asNode(node)
	h.log("removeAttribute %s %s", n, key)
	delete(n.Attrs, key)
}

func (h *Host) SetProperty(node kivi.HostNode, key string, value interface{}) {
	n := asNode(node)
	h.log("setProperty %s %s=%v", n, key, value)
	if n.Props == nil {
		n.Props = make(map[string]interface{})
	}
	n.Props[key] = value
}

func (h *Host) SetStyleText(node kivi.HostNode, css string) {
	n := asNode(node)
	h.log("setStyleText %s %q", n, css)
	n.Style = css
}

func (h *Host) SetClassName(node kivi.HostNode, class string) {
	n := asNode(node)
	h.log("setClassName %s %q", n, class)
	n.Class = class
}

func (h *Host) SetClassAttribute(node kivi.HostNode, class string) {
	n := asNode(node)
	h.log("setClassAttribute %s %q", n, class)
	n.Class = class
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs["class"] = class
}

func (h *Host) SetTextContent(node kivi.HostNode, text string) {
	n := asNode(node)
	h.log("setTextContent %s %q", n, text)
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.Value = text
}

func (h *Host) SetNodeValue(node kivi.HostNode, text string) {
	n := asNode(node)
	h.log("setNodeValue %s %q", n, text)
	n.Value = text
}

func (h *Host) NodeValue(node kivi.HostNode) string { return asNode(node).Value }

func (h *Host) InputValue(node kivi.HostNode) string { return asNode(node).Value }

func (h *Host) SetInputValue(node kivi.HostNode, value string) {
	n := asNode(node)
	h.log("setInputValue %s %q", n, value)
	n.Value = value
}

func (h *Host) InputChecked(node kivi.HostNode) bool { return asNode(node).Checked }

func (h *Host) SetInputChecked(node kivi.HostNode, checked bool) {
	n := asNode(node)
	h.log("setInputChecked %s %v", n, checked)
	n.Checked = checked
}

func (h *Host) Focus(node kivi.HostNode) {
	h.log("focus %s", asNode(node))
}

func (h *Host) Clone(node kivi.HostNode) kivi.HostNode {
	n := asNode(node)
	clone := *n
	clone.children = nil
	clone.parent = nil
	return &clone
}

// IsComment lets kivi's mount algorithm recognize and strip comment
// placeholders; it is an optional extension beyond the Host interface
// proper (kivi probes for it via a private interface assertion).
func (h *Host) IsComment(node kivi.HostNode) bool {
	n := asNode(node)
	return n != nil && n.Kind == KindComment
}
