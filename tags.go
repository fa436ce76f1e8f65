package kivi

import "golang.org/x/net/html/atom"

// voidElements never take children; used only for a debug-mode sanity
// assertion (§7).
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

func isVoidElement(tag string) bool {
	a := atom.Lookup([]byte(tag))
	if a == 0 {
		return false
	}
	return voidElements[a]
}

func assertValidTag(tag string) {
	assertf(tag != "", "VNode.create", "element vnode must have a non-empty tag")
}
