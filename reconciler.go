package kivi

// Sync transforms the host subtree described by a into the one described by
// b, given a and b are sync-compatible (§4.2). a must already be rendered or
// mounted. After Sync returns, b.ref == a.ref, the host tree below it
// matches b, and a is considered destroyed — its replacement (b) has
// inherited everything a owned.
func Sync(a, b *VNode, owner *Owner) {
	assertf(syncCompatible(a, b), "Sync", "attempted to sync incompatible vnodes (flags/tag/key mismatch)")

	b.ref = a.ref
	switch b.Kind() {
	case FlagText:
		syncText(a, b, owner)
	case FlagElement, FlagRoot:
		if b.updateHandler != nil {
			guard(owner.Reporter, "update-handler", func() { b.updateHandler(b.ref, a.props, b.props) })
		} else {
			syncElement(a, b, owner)
		}
		if !b.flags.Any(FlagTextInputElement | FlagCheckedInputElement) {
			syncChildren(a, b, owner)
		}
	case FlagComponent:
		syncComponent(a, b, owner)
	}
	b.freeze()
}

func syncText(a, b *VNode, owner *Owner) {
	at, _ := a.childText()
	bt, _ := b.childText()
	if at != bt {
		owner.Host.SetNodeValue(b.ref, bt)
	}
}

func syncElement(a, b *VNode, owner *Owner) {
	writeProps(owner.Host, b.ref, a.props, b.props, b.flags)
	writeAttrs(owner.Host, b.ref, a.attrs, b.attrs, b.flags)
	if a.style != b.style {
		owner.Host.SetStyleText(b.ref, b.style)
	}
	if a.class != b.class {
		if b.flags.Any(FlagSvg) {
			owner.Host.SetClassAttribute(b.ref, b.class)
		} else {
			owner.Host.SetClassName(b.ref, b.class)
		}
	}
	switch {
	case b.flags.Has(FlagTextInputElement):
		bv, _ := b.childText()
		if owner.Host.InputValue(b.ref) != bv {
			owner.Host.SetInputValue(b.ref, bv)
		}
	case b.flags.Has(FlagCheckedInputElement):
		bc, _ := b.childChecked()
		if owner.Host.InputChecked(b.ref) != bc {
			owner.Host.SetInputChecked(b.ref, bc)
		}
	}
}

func syncComponent(a, b *VNode, owner *Owner) {
	c := a.Component()
	b.cref = c
	b.ref = c.element

	if a.class != b.class {
		owner.Host.SetClassName(c.element, b.class)
	}

	if c.descriptor.ShallowUpdate {
		return
	}
	trigger := true
	if c.is(FlagImmutableProps) {
		trigger = a.componentProps != b.componentProps
	}
	if !trigger {
		return
	}
	c.SetProps(b.componentProps)
	c.update()
	b.ref = c.element
}

// syncChildren handles the top-level (string|list|nil) × (string|list|nil)
// cases (§4.2).
func syncChildren(a, b *VNode, owner *Owner) {
	switch av := a.children.(type) {
	case string:
		switch bv := b.children.(type) {
		case string:
			if av != bv {
				owner.Host.SetTextContent(b.ref, bv)
			}
		case []*VNode:
			owner.Host.SetTextContent(b.ref, "")
			ops := newContainerOps(b, owner)
			for _, cn := range bv {
				ops.insert(cn, nil)
			}
		case nil:
			owner.Host.SetTextContent(b.ref, "")
		}
	case []*VNode:
		switch bv := b.children.(type) {
		case string:
			ops := newContainerOps(a, owner)
			for _, cn := range av {
				ops.remove(cn)
			}
			owner.Host.SetTextContent(b.ref, bv)
		case []*VNode:
			syncChildLists(a, b, av, bv, owner)
		case nil:
			ops := newContainerOps(a, owner)
			for _, cn := range av {
				ops.remove(cn)
			}
		}
	case nil:
		switch bv := b.children.(type) {
		case string:
			owner.Host.SetTextContent(b.ref, bv)
		case []*VNode:
			ops := newContainerOps(b, owner)
			for _, cn := range bv {
				ops.insert(cn, nil)
			}
		}
	}
}

func syncChildLists(parentOld, parentNew *VNode, oldList, newList []*VNode, owner *Owner) {
	if len(oldList) == 1 && len(newList) == 1 {
		oc, nc := oldList[0], newList[0]
		if syncCompatible(oc, nc) {
			Sync(oc, nc, owner)
		} else {
			newContainerOps(parentNew, owner).replace(nc, oc)
		}
		return
	}
	if parentNew.flags.Has(FlagTrackByKeyChildren) {
		syncKeyedChildren(parentNew, oldList, newList, owner)
	} else {
		syncNaiveChildren(parentNew, oldList, newList, owner)
	}
}

// syncNaiveChildren matches the common prefix and suffix of sync-compatible
// runs, then replaces/inserts/removes through the unmatched middle (§4.2).
func syncNaiveChildren(parent *VNode, oldList, newList []*VNode, owner *Owner) {
	ops := newContainerOps(parent, owner)
	oldLen, newLen := len(oldList), len(newList)

	start := 0
	for start < oldLen && start < newLen && syncCompatible(oldList[start], newList[start]) {
		Sync(oldList[start], newList[start], owner)
		start++
	}

	oldEnd, newEnd := oldLen-1, newLen-1
	for oldEnd >= start && newEnd >= start && syncCompatible(oldList[oldEnd], newList[newEnd]) {
		Sync(oldList[oldEnd], newList[newEnd], owner)
		oldEnd--
		newEnd--
	}

	if start <= oldEnd && start <= newEnd {
		warn(owner.Reporter, &ChildrenShapeWarning{Parent: parent})
	}

	var tailRef HostNode
	if oldEnd+1 < oldLen {
		tailRef = oldList[oldEnd+1].ref
	}

	i, j := start, start
	for i <= oldEnd || j <= newEnd {
		switch {
		case i <= oldEnd && j <= newEnd:
			if syncCompatible(oldList[i], newList[j]) {
				Sync(oldList[i], newList[j], owner)
			} else {
				ops.replace(newList[j], oldList[i])
			}
			i++
			j++
		case j <= newEnd:
			ops.insert(newList[j], tailRef)
			j++
		default:
			ops.remove(oldList[i])
			i++
		}
	}
}

// syncKeyedChildren is the track-by-key + LIS diff (§4.2): prefix/suffix
// (with single-step rotation detection), short-circuit, index-build, and
// right-to-left placement.
func syncKeyedChildren(parent *VNode, oldList, newList []*VNode, owner *Owner) {
	ops := newContainerOps(parent, owner)
	oldStart, oldEnd := 0, len(oldList)-1
	newStart, newEnd := 0, len(newList)-1

	for oldStart <= oldEnd && newStart <= newEnd {
		switch {
		case oldList[oldStart].key == newList[newStart].key:
			Sync(oldList[oldStart], newList[newStart], owner)
			oldStart++
			newStart++
		case oldList[oldEnd].key == newList[newEnd].key:
			Sync(oldList[oldEnd], newList[newEnd], owner)
			oldEnd--
			newEnd--
		case oldList[oldStart].key == newList[newEnd].key:
			Sync(oldList[oldStart], newList[newEnd], owner)
			var ref HostNode
			if next, ok := owner.Host.NextSibling(oldList[oldEnd].ref); ok {
				ref = next
			}
			ops.move(newList[newEnd], ref)
			oldStart++
			newEnd--
		case oldList[oldEnd].key == newList[newStart].key:
			Sync(oldList[oldEnd], newList[newStart], owner)
			ops.move(newList[newStart], oldList[oldStart].ref)
			oldEnd--
			newStart++
		default:
			goto indexBuild
		}
	}

indexBuild:
	if oldStart > oldEnd {
		var ref HostNode
		if newEnd+1 < len(newList) {
			ref = newList[newEnd+1].ref
		}
		for i := newStart; i <= newEnd; i++ {
			ops.insert(newList[i], ref)
		}
		return
	}
	if newStart > newEnd {
		for i := oldStart; i <= oldEnd; i++ {
			ops.remove(oldList[i])
		}
		return
	}

	oldLen2 := oldEnd - oldStart + 1
	newLen2 := newEnd - newStart + 1
	sources := make([]int, newLen2)
	for i := range sources {
		sources[i] = -1
	}

	keyIndex := make(map[interface{}]int, newLen2)
	for i := newStart; i <= newEnd; i++ {
		if Debug {
			assertf(newList[i].key != nil, "syncKeyedChildren", "track-by-key child missing a key")
			if _, dup := keyIndex[newList[i].key]; dup {
				assertf(false, "syncKeyedChildren", "duplicate key %v among siblings", newList[i].key)
			}
		}
		keyIndex[newList[i].key] = i
	}

	moved := false
	lastPlacedNewIndex := -1
	removed := 0
	for i := oldStart; i <= oldEnd; i++ {
		oldNode := oldList[i]
		newIdx, ok := keyIndex[oldNode.key]
		if !ok {
			ops.remove(oldNode)
			removed++
			continue
		}
		sources[newIdx-newStart] = i
		Sync(oldNode, newList[newIdx], owner)
		if newIdx < lastPlacedNewIndex {
			moved = true
		} else {
			lastPlacedNewIndex = newIdx
		}
	}

	if moved {
		lis := longestIncreasingSubsequence(sources)
		lisPtr := len(lis) - 1
		for i := newLen2 - 1; i >= 0; i-- {
			newPos := newStart + i
			newNode := newList[newPos]
			var ref HostNode
			if newPos+1 < len(newList) {
				ref = newList[newPos+1].ref
			}
			switch {
			case sources[i] == -1:
				ops.insert(newNode, ref)
			case lisPtr >= 0 && i == lis[lisPtr]:
				lisPtr--
			default:
				ops.move(newNode, ref)
			}
		}
	} else if oldLen2-removed != newLen2 {
		for i := newLen2 - 1; i >= 0; i-- {
			if sources[i] != -1 {
				continue
			}
			newPos := newStart + i
			var ref HostNode
			if newPos+1 < len(newList) {
				ref = newList[newPos+1].ref
			}
			ops.insert(newList[newPos], ref)
		}
	}
}

// writeProps syncs a host property mapping. old == nil means "write every
// key" (initial render). Otherwise the static/dynamic-shape flag on new
// selects the algorithm (§4.2); debug mode verifies the static-shape
// assumption that old and new carry identical key sets.
func writeProps(host Host, node HostNode, old, new Props, flags Flags) {
	if old == nil {
		for k, v := range new {
			host.SetProperty(node, k, v)
		}
		return
	}
	if flags.Has(FlagDynamicShapeProps) {
		for k, ov := range old {
			if nv, ok := new[k]; ok {
				if !equalValue(ov, nv) {
					host.SetProperty(node, k, nv)
				}
			} else {
				host.SetProperty(node, k, nil)
			}
		}
		for k, nv := range new {
			if _, ok := old[k]; !ok {
				host.SetProperty(node, k, nv)
			}
		}
		return
	}
	if Debug {
		assertf(sameKeySet(old, new), "writeProps", "static-shape props key set changed between renders")
	}
	for k, ov := range old {
		nv := new[k]
		if !equalValue(ov, nv) {
			host.SetProperty(node, k, nv)
		}
	}
}

// writeAttrs is the attribute-side counterpart of writeProps, routing
// xml:/xlink:-prefixed keys through their namespace (§4.2, §6).
func writeAttrs(host Host, node HostNode, old, new Attrs, flags Flags) {
	set := func(k, v string) {
		if Debug {
			assertValidAttrKey(k)
		}
		if ns, local, ok := xmlnsFor(k); ok {
			host.SetAttributeNS(node, ns, local, v)
		} else {
			host.SetAttribute(node, k, v)
		}
	}
	remove := func(k string) {
		if _, local, ok := xmlnsFor(k); ok {
			host.RemoveAttribute(node, local)
		} else {
			host.RemoveAttribute(node, k)
		}
	}

	if old == nil {
		for k, v := range new {
			set(k, v)
		}
		return
	}
	if flags.Has(FlagDynamicShapeAttrs) {
		for k, ov := range old {
			if nv, ok := new[k]; ok {
				if ov != nv {
					set(k, nv)
				}
			} else {
				remove(k)
			}
		}
		for k, nv := range new {
			if _, ok := old[k]; !ok {
				set(k, nv)
			}
		}
		return
	}
	if Debug {
		assertf(sameAttrKeySet(old, new), "writeAttrs", "static-shape attrs key set changed between renders")
	}
	for k, ov := range old {
		nv := new[k]
		if ov != nv {
			set(k, nv)
		}
	}
}

func assertValidAttrKey(key string) {
	if len(key) > 1 && key[0] == 'x' && key[1] != 'm' && key[1] != 'l' {
		_, _, ok := xmlnsFor(key)
		assertf(ok || key[1] == ':', "writeAttrs", "attribute key %q looks namespaced but isn't xml:/xlink:-prefixed", key)
	}
}

func sameKeySet(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sameAttrKeySet(a, b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// equalValue compares two property values, tolerating non-comparable
// dynamic types (slices, maps, funcs) by treating them as always-changed
// rather than panicking on ==.
func equalValue(a, b interface{}) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
