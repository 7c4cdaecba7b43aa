package layout

import (
	"fmt"
	"slices"
)

// nodeID indexes the node arena of a DockLayout.
type nodeID int32

const noNode nodeID = -1

type nodeKind uint8

const (
	tabArea nodeKind = iota + 1
	splitArea
)

// node is either a tab area (a leaf holding a tab bar) or a split area
// (children separated by handles). Fields of the other kind stay zero.
type node struct {
	kind   nodeKind
	parent nodeID

	// tab area
	tabBar *TabBar
	pair   [2]Sizer // tab bar height, current widget height
	rect   Rect

	// split area
	orientation Orientation
	children    []nodeID
	sizers      []Sizer
	handles     []*Handle
	normalized  bool
}

// arena owns every node. Released slots are reused.
type arena struct {
	nodes []*node
	free  []nodeID
	root  nodeID
}

func (a *arena) alloc(n *node) nodeID {
	n.parent = noNode
	if k := len(a.free); k > 0 {
		id := a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[id] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *arena) release(id nodeID) {
	a.nodes[id] = nil
	a.free = append(a.free, id)
}

func (a *arena) reset() {
	a.nodes = nil
	a.free = nil
	a.root = noNode
}

func (a *arena) at(id nodeID) *node { return a.nodes[id] }

func (a *arena) newTabNode(bar *TabBar) nodeID {
	n := &node{kind: tabArea, tabBar: bar}
	n.pair[0] = NewSizer(0)
	n.pair[0].Stretch = 0
	n.pair[1] = NewSizer(0)
	n.pair[1].Stretch = 1
	return a.alloc(n)
}

func (a *arena) newSplitNode(o Orientation) nodeID {
	o.mustValid()
	return a.alloc(&node{kind: splitArea, orientation: o})
}

// walk visits id and its descendants depth first until fn returns false.
func (a *arena) walk(id nodeID, fn func(nodeID, *node) bool) bool {
	if id == noNode {
		return true
	}
	n := a.at(id)
	if !fn(id, n) {
		return false
	}
	for _, c := range n.children {
		if !a.walk(c, fn) {
			return false
		}
	}
	return true
}

func (a *arena) firstTabNode(id nodeID) nodeID {
	found := noNode
	a.walk(id, func(cid nodeID, n *node) bool {
		if n.kind == tabArea {
			found = cid
			return false
		}
		return true
	})
	return found
}

func (a *arena) findTabNode(t *Title) nodeID {
	found := noNode
	a.walk(a.root, func(id nodeID, n *node) bool {
		if n.kind == tabArea && n.tabBar.IndexOf(t) >= 0 {
			found = id
			return false
		}
		return true
	})
	return found
}

func (a *arena) findSplitNode(h *Handle) (nodeID, int) {
	found, index := noNode, -1
	a.walk(a.root, func(id nodeID, n *node) bool {
		if i := slices.Index(n.handles, h); i >= 0 {
			found, index = id, i
			return false
		}
		return true
	})
	return found, index
}

func (a *arena) holdAllSizes(id nodeID) {
	a.walk(id, func(_ nodeID, n *node) bool {
		holdSizes(n.sizers)
		return true
	})
}

// insertChild places child at index i of the split node p.
func (a *arena) insertChild(p nodeID, i int, child nodeID, s Sizer, h *Handle) {
	pn := a.at(p)
	pn.children = slices.Insert(pn.children, i, child)
	pn.sizers = slices.Insert(pn.sizers, i, s)
	pn.handles = slices.Insert(pn.handles, i, h)
	a.at(child).parent = p
}

// removeChildAt drops the child at index i of the split node p and returns
// its sizer.
func (a *arena) removeChildAt(p nodeID, i int) Sizer {
	pn := a.at(p)
	s := pn.sizers[i]
	pn.children = slices.Delete(pn.children, i, i+1)
	pn.sizers = slices.Delete(pn.sizers, i, i+1)
	pn.handles = slices.Delete(pn.handles, i, i+1)
	return s
}

// normalizeSizes commits the current sizes and scales them to fractions.
// The next update scales them back by the available space.
func (n *node) normalizeSizes() {
	if len(n.sizers) == 0 {
		return
	}
	holdSizes(n.sizers)
	normalizeHints(n.sizers)
	n.normalized = true
}

// syncHandles hides the handle after the last child.
func (n *node) syncHandles() {
	for i, h := range n.handles {
		h.Orientation = n.orientation
		h.Hidden = i == len(n.handles)-1
	}
}

// validate checks the structural invariants below id.
func (a *arena) validate(id nodeID, parent nodeID) error {
	n := a.at(id)
	if n == nil {
		return fmt.Errorf("node %d: released node still linked", id)
	}
	if n.parent != parent {
		return fmt.Errorf("node %d: parent %d, want %d", id, n.parent, parent)
	}
	switch n.kind {
	case tabArea:
		if n.tabBar == nil || n.tabBar.Len() == 0 {
			return fmt.Errorf("node %d: empty tab area", id)
		}
		return nil
	case splitArea:
		if len(n.children) < 2 {
			return fmt.Errorf("node %d: split area with %d children", id, len(n.children))
		}
		if len(n.sizers) != len(n.children) || len(n.handles) != len(n.children) {
			return fmt.Errorf("node %d: %d children, %d sizers, %d handles", id, len(n.children), len(n.sizers), len(n.handles))
		}
		for i, c := range n.children {
			if cn := a.at(c); cn != nil && cn.kind == splitArea && cn.orientation == n.orientation {
				return fmt.Errorf("node %d: child %d has the same orientation %s", id, c, n.orientation)
			}
			if h := n.handles[i]; h.Hidden != (i == len(n.children)-1) {
				return fmt.Errorf("node %d: handle %d hidden=%v", id, i, h.Hidden)
			}
			if err := a.validate(c, id); err != nil {
				return err
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("layout: invalid node kind %d", n.kind))
	}
}
