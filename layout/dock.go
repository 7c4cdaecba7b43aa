package layout

import (
	"fmt"
	"iter"
	"math"

	"go.uber.org/zap"
)

// goldenRatio is the share given to a widget docked against an edge of the
// whole layout.
const goldenRatio = 0.618

// Host is the container a DockLayout lives in. Requests may be queued and
// coalesced; the host answers them by calling Fit and Update.
type Host interface {
	// SetMinSize applies the aggregate minimum size of the layout.
	SetMinSize(width, height float64)
	// RequestFit asks for a fit pass of this layout.
	RequestFit()
	// FitAncestors asks the containers above the host to fit again.
	FitAncestors()
	// RequestUpdate asks for an update pass of this layout.
	RequestUpdate()
	// Attach and Detach report widgets entering and leaving the layout.
	Attach(w Widget)
	Detach(w Widget)
}

// NopHost ignores every request. Embed it to implement part of Host.
type NopHost struct{}

func (NopHost) SetMinSize(float64, float64) {}
func (NopHost) RequestFit()                 {}
func (NopHost) FitAncestors()               {}
func (NopHost) RequestUpdate()              {}
func (NopHost) Attach(Widget)               {}
func (NopHost) Detach(Widget)               {}

// InsertMode selects where AddWidget puts a widget relative to its reference.
type InsertMode uint8

const (
	// TabAfter adds the widget as a tab after the reference.
	TabAfter InsertMode = iota
	// TabBefore adds the widget as a tab before the reference.
	TabBefore
	SplitTop
	SplitLeft
	SplitRight
	SplitBottom
)

func (m InsertMode) String() string {
	switch m {
	case TabAfter:
		return "tab-after"
	case TabBefore:
		return "tab-before"
	case SplitTop:
		return "split-top"
	case SplitLeft:
		return "split-left"
	case SplitRight:
		return "split-right"
	case SplitBottom:
		return "split-bottom"
	default:
		return fmt.Sprintf("InsertMode(%d)", uint8(m))
	}
}

// AddOptions position a widget added with AddWidget. A nil Ref means the
// whole layout.
type AddOptions struct {
	Mode InsertMode
	Ref  Widget
}

// TabAreaGeometry describes the tab area under a point.
type TabAreaGeometry struct {
	TabBar *TabBar
	// X and Y are the point that was tested.
	X, Y float64
	// Left, Top, Right and Bottom are insets from the layout rectangle.
	Left, Top, Right, Bottom float64
	Width, Height            float64
}

// DockOption configures a DockLayout.
type DockOption func(*DockLayout)

// WithSpacing sets the thickness of the handles between split children.
func WithSpacing(spacing float64) DockOption {
	return func(d *DockLayout) { d.spacing = max(0, spacing) }
}

// WithRenderer sets the factory for tab bars and handles.
func WithRenderer(r Renderer) DockOption {
	return func(d *DockLayout) { d.renderer = r }
}

// WithLogger sets the logger structural changes are reported to.
func WithLogger(l *zap.Logger) DockOption {
	return func(d *DockLayout) { d.logger = l }
}

// WithHost sets the container the layout requests passes from.
func WithHost(h Host) DockOption {
	return func(d *DockLayout) { d.host = h }
}

// DockLayout arranges widgets in a tree of tab areas and split areas.
//
// Widgets must be comparable (usually pointers). All methods must be called
// from the same goroutine.
type DockLayout struct {
	arena

	spacing  float64
	renderer Renderer
	logger   *zap.Logger
	host     Host

	items map[Surface]*layoutItem
	rect  Rect
	dirty bool
}

// NewDockLayout returns an empty layout.
func NewDockLayout(opts ...DockOption) *DockLayout {
	d := &DockLayout{
		spacing:  1,
		renderer: DefaultRenderer{},
		logger:   zap.NewNop(),
		host:     NopHost{},
		items:    make(map[Surface]*layoutItem),
	}
	d.root = noNode
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Spacing returns the handle thickness.
func (d *DockLayout) Spacing() float64 { return d.spacing }

// SetSpacing changes the handle thickness and requests a fit.
func (d *DockLayout) SetSpacing(spacing float64) {
	spacing = max(0, spacing)
	if d.spacing == spacing {
		return
	}
	d.spacing = spacing
	d.host.RequestFit()
}

// IsEmpty reports whether no widget is docked.
func (d *DockLayout) IsEmpty() bool { return d.root == noNode }

// Contains reports whether w is docked.
func (d *DockLayout) Contains(w Widget) bool {
	_, ok := d.items[w]
	return ok
}

// Widgets yields every docked widget in tree order.
func (d *DockLayout) Widgets() iter.Seq[Widget] {
	return func(yield func(Widget) bool) {
		d.walk(d.root, func(_ nodeID, n *node) bool {
			if n.kind != tabArea {
				return true
			}
			for _, t := range n.tabBar.titles {
				if !yield(t.Owner) {
					return false
				}
			}
			return true
		})
	}
}

// SelectedWidgets yields the current widget of every tab area.
func (d *DockLayout) SelectedWidgets() iter.Seq[Widget] {
	return func(yield func(Widget) bool) {
		d.walk(d.root, func(_ nodeID, n *node) bool {
			if n.kind != tabArea {
				return true
			}
			if t := n.tabBar.CurrentTitle(); t != nil {
				return yield(t.Owner)
			}
			return true
		})
	}
}

// Surfaces yields every tab bar followed by the widgets of its area.
func (d *DockLayout) Surfaces() iter.Seq[Surface] {
	return func(yield func(Surface) bool) {
		d.walk(d.root, func(_ nodeID, n *node) bool {
			if n.kind != tabArea {
				return true
			}
			if !yield(n.tabBar) {
				return false
			}
			for _, t := range n.tabBar.titles {
				if !yield(t.Owner) {
					return false
				}
			}
			return true
		})
	}
}

// TabBars yields the tab bar of every tab area.
func (d *DockLayout) TabBars() iter.Seq[*TabBar] {
	return func(yield func(*TabBar) bool) {
		d.walk(d.root, func(_ nodeID, n *node) bool {
			if n.kind == tabArea {
				return yield(n.tabBar)
			}
			return true
		})
	}
}

// Handles yields every split handle, hidden ones included.
func (d *DockLayout) Handles() iter.Seq[*Handle] {
	return func(yield func(*Handle) bool) {
		d.walk(d.root, func(_ nodeID, n *node) bool {
			for _, h := range n.handles {
				if !yield(h) {
					return false
				}
			}
			return true
		})
	}
}

// FindTabBar returns the tab bar holding w, or nil.
func (d *DockLayout) FindTabBar(w Widget) *TabBar {
	if id := d.findTabNode(w.Title()); id != noNode {
		return d.at(id).tabBar
	}
	return nil
}

// SelectWidget makes w the current tab of its area.
func (d *DockLayout) SelectWidget(w Widget) {
	bar := d.FindTabBar(w)
	if bar == nil || bar.CurrentTitle() == w.Title() {
		return
	}
	bar.SetCurrentTitle(w.Title())
	d.host.RequestFit()
}

// AddWidget docks w according to opts. Adding a widget that is already
// docked moves it.
func (d *DockLayout) AddWidget(w Widget, opts AddOptions) error {
	switch opts.Mode {
	case TabAfter:
		return d.InsertTab(w, opts.Ref, true)
	case TabBefore:
		return d.InsertTab(w, opts.Ref, false)
	case SplitTop:
		return d.InsertSplit(w, opts.Ref, Vertical, false)
	case SplitLeft:
		return d.InsertSplit(w, opts.Ref, Horizontal, false)
	case SplitRight:
		return d.InsertSplit(w, opts.Ref, Horizontal, true)
	case SplitBottom:
		return d.InsertSplit(w, opts.Ref, Vertical, true)
	default:
		panic(fmt.Sprintf("layout: invalid insert mode %d", uint8(opts.Mode)))
	}
}

func (d *DockLayout) refNode(w, ref Widget) (nodeID, error) {
	if ref == nil {
		return noNode, nil
	}
	id := d.findTabNode(ref.Title())
	if id == noNode {
		return noNode, fmt.Errorf("dock %q next to %q: %w", w.Title().Label, ref.Title().Label, ErrRefNotFound)
	}
	return id, nil
}

// attach registers w with the layout.
func (d *DockLayout) attach(w Widget) {
	t := w.Title()
	t.Owner = w
	if _, ok := d.items[w]; ok {
		return
	}
	d.items[w] = newLayoutItem(w)
	d.host.Attach(w)
}

func (d *DockLayout) item(s Surface) *layoutItem {
	it, ok := d.items[s]
	if !ok {
		it = newLayoutItem(s)
		d.items[s] = it
	}
	return it
}

func (d *DockLayout) createHandle(o Orientation) *Handle {
	h := d.renderer.CreateHandle()
	h.Orientation = o
	return h
}

// InsertTab docks w as a tab next to ref, or in the first tab area when ref
// is nil.
func (d *DockLayout) InsertTab(w, ref Widget, after bool) error {
	if ref == w {
		return nil
	}
	refID, err := d.refNode(w, ref)
	if err != nil {
		return err
	}

	if d.root == noNode {
		id := d.newTabNode(d.renderer.CreateTabBar())
		d.attach(w)
		d.at(id).tabBar.AddTab(w.Title())
		d.root = id
		d.logger.Debug("dock root tab area", zap.String("widget", w.Title().Label))
		d.host.RequestFit()
		return nil
	}

	if refID == noNode {
		refID = d.firstTabNode(d.root)
	}
	bar := d.at(refID).tabBar
	if bar.IndexOf(w.Title()) == -1 {
		d.detach(w)
		d.attach(w)
	}

	index := bar.CurrentIndex()
	if ref != nil {
		index = bar.IndexOf(ref.Title())
	}
	if after {
		index++
	}
	bar.InsertTab(index, w.Title())

	d.logger.Debug("dock tab",
		zap.String("widget", w.Title().Label),
		zap.Int("index", bar.IndexOf(w.Title())),
		zap.Int("tabs", bar.Len()))
	d.host.RequestFit()
	return nil
}

// InsertSplit docks w in a new tab area beside ref along orientation o,
// after ref when after is set. A nil ref splits the whole layout.
func (d *DockLayout) InsertSplit(w, ref Widget, o Orientation, after bool) error {
	o.mustValid()
	refID, err := d.refNode(w, ref)
	if err != nil {
		return err
	}
	if ref == w && refID != noNode && d.at(refID).tabBar.Len() == 1 {
		return nil
	}

	d.detach(w)
	d.attach(w)
	tabID := d.newTabNode(d.renderer.CreateTabBar())
	d.at(tabID).tabBar.AddTab(w.Title())
	defer d.host.RequestFit()

	if d.root == noNode {
		d.root = tabID
		d.logger.Debug("dock root tab area", zap.String("widget", w.Title().Label))
		return nil
	}

	if refID == noNode || d.at(refID).parent == noNode {
		rootID := d.splitRoot(o)
		root := d.at(rootID)
		i := 0
		if after {
			i = len(root.children)
		}
		root.normalizeSizes()
		hint := goldenRatio
		if refID != noNode {
			hint = 1
		}
		d.insertChild(rootID, i, tabID, NewSizer(hint), d.createHandle(o))
		root.normalizeSizes()
		root.syncHandles()
		d.logger.Debug("dock split root",
			zap.String("widget", w.Title().Label),
			zap.Stringer("orientation", o),
			zap.Int("index", i))
		return nil
	}

	parentID := d.at(refID).parent
	parent := d.at(parentID)
	i := indexOf(parent.children, refID)

	if parent.orientation == o {
		parent.normalizeSizes()
		half := parent.sizers[i].SizeHint / 2
		parent.sizers[i].SizeHint = half
		parent.sizers[i].Size = half
		j := i
		if after {
			j++
		}
		d.insertChild(parentID, j, tabID, NewSizer(half), d.createHandle(o))
		parent.syncHandles()
		d.logger.Debug("dock split beside",
			zap.String("widget", w.Title().Label),
			zap.Stringer("orientation", o),
			zap.Int("index", j))
		return nil
	}

	splitID := d.newSplitNode(o)
	split := d.at(splitID)
	split.normalized = true
	d.insertChild(splitID, 0, refID, NewSizer(0.5), d.createHandle(o))
	j := 0
	if after {
		j = 1
	}
	d.insertChild(splitID, j, tabID, NewSizer(0.5), d.createHandle(o))
	split.syncHandles()
	parent.children[i] = splitID
	split.parent = parentID
	d.logger.Debug("dock split wrap",
		zap.String("widget", w.Title().Label),
		zap.Stringer("orientation", o))
	return nil
}

// splitRoot makes the root a split area of orientation o, wrapping the old
// root when it is not one already.
func (d *DockLayout) splitRoot(o Orientation) nodeID {
	old := d.root
	if n := d.at(old); n.kind == splitArea && n.orientation == o {
		return old
	}
	rootID := d.newSplitNode(o)
	d.insertChild(rootID, 0, old, NewSizer(0), d.createHandle(o))
	d.root = rootID
	return rootID
}

// RemoveWidget undocks w. Widgets that are not docked are ignored.
func (d *DockLayout) RemoveWidget(w Widget) {
	if _, ok := d.items[w]; !ok {
		return
	}
	d.detach(w)
	delete(d.items, w)
	d.host.Detach(w)
	d.logger.Debug("undock", zap.String("widget", w.Title().Label))
	d.host.RequestFit()
}

// detach removes the tab of w from the tree and normalizes the ancestors
// of its tab area. The widget stays registered.
func (d *DockLayout) detach(w Widget) {
	if d.root == noNode {
		return
	}
	tabID := d.findTabNode(w.Title())
	if tabID == noNode {
		return
	}
	bar := d.at(tabID).tabBar
	if bar.Len() > 1 {
		bar.RemoveTab(w.Title())
		return
	}

	bar.ClearTabs()
	delete(d.items, bar)
	if d.root == tabID {
		d.release(tabID)
		d.root = noNode
		return
	}

	d.holdAllSizes(d.root)
	splitID := d.at(tabID).parent
	d.removeChildAt(splitID, indexOf(d.at(splitID).children, tabID))
	d.release(tabID)

	split := d.at(splitID)
	if len(split.children) > 1 {
		split.syncHandles()
		return
	}

	// A split area with one child is replaced by that child.
	grandID := split.parent
	childID := split.children[0]
	d.release(splitID)
	child := d.at(childID)

	if grandID == noNode {
		child.parent = noNode
		d.root = childID
		return
	}

	grand := d.at(grandID)
	j := indexOf(grand.children, splitID)
	if child.kind == tabArea {
		grand.children[j] = childID
		child.parent = grandID
		return
	}

	// The child split has the grandparent's orientation: splice its
	// children in place of the collapsed split.
	slot := d.removeChildAt(grandID, j)
	var sum float64
	for _, s := range child.sizers {
		sum += s.SizeHint
	}
	for k, gc := range child.children {
		s := child.sizers[k]
		if sum > 0 {
			s.SizeHint = s.SizeHint / sum * slot.SizeHint
			s.Size = s.SizeHint
		}
		d.insertChild(grandID, j+k, gc, s, child.handles[k])
	}
	d.release(childID)
	grand.syncHandles()
}

// Fit computes the minimum size of the layout bottom up and reports it to
// the host. Unless an update runs while the ancestors are refitted, one
// update is requested.
func (d *DockLayout) Fit() Limits {
	l := Unbounded()
	if d.root != noNode {
		l = d.fitNode(d.root)
	}
	d.host.SetMinSize(l.MinWidth, l.MinHeight)
	d.dirty = true
	d.host.FitAncestors()
	if d.dirty {
		d.host.RequestUpdate()
	}
	return l
}

func (d *DockLayout) fitNode(id nodeID) Limits {
	n := d.at(id)
	switch n.kind {
	case tabArea:
		return d.fitTabNode(n)
	case splitArea:
		return d.fitSplitNode(n)
	default:
		panic(fmt.Sprintf("layout: invalid node kind %d", n.kind))
	}
}

func (d *DockLayout) fitTabNode(n *node) Limits {
	l := Unbounded()
	bar, content := &n.pair[0], &n.pair[1]

	bl := d.item(n.tabBar).fit()
	l.MinWidth = max(l.MinWidth, bl.MinWidth)
	l.MinHeight += bl.MinHeight
	bar.MinSize, bar.MaxSize = bl.MinHeight, bl.MaxHeight

	// The content takes whatever the bar leaves; the item clamps the widget
	// to its own maximum.
	content.MinSize, content.MaxSize = 0, math.Inf(1)
	if t := n.tabBar.CurrentTitle(); t != nil && t.Owner != nil {
		wl := d.item(t.Owner).fit()
		l.MinWidth = max(l.MinWidth, wl.MinWidth)
		l.MinHeight += wl.MinHeight
		content.MinSize = wl.MinHeight
	}
	return l
}

func (d *DockLayout) fitSplitNode(n *node) Limits {
	horizontal := n.orientation == Horizontal
	fixed := float64(max(0, len(n.children)-1)) * d.spacing
	l := Unbounded()
	if horizontal {
		l.MinWidth = fixed
	} else {
		l.MinHeight = fixed
	}
	for i, c := range n.children {
		cl := d.fitNode(c)
		if horizontal {
			l.MinHeight = max(l.MinHeight, cl.MinHeight)
			l.MinWidth += cl.MinWidth
			n.sizers[i].MinSize = cl.MinWidth
		} else {
			l.MinWidth = max(l.MinWidth, cl.MinWidth)
			l.MinHeight += cl.MinHeight
			n.sizers[i].MinSize = cl.MinHeight
		}
	}
	return l
}

// Update distributes r top down and places every tab bar and current
// widget. Surfaces whose rectangle did not change are not placed again.
func (d *DockLayout) Update(r Rect) {
	d.dirty = false
	d.rect = r
	if d.root == noNode {
		return
	}
	d.updateNode(d.root, r)
}

func (d *DockLayout) updateNode(id nodeID, r Rect) {
	n := d.at(id)
	switch n.kind {
	case tabArea:
		d.updateTabNode(n, r)
	case splitArea:
		d.updateSplitNode(n, r)
	default:
		panic(fmt.Sprintf("layout: invalid node kind %d", n.kind))
	}
}

func (d *DockLayout) updateTabNode(n *node, r Rect) {
	n.rect = r
	Calc(n.pair[:], r.Height)
	barHeight, contentHeight := n.pair[0].Size, n.pair[1].Size

	d.item(n.tabBar).update(Rect{X: r.X, Y: r.Y, Width: r.Width, Height: barHeight})
	if t := n.tabBar.CurrentTitle(); t != nil && t.Owner != nil {
		d.item(t.Owner).update(Rect{X: r.X, Y: r.Y + barHeight, Width: r.Width, Height: contentHeight})
	}
}

func (d *DockLayout) updateSplitNode(n *node, r Rect) {
	horizontal := n.orientation == Horizontal
	fixed := float64(max(0, len(n.children)-1)) * d.spacing
	span := r.Height
	if horizontal {
		span = r.Width
	}
	space := max(0, span-fixed)

	if n.normalized {
		for i := range n.sizers {
			n.sizers[i].SizeHint *= space
		}
		n.normalized = false
	}
	Calc(n.sizers, space)

	x, y := r.X, r.Y
	for i, c := range n.children {
		size := n.sizers[i].Size
		h := n.handles[i]
		if horizontal {
			d.updateNode(c, Rect{X: x, Y: y, Width: size, Height: r.Height})
			x += size
			h.Rect = Rect{X: x, Y: y, Width: d.spacing, Height: r.Height}
			x += d.spacing
		} else {
			d.updateNode(c, Rect{X: x, Y: y, Width: r.Width, Height: size})
			y += size
			h.Rect = Rect{X: x, Y: y, Width: r.Width, Height: d.spacing}
			y += d.spacing
		}
	}
}

// MoveHandle drags h so its leading edge lands at offsetX or offsetY,
// depending on its orientation, and requests an update. Splits changed since
// the last Update ignore the drag.
func (d *DockLayout) MoveHandle(h *Handle, offsetX, offsetY float64) {
	if d.root == noNode || h.Hidden {
		return
	}
	id, index := d.findSplitNode(h)
	if id == noNode {
		return
	}
	n := d.at(id)
	if n.normalized {
		// hints are still fractions and h.Rect predates the last insert
		return
	}
	var delta float64
	switch n.orientation {
	case Horizontal:
		delta = offsetX - h.Rect.X
	case Vertical:
		delta = offsetY - h.Rect.Y
	default:
		panic(fmt.Sprintf("layout: invalid orientation %d", uint8(n.orientation)))
	}
	if delta == 0 {
		return
	}
	holdSizes(n.sizers)
	Adjust(n.sizers, index, delta)
	d.host.RequestUpdate()
}

// HandleAt returns the visible handle under the point, or nil.
func (d *DockLayout) HandleAt(x, y float64) *Handle {
	for h := range d.Handles() {
		if !h.Hidden && h.Rect.Contains(x, y) {
			return h
		}
	}
	return nil
}

// HitTestTabAreas returns the geometry of the tab area under the point, as
// of the last update.
func (d *DockLayout) HitTestTabAreas(x, y float64) (TabAreaGeometry, bool) {
	if d.root == noNode {
		return TabAreaGeometry{}, false
	}
	id := d.hitTestNode(d.root, x, y)
	if id == noNode {
		return TabAreaGeometry{}, false
	}
	n := d.at(id)
	r := n.rect
	return TabAreaGeometry{
		TabBar: n.tabBar,
		X:      x,
		Y:      y,
		Left:   r.X - d.rect.X,
		Top:    r.Y - d.rect.Y,
		Right:  d.rect.X + d.rect.Width - (r.X + r.Width),
		Bottom: d.rect.Y + d.rect.Height - (r.Y + r.Height),
		Width:  r.Width,
		Height: r.Height,
	}, true
}

func (d *DockLayout) hitTestNode(id nodeID, x, y float64) nodeID {
	n := d.at(id)
	if n.kind == tabArea {
		if n.rect.Contains(x, y) {
			return id
		}
		return noNode
	}
	for _, c := range n.children {
		if found := d.hitTestNode(c, x, y); found != noNode {
			return found
		}
	}
	return noNode
}

// Validate checks the structural invariants of the tree.
func (d *DockLayout) Validate() error {
	if d.root == noNode {
		return nil
	}
	return d.validate(d.root, noNode)
}

func indexOf(ids []nodeID, id nodeID) int {
	for i, c := range ids {
		if c == id {
			return i
		}
	}
	panic(fmt.Sprintf("layout: node %d is not a child", id))
}

var _ Layout = (*DockLayout)(nil)

