package ui

import (
	"go.uber.org/zap"

	"github.com/cansyan/dock/layout"
)

// DockPanel hosts a layout.DockLayout: panels arranged in resizable split
// areas and tab areas. Fit and update requests from the layout are coalesced
// and answered on the next Layout call, once per frame.
type DockPanel struct {
	BasicElement
	dock   *layout.DockLayout
	logger *zap.Logger

	minW, minH int
	needFit    bool
	needUpdate bool
	rect       Rect

	strips  map[*layout.TabBar]*tabStrip
	handles map[*layout.Handle]*handleElement
	dragged *layout.Handle

	// OnClose is called after a panel was closed from its tab.
	OnClose func(p *Panel)
}

// NewDockPanel creates an empty dock panel. spacing is the handle thickness
// in cells.
func NewDockPanel(spacing int, logger *zap.Logger) *DockPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &DockPanel{
		logger:  logger,
		needFit: true,
		strips:  make(map[*layout.TabBar]*tabStrip),
		handles: make(map[*layout.Handle]*handleElement),
	}
	d.dock = layout.NewDockLayout(
		layout.WithSpacing(float64(spacing)),
		layout.WithHost(d),
		layout.WithLogger(logger.Named("dock")),
	)
	return d
}

// DockLayout returns the underlying dock layout.
func (d *DockPanel) DockLayout() *layout.DockLayout { return d.dock }

// AddPanel docks p according to opts.
func (d *DockPanel) AddPanel(p *Panel, opts layout.AddOptions) error {
	return d.dock.AddWidget(p, opts)
}

// RemovePanel undocks p.
func (d *DockPanel) RemovePanel(p *Panel) { d.dock.RemoveWidget(p) }

// Refresh refits the dock on the next Layout, after panel content changed
// its minimum size.
func (d *DockPanel) Refresh() {
	d.needFit = true
	d.needUpdate = true
}

// Panels returns the docked panels in tree order.
func (d *DockPanel) Panels() []*Panel {
	var out []*Panel
	for w := range d.dock.Widgets() {
		if p, ok := w.(*Panel); ok {
			out = append(out, p)
		}
	}
	return out
}

// MarshalLayout encodes the current arrangement. Panels are written by ID.
func (d *DockPanel) MarshalLayout() ([]byte, error) {
	return d.codec(nil, false).Marshal(d.dock.SaveLayout())
}

// UnmarshalLayout restores an arrangement written by MarshalLayout. Panel
// IDs are resolved among panels; unknown IDs are skipped with a warning
// unless strict is set. Docked panels missing from the arrangement are
// undocked.
func (d *DockPanel) UnmarshalLayout(b []byte, panels []*Panel, strict bool) error {
	cfg, err := d.codec(panels, strict).Unmarshal(b)
	if err != nil {
		return err
	}
	d.dock.RestoreLayout(cfg)
	return nil
}

func (d *DockPanel) codec(panels []*Panel, strict bool) layout.Codec {
	byID := make(map[string]*Panel, len(panels))
	for _, p := range panels {
		byID[p.ID] = p
	}
	return layout.Codec{
		ID: func(w layout.Widget) string {
			if p, ok := w.(*Panel); ok {
				return p.ID
			}
			return w.Title().Label
		},
		Resolve: func(id string) (layout.Widget, bool) {
			p, ok := byID[id]
			return p, ok
		},
		Strict: strict,
		Logger: d.logger,
	}
}

// SetMinSize implements layout.Host.
func (d *DockPanel) SetMinSize(w, h float64) { d.minW, d.minH = ceil(w), ceil(h) }

// RequestFit implements layout.Host.
func (d *DockPanel) RequestFit() { d.needFit = true }

// FitAncestors implements layout.Host. The app lays out the whole tree every
// frame, so ancestors always see the new minimum size.
func (d *DockPanel) FitAncestors() {}

// RequestUpdate implements layout.Host.
func (d *DockPanel) RequestUpdate() { d.needUpdate = true }

// Attach implements layout.Host.
func (d *DockPanel) Attach(w layout.Widget) {
	d.logger.Debug("panel attached", zap.String("title", w.Title().Label))
}

// Detach implements layout.Host.
func (d *DockPanel) Detach(w layout.Widget) {
	d.logger.Debug("panel detached", zap.String("title", w.Title().Label))
}

func (d *DockPanel) fit() {
	if d.needFit {
		d.needFit = false
		d.dock.Fit()
	}
}

func (d *DockPanel) MinSize() (int, int) {
	d.fit()
	return d.minW, d.minH
}

func (d *DockPanel) Layout(x, y, w, h int) *LayoutNode {
	n := &LayoutNode{
		Element: d,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
	d.fit()
	if d.needUpdate || n.Rect != d.rect {
		d.needUpdate = false
		d.rect = n.Rect
		d.dock.Update(layout.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)})
	}

	strips := make(map[*layout.TabBar]*tabStrip)
	for bar := range d.dock.TabBars() {
		s, ok := d.strips[bar]
		if !ok {
			s = &tabStrip{dock: d, bar: bar}
		}
		strips[bar] = s
		n.Children = append(n.Children, &LayoutNode{Element: s, Rect: cells(bar.Rect())})
	}
	d.strips = strips

	for w := range d.dock.SelectedWidgets() {
		if p, ok := w.(*Panel); ok {
			if child := p.layoutContent(); child != nil {
				n.Children = append(n.Children, child)
			}
		}
	}

	handles := make(map[*layout.Handle]*handleElement)
	for h := range d.dock.Handles() {
		if h.Hidden {
			continue
		}
		e, ok := d.handles[h]
		if !ok {
			e = &handleElement{dock: d, handle: h}
		}
		handles[h] = e
		n.Children = append(n.Children, &LayoutNode{Element: e, Rect: cells(h.Rect)})
	}
	d.handles = handles
	return n
}

func (d *DockPanel) Render(s Screen, rect Rect, style Style) {
	ResetRect(s, rect, style.Merge(Style{FG: Theme.Foreground, BG: Theme.Background}))
}

// OnFocus delegates to the first selected panel.
func (d *DockPanel) OnFocus() Element {
	for w := range d.dock.SelectedWidgets() {
		if p, ok := w.(*Panel); ok && p.Content != nil {
			return p.Content.OnFocus()
		}
	}
	return nil
}

// ResetRect resets the content of the given rectangle to the specified style.
func ResetRect(s Screen, rect Rect, style Style) {
	st := style.Apply()
	for x := rect.X; x < rect.X+rect.W; x++ {
		for y := rect.Y; y < rect.Y+rect.H; y++ {
			s.SetContent(x, y, ' ', nil, st)
		}
	}
}

// tabStrip draws a layout.TabBar and selects or closes tabs on click.
type tabStrip struct {
	BasicElement
	dock *DockPanel
	bar  *layout.TabBar
}

func (t *tabStrip) MinSize() (int, int) {
	l := t.bar.Measure()
	return ceil(l.MinWidth), ceil(l.MinHeight)
}

func (t *tabStrip) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{Element: t, Rect: Rect{X: x, Y: y, W: w, H: h}}
}

func (t *tabStrip) Render(s Screen, rect Rect, style Style) {
	base := style.Merge(Style{FG: Theme.Foreground, BG: Theme.Selection})
	ResetRect(s, rect, base)
	col := 0
	for i := range t.bar.Len() {
		st := base
		if i == t.bar.CurrentIndex() {
			st.BG = Theme.Background
			st.FG = Theme.ActiveTab
			st.Bold = true
		}
		col += DrawString(s, rect.X+col, rect.Y, rect.W-col, t.bar.TabLabel(i), st.Apply())
		if col >= rect.W {
			break
		}
	}
}

// tabStart returns the column where tab i begins.
func (t *tabStrip) tabStart(i int) int {
	col := 0
	for j := range i {
		col += t.bar.TabWidth(j)
	}
	return col
}

func (t *tabStrip) OnMouseDown(x, y int) {
	i := t.bar.TabAt(float64(x))
	if i < 0 {
		return
	}
	title := t.bar.Titles()[i]
	p, _ := title.Owner.(*Panel)
	if title.Closable && x >= t.tabStart(i)+t.bar.TabWidth(i)-2 {
		t.dock.RemovePanel(p)
		if t.dock.OnClose != nil && p != nil {
			t.dock.OnClose(p)
		}
		return
	}
	t.dock.dock.SelectWidget(title.Owner)
}

// OnFocus moves focus into the current panel.
func (t *tabStrip) OnFocus() Element {
	if title := t.bar.CurrentTitle(); title != nil {
		if p, ok := title.Owner.(*Panel); ok && p.Content != nil {
			return p.Content.OnFocus()
		}
	}
	return nil
}

// handleElement draws a split handle and drags it.
type handleElement struct {
	BasicElement
	dock    *DockPanel
	handle  *layout.Handle
	hovered bool
	// press position inside the handle, kept so the grab point stays under
	// the pointer
	grabX, grabY int
	origin       Rect
}

func (e *handleElement) MinSize() (int, int) { return 1, 1 }

func (e *handleElement) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{Element: e, Rect: Rect{X: x, Y: y, W: w, H: h}}
}

func (e *handleElement) Render(s Screen, rect Rect, style Style) {
	st := style.Merge(Style{FG: Theme.Border, BG: Theme.Background})
	if e.hovered || e.dock.dragged == e.handle {
		st.FG = Theme.Handle
	}
	ch := vLine
	if e.handle.Orientation == layout.Vertical {
		ch = hLine
	}
	for x := rect.X; x < rect.X+rect.W; x++ {
		for y := rect.Y; y < rect.Y+rect.H; y++ {
			s.SetContent(x, y, ch, nil, st.Apply())
		}
	}
}

func (e *handleElement) OnMouseEnter() { e.hovered = true }
func (e *handleElement) OnMouseLeave() { e.hovered = false }

func (e *handleElement) OnMouseDown(x, y int) {
	e.dock.dragged = e.handle
	e.grabX, e.grabY = x, y
	e.origin = cells(e.handle.Rect)
}

func (e *handleElement) OnMouseMove(x, y int) {
	if e.dock.dragged != e.handle {
		return
	}
	// x, y are relative to the rect at press time
	left := float64(e.origin.X + x - e.grabX)
	top := float64(e.origin.Y + y - e.grabY)
	e.dock.dock.MoveHandle(e.handle, left, top)
}

func (e *handleElement) OnMouseUp(x, y int) {
	e.OnMouseMove(x, y)
	e.dock.dragged = nil
}
