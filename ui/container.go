package ui

import (
	"github.com/cansyan/dock/layout"
)

// stack arranges children along one axis through a layout.BoxLayout.
// Itself does not apply any visual styling like background colors, borders,
// it is completely transparent and invisible
type stack struct {
	BasicElement
	box      *layout.BoxLayout
	children []*elementSurface
}

func newStack(dir layout.Direction, children []Element) *stack {
	s := &stack{box: layout.NewBoxLayout(dir)}
	for _, c := range children {
		s.Append(c)
	}
	return s
}

// VStack arranges children vertically.
func VStack(children ...Element) *stack {
	return newStack(layout.TopToBottom, children)
}

// HStack arranges children horizontally.
func HStack(children ...Element) *stack {
	return newStack(layout.LeftToRight, children)
}

func (s *stack) horizontal() bool { return s.box.Direction == layout.LeftToRight }

// Append adds e after the existing children.
func (s *stack) Append(e Element) *stack {
	es := &elementSurface{horizontal: s.horizontal()}
	if f, ok := e.(*fill); ok {
		es.grow = true
		e = f.child
	}
	if d, ok := e.(*divider); ok {
		d.vertical = s.horizontal()
	}
	es.elem = e
	opts := layout.BoxOptions{}
	if es.grow {
		opts.Stretch = 1
	}
	s.children = append(s.children, es)
	s.box.Add(es, opts)
	return s
}

// Spacing sets the spacing (in cells) between child elements.
func (s *stack) Spacing(p int) *stack {
	s.box.Spacing = float64(p)
	return s
}

func (s *stack) MinSize() (int, int) {
	l := s.box.Fit()
	return ceil(l.MinWidth), ceil(l.MinHeight)
}

func (s *stack) Layout(x, y, w, h int) *LayoutNode {
	n := &LayoutNode{
		Element: s,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
	s.box.Fit()
	s.box.Update(layout.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)})
	for _, c := range s.children {
		r := cells(c.rect)
		// clip to the stack when the children do not fit
		r.W = max(0, min(r.W, x+w-r.X))
		r.H = max(0, min(r.H, y+h-r.Y))
		if r.W > 0 && r.H > 0 {
			if child := c.elem.Layout(r.X, r.Y, r.W, r.H); child != nil {
				n.Children = append(n.Children, child)
			}
		}
	}
	return n
}

func (s *stack) Render(Screen, Rect, Style) {
	// do nothing, children are rendered in drawTree()
}

type fill struct {
	BasicElement
	child Element
}

// Fill expands its child to fill available space.
// Should be used inside HStack or VStack.
func Fill(child Element) Element {
	return &fill{child: child}
}

func (f *fill) MinSize() (int, int) { return f.child.MinSize() }
func (f *fill) Layout(x, y, w, h int) *LayoutNode {
	return f.child.Layout(x, y, w, h)
}
func (f *fill) Render(Screen, Rect, Style) {}

type divider struct {
	BasicElement
	vertical bool
	style    Style
}

// Divider creates a horizontal or vertical divider line.
// Should be used inside HStack or VStack.
func Divider() Element {
	return &divider{style: Style{FG: Theme.Border, BG: Theme.Background}}
}

func (d *divider) MinSize() (w, h int) { return 1, 1 }
func (d *divider) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{
		Element: d,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
}
func (d *divider) Render(s Screen, rect Rect, style Style) {
	st := style.Merge(d.style).Apply()
	if !d.vertical {
		for i := range rect.W {
			s.SetContent(rect.X+i, rect.Y+rect.H-1, hLine, nil, st)
		}
	} else {
		for i := range rect.H {
			s.SetContent(rect.X+rect.W-1, rect.Y+i, vLine, nil, st)
		}
	}
}

type padding struct {
	BasicElement
	child                    Element
	top, right, bottom, left int
}

// PaddingH creates a layout element that adds horizontal padding around its child.
func PaddingH(child Element, p int) Element {
	return &padding{child: child, right: p, left: p}
}

// PaddingV creates a layout element that adds vertical padding around its child.
func PaddingV(child Element, p int) Element {
	return &padding{child: child, top: p, bottom: p}
}

func (p *padding) MinSize() (w, h int) {
	cw, ch := p.child.MinSize()
	return cw + p.left + p.right, ch + p.top + p.bottom
}

func (p *padding) Layout(x, y, w, h int) *LayoutNode {
	// Compute inner rectangle after padding
	innerW := max(w-p.left-p.right, 0)
	innerH := max(h-p.top-p.bottom, 0)
	return &LayoutNode{
		Element: p,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
		Children: []*LayoutNode{
			p.child.Layout(x+p.left, y+p.top, innerW, innerH),
		},
	}
}

func (p *padding) Render(Screen, Rect, Style) {
	// do nothing, child is rendered in drawTree()
}

const (
	hLine = '─'
	vLine = '│'
)
