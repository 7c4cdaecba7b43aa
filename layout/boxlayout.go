package layout

import (
	"fmt"
	"iter"
	"slices"
)

// Direction is the order in which a BoxLayout places its children.
type Direction uint8

const (
	LeftToRight Direction = iota + 1
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) horizontal() bool {
	switch d {
	case LeftToRight, RightToLeft:
		return true
	case TopToBottom, BottomToTop:
		return false
	default:
		panic(fmt.Sprintf("layout: invalid direction %d", uint8(d)))
	}
}

// Alignment positions the children when they cannot fill the main axis.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	// AlignJustify spreads the leftover space between the children.
	AlignJustify
)

// BoxOptions are the per-child sizing inputs of a BoxLayout.
type BoxOptions struct {
	// Stretch weighs the share of leftover space. Zero only resizes after
	// every stretchable child reached its limit.
	Stretch int
	// Basis is the preferred size along the main axis.
	Basis float64
}

type boxChild struct {
	item *layoutItem
	opts BoxOptions
}

// BoxLayout arranges surfaces in a single row or column.
type BoxLayout struct {
	Direction Direction
	Alignment Alignment
	Spacing   float64

	children []boxChild
	sizers   []Sizer
}

// NewBoxLayout returns an empty layout placing children in direction dir.
func NewBoxLayout(dir Direction) *BoxLayout {
	return &BoxLayout{Direction: dir}
}

// Len returns the number of children.
func (b *BoxLayout) Len() int { return len(b.children) }

// Add appends s.
func (b *BoxLayout) Add(s Surface, opts BoxOptions) {
	b.Insert(len(b.children), s, opts)
}

// Insert puts s at index i, moving it if it is already a child.
func (b *BoxLayout) Insert(i int, s Surface, opts BoxOptions) {
	if j := b.indexOf(s); j >= 0 {
		b.removeAt(j)
		if j < i {
			i--
		}
	}
	i = max(0, min(i, len(b.children)))
	b.children = slices.Insert(b.children, i, boxChild{item: newLayoutItem(s), opts: opts})
	b.sizers = slices.Insert(b.sizers, i, NewSizer(0))
}

// Remove drops s if it is a child.
func (b *BoxLayout) Remove(s Surface) {
	if i := b.indexOf(s); i >= 0 {
		b.removeAt(i)
	}
}

// SetOptions changes the sizing inputs of s.
func (b *BoxLayout) SetOptions(s Surface, opts BoxOptions) {
	if i := b.indexOf(s); i >= 0 {
		b.children[i].opts = opts
	}
}

func (b *BoxLayout) indexOf(s Surface) int {
	for i, c := range b.children {
		if c.item.surface == s {
			return i
		}
	}
	return -1
}

func (b *BoxLayout) removeAt(i int) {
	b.children = slices.Delete(b.children, i, i+1)
	b.sizers = slices.Delete(b.sizers, i, i+1)
}

// Surfaces yields the children in order.
func (b *BoxLayout) Surfaces() iter.Seq[Surface] {
	return func(yield func(Surface) bool) {
		for _, c := range b.children {
			if !yield(c.item.surface) {
				return
			}
		}
	}
}

// Fit measures every child and returns the limits of the whole box.
func (b *BoxLayout) Fit() Limits {
	horizontal := b.Direction.horizontal()
	fixed := float64(max(0, len(b.children)-1)) * b.Spacing
	l := Unbounded()
	if horizontal {
		l.MinWidth, l.MaxWidth = fixed, fixed
	} else {
		l.MinHeight, l.MaxHeight = fixed, fixed
	}
	for i, c := range b.children {
		cl := c.item.fit()
		s := &b.sizers[i]
		s.SizeHint = c.opts.Basis
		s.Stretch = c.opts.Stretch
		if horizontal {
			s.MinSize, s.MaxSize = cl.MinWidth, cl.MaxWidth
			l.MinWidth += cl.MinWidth
			l.MaxWidth += cl.MaxWidth
			l.MinHeight = max(l.MinHeight, cl.MinHeight)
			l.MaxHeight = min(l.MaxHeight, cl.MaxHeight)
		} else {
			s.MinSize, s.MaxSize = cl.MinHeight, cl.MaxHeight
			l.MinHeight += cl.MinHeight
			l.MaxHeight += cl.MaxHeight
			l.MinWidth = max(l.MinWidth, cl.MinWidth)
			l.MaxWidth = min(l.MaxWidth, cl.MaxWidth)
		}
	}
	l.MaxWidth = max(l.MaxWidth, l.MinWidth)
	l.MaxHeight = max(l.MaxHeight, l.MinHeight)
	return l
}

// Update places the children inside r. Fit must have run since the children
// last changed.
func (b *BoxLayout) Update(r Rect) {
	n := len(b.children)
	if n == 0 {
		return
	}
	horizontal := b.Direction.horizontal()
	fixed := float64(n-1) * b.Spacing
	span := r.Height
	if horizontal {
		span = r.Width
	}
	delta := Calc(b.sizers, max(0, span-fixed))

	offset, extra := 0.0, 0.0
	if delta > 0 {
		switch b.Alignment {
		case AlignStart:
		case AlignCenter:
			offset = delta / 2
		case AlignEnd:
			offset = delta
		case AlignJustify:
			extra = delta / float64(n)
			offset = extra / 2
		default:
			panic(fmt.Sprintf("layout: invalid alignment %d", uint8(b.Alignment)))
		}
	}

	var pos float64
	switch b.Direction {
	case LeftToRight:
		pos = r.X + offset
	case TopToBottom:
		pos = r.Y + offset
	case RightToLeft:
		pos = r.X + r.Width - offset
	case BottomToTop:
		pos = r.Y + r.Height - offset
	}
	for i, c := range b.children {
		size := b.sizers[i].Size
		switch b.Direction {
		case LeftToRight:
			c.item.update(Rect{X: pos, Y: r.Y, Width: size, Height: r.Height})
			pos += size + b.Spacing + extra
		case TopToBottom:
			c.item.update(Rect{X: r.X, Y: pos, Width: r.Width, Height: size})
			pos += size + b.Spacing + extra
		case RightToLeft:
			c.item.update(Rect{X: pos - size, Y: r.Y, Width: size, Height: r.Height})
			pos -= size + b.Spacing + extra
		case BottomToTop:
			c.item.update(Rect{X: r.X, Y: pos - size, Width: r.Width, Height: size})
			pos -= size + b.Spacing + extra
		}
	}
}

// Measure lets a BoxLayout nest inside another layout.
func (b *BoxLayout) Measure() Limits { return b.Fit() }

// Place lets a BoxLayout nest inside another layout.
func (b *BoxLayout) Place(r Rect) { b.Update(r) }

var (
	_ Layout  = (*BoxLayout)(nil)
	_ Surface = (*BoxLayout)(nil)
)
