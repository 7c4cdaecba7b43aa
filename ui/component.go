package ui

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/cansyan/dock/layout"
)

type Text struct {
	BasicElement
	content string
	style   Style
}

func NewText(c string) *Text { return &Text{content: c, style: DefaultStyle} }

func (t *Text) SetText(c string) { t.content = c }
func (t *Text) String() string   { return t.content }

func (t *Text) Bold() *Text { t.style.Bold = true; return t }
func (t *Text) Foreground(c string) *Text {
	t.style.FG = tcell.GetColor(c)
	return t
}
func (t *Text) Background(c string) *Text {
	t.style.BG = tcell.GetColor(c)
	return t
}

func (t *Text) lines() []string {
	return strings.Split(t.content, "\n")
}

func (t *Text) MinSize() (int, int) {
	lines := t.lines()
	maxW := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > maxW {
			maxW = w
		}
	}
	return maxW, len(lines)
}

func (t *Text) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{
		Element: t,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
}

func (t *Text) Render(s Screen, rect Rect, style Style) {
	st := style.Merge(t.style).Apply()
	for i, line := range t.lines() {
		if i >= rect.H {
			break
		}
		DrawString(s, rect.X, rect.Y+i, rect.W, line, st)
	}
}

// DrawString draws str at (x, y), clipped to w cells.
func DrawString(s Screen, x, y, w int, str string, st tcell.Style) int {
	col := 0
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if col+rw > w {
			break
		}
		s.SetContent(x+col, y, r, nil, st)
		col += rw
	}
	return col
}

// Panel is a dockable element. Its title is shown in the tab bar of the dock
// area holding it.
type Panel struct {
	ID      string
	Content Element

	title layout.Title
	rect  layout.Rect
	// Resizes counts the placements that changed the panel size.
	Resizes int
}

// NewPanel creates a panel showing content under the given tab label.
func NewPanel(id, label string, content Element) *Panel {
	p := &Panel{ID: id, Content: content}
	p.title = layout.Title{Label: label, Owner: p}
	return p
}

// Title implements layout.Widget.
func (p *Panel) Title() *layout.Title { return &p.title }

// SetClosable shows a close button on the panel's tab.
func (p *Panel) SetClosable(c bool) *Panel {
	p.title.Closable = c
	return p
}

// Measure implements layout.Surface from the content's minimum size.
func (p *Panel) Measure() layout.Limits {
	l := layout.Unbounded()
	if p.Content != nil {
		w, h := p.Content.MinSize()
		l.MinWidth, l.MinHeight = float64(w), float64(h)
	}
	return l
}

// Place implements layout.Surface.
func (p *Panel) Place(r layout.Rect) {
	if r.Width != p.rect.Width || r.Height != p.rect.Height {
		p.Resizes++
	}
	p.rect = r
}

// Rect returns the rectangle of the last placement.
func (p *Panel) Rect() layout.Rect { return p.rect }

// Bounds returns the panel rectangle in cells as of the last placement.
func (p *Panel) Bounds() Rect { return cells(p.rect) }

func (p *Panel) layoutContent() *LayoutNode {
	if p.Content == nil {
		return nil
	}
	r := p.Bounds()
	return p.Content.Layout(r.X, r.Y, r.W, r.H)
}

var _ layout.Widget = (*Panel)(nil)

// elementSurface adapts an element to layout.Surface for stacks.
type elementSurface struct {
	elem       Element
	horizontal bool // main axis of the owning stack
	grow       bool
	rect       layout.Rect
}

func (e *elementSurface) Measure() layout.Limits {
	w, h := e.elem.MinSize()
	l := layout.Unbounded()
	l.MinWidth, l.MinHeight = float64(w), float64(h)
	if !e.grow {
		if e.horizontal {
			l.MaxWidth = l.MinWidth
		} else {
			l.MaxHeight = l.MinHeight
		}
	}
	return l
}

func (e *elementSurface) Place(r layout.Rect) { e.rect = r }

// ceil rounds a minimum size up to whole cells.
func ceil(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return int(math.Ceil(v))
}
