package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Button struct {
	BasicElement
	Label   string
	OnClick func()
	style   Style
	width   int
	hovered bool
	pressed bool
}

// NewButton creates a new button element with the given label.
func NewButton(label string) *Button {
	return &Button{Label: label, style: DefaultStyle}
}

func (b *Button) Foreground(c string) *Button {
	b.style.FG = tcell.GetColor(c)
	return b
}

func (b *Button) MinSize() (int, int) { return runewidth.StringWidth(b.Label) + 2, 1 }

func (b *Button) Layout(x, y, w, h int) *LayoutNode {
	b.width = w
	return &LayoutNode{
		Element: b,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
}

func (b *Button) Render(s Screen, rect Rect, style Style) {
	st := style.Merge(b.style)
	if b.hovered {
		st.Bold = true
	}
	if b.pressed {
		st.Reversed = true
	}
	DrawString(s, rect.X, rect.Y, rect.W, " "+b.Label+" ", st.Apply())
}

func (b *Button) OnMouseEnter() { b.hovered = true }

func (b *Button) OnMouseLeave() {
	b.hovered = false
	b.pressed = false // cancel
}

func (b *Button) OnMouseDown(x, y int) { b.pressed = true }

// OnMouseUp clicks when the button is released over itself.
func (b *Button) OnMouseUp(x, y int) {
	if b.pressed && y == 0 && x >= 0 && x < b.width && b.OnClick != nil {
		b.OnClick()
	}
	b.pressed = false
}

type ListItem struct {
	Text    string
	OnClick func()
}

// List shows one item per row. Clicking a row selects it and runs its
// OnClick.
type List struct {
	BasicElement
	items       []ListItem
	visible     []int // indexes into items that pass the filter
	selected    int   // -1 means nothing selected, changes only on click
	style       Style
	selectStyle Style
	pressed     bool
}

func NewList() *List {
	return &List{
		selected:    -1,
		style:       DefaultStyle,
		selectStyle: Style{Reversed: true},
	}
}

func (l *List) Append(text string, onClick func()) *List {
	l.items = append(l.items, ListItem{Text: text, OnClick: onClick})
	l.visible = append(l.visible, len(l.items)-1)
	return l
}

// Filter shows only the items containing q, ignoring case. The selection
// is cleared when its item is hidden.
func (l *List) Filter(q string) {
	q = strings.ToLower(q)
	l.visible = l.visible[:0]
	for i, it := range l.items {
		if strings.Contains(strings.ToLower(it.Text), q) {
			l.visible = append(l.visible, i)
		}
	}
	if !slices.Contains(l.visible, l.selected) {
		l.selected = -1
	}
}

// Visible returns the texts of the rows currently shown.
func (l *List) Visible() []string {
	out := make([]string, len(l.visible))
	for i, idx := range l.visible {
		out[i] = l.items[idx].Text
	}
	return out
}

// Selected returns the text of the selected item, or "".
func (l *List) Selected() string {
	if l.selected < 0 {
		return ""
	}
	return l.items[l.selected].Text
}

func (l *List) MinSize() (int, int) {
	maxW := 10
	for _, it := range l.items {
		if w := runewidth.StringWidth(it.Text); w > maxW {
			maxW = w
		}
	}
	return maxW + 2, len(l.items) // a bit of padding + one row per item
}

func (l *List) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{
		Element: l,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
}

func (l *List) Render(s Screen, rect Rect, style Style) {
	base := style.Merge(l.style)
	for row, idx := range l.visible {
		if row >= rect.H {
			break
		}
		st := base
		if idx == l.selected {
			st = st.Merge(l.selectStyle)
		}
		label := fmt.Sprintf(" %s ", l.items[idx].Text)
		if runewidth.StringWidth(label) > rect.W {
			label = runewidth.Truncate(label, rect.W, "…")
		}
		DrawString(s, rect.X, rect.Y+row, rect.W, label, st.Apply())
	}
}

func (l *List) OnMouseDown(x, y int) { l.pressed = true }

func (l *List) OnMouseUp(x, y int) {
	if !l.pressed {
		return
	}
	l.pressed = false
	if y < 0 || y >= len(l.visible) {
		return
	}
	l.selected = l.visible[y]
	if it := l.items[l.selected]; it.OnClick != nil {
		it.OnClick()
	}
}

// TextField is a single-line editable text input field.
type TextField struct {
	BasicElement
	text     []rune
	cursor   int
	focused  bool
	style    Style
	onChange func(string)
}

func NewTextField() *TextField {
	return &TextField{style: DefaultStyle}
}

func (t *TextField) Text() string { return string(t.text) }

func (t *TextField) SetText(s string) {
	t.text = []rune(s)
	t.cursor = len(t.text)
	t.changed()
}

func (t *TextField) OnChange(fn func(string)) *TextField {
	t.onChange = fn
	return t
}

func (t *TextField) changed() {
	if t.onChange != nil {
		t.onChange(string(t.text))
	}
}

func (t *TextField) MinSize() (int, int) { return 10, 1 }

func (t *TextField) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{
		Element: t,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
	}
}

func (t *TextField) Render(s Screen, rect Rect, style Style) {
	st := style.Merge(t.style)
	if !t.focused && len(t.text) == 0 {
		st.Dim = true
		DrawString(s, rect.X, rect.Y, rect.W, "filter", st.Apply())
		return
	}
	DrawString(s, rect.X, rect.Y, rect.W, string(t.text), st.Apply())
	if col := runewidth.StringWidth(string(t.text[:t.cursor])); t.focused && col < rect.W {
		s.ShowCursor(rect.X+col, rect.Y)
	}
}

func (t *TextField) OnFocus() Element { t.focused = true; return t }
func (t *TextField) OnBlur()          { t.focused = false }

func (t *TextField) HandleKey(ev *tcell.EventKey) {
	if !t.focused {
		return
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
	case tcell.KeyRight:
		if t.cursor < len(t.text) {
			t.cursor++
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.cursor > 0 {
			t.text = slices.Delete(t.text, t.cursor-1, t.cursor)
			t.cursor--
			t.changed()
		}
	case tcell.KeyDelete:
		if t.cursor < len(t.text) {
			t.text = slices.Delete(t.text, t.cursor, t.cursor+1)
			t.changed()
		}
	case tcell.KeyRune:
		t.text = slices.Insert(t.text, t.cursor, ev.Rune())
		t.cursor++
		t.changed()
	}
}

func (t *TextField) OnMouseDown(x, y int) {
	t.cursor = max(0, min(x, len(t.text)))
}

type border struct {
	BasicElement
	child Element
	style Style
}

// Border draws a box around its child.
func Border(child Element) Element {
	return &border{child: child, style: Style{FG: Theme.Border, BG: Theme.Background}}
}

func (b *border) MinSize() (w, h int) {
	cw, ch := b.child.MinSize()
	return cw + 2, ch + 2
}

func (b *border) Layout(x, y, w, h int) *LayoutNode {
	return &LayoutNode{
		Element: b,
		Rect:    Rect{X: x, Y: y, W: w, H: h},
		Children: []*LayoutNode{
			b.child.Layout(x+1, y+1, max(w-2, 0), max(h-2, 0)),
		},
	}
}

func (b *border) Render(s Screen, rect Rect, style Style) {
	if rect.W < 2 || rect.H < 2 {
		return
	}
	st := style.Merge(b.style).Apply()
	ResetRect(s, rect, style.Merge(b.style))
	right, bottom := rect.X+rect.W-1, rect.Y+rect.H-1
	for x := rect.X + 1; x < right; x++ {
		s.SetContent(x, rect.Y, hLine, nil, st)
		s.SetContent(x, bottom, hLine, nil, st)
	}
	for y := rect.Y + 1; y < bottom; y++ {
		s.SetContent(rect.X, y, vLine, nil, st)
		s.SetContent(right, y, vLine, nil, st)
	}
	s.SetContent(rect.X, rect.Y, '┌', nil, st)
	s.SetContent(right, rect.Y, '┐', nil, st)
	s.SetContent(rect.X, bottom, '└', nil, st)
	s.SetContent(right, bottom, '┘', nil, st)
}

func (b *border) OnFocus() Element { return b.child.OnFocus() }

type empty struct {
	BasicElement
}

func (e *empty) MinSize() (int, int)               { return 0, 0 }
func (e *empty) Layout(x, y, w, h int) *LayoutNode { return nil }
func (e *empty) Render(Screen, Rect, Style)        {}

// Spacer fills the remaining space between siblings inside an HStack or VStack.
func Spacer() Element {
	return Fill(new(empty))
}
