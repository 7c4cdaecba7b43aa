package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k tcell.Key, r rune) *tcell.EventKey { return tcell.NewEventKey(k, r, tcell.ModNone) }

func TestButtonClick(t *testing.T) {
	clicks := 0
	b := NewButton("Save")
	b.OnClick = func() { clicks++ }
	app, s := newTestApp(t, VStack(b), 10, 3)

	assert.Equal(t, " Save ", rowText(s, 0, 0, 6))
	click(app, 1, 0)
	assert.Equal(t, 1, clicks)

	// released below the button
	app.HandleEvent(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(1, 2, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, 1, clicks)
}

func TestListSelectAndFilter(t *testing.T) {
	var clicked []string
	l := NewList()
	for _, name := range []string{"main.go", "go.mod", "ui/dock.go"} {
		l.Append(name, func() { clicked = append(clicked, name) })
	}
	w, h := l.MinSize()
	assert.Equal(t, 12, w)
	assert.Equal(t, 3, h)

	app, s := newTestApp(t, l, 20, 5)
	assert.Equal(t, " main.go ", rowText(s, 0, 0, 9))
	assert.Equal(t, " go.mod ", rowText(s, 1, 0, 8))

	click(app, 2, 1)
	assert.Equal(t, []string{"go.mod"}, clicked)
	assert.Equal(t, "go.mod", l.Selected())

	l.Filter("MOD")
	assert.Equal(t, []string{"go.mod"}, l.Visible())
	assert.Equal(t, "go.mod", l.Selected())

	l.Filter("dock")
	assert.Equal(t, []string{"ui/dock.go"}, l.Visible())
	assert.Empty(t, l.Selected())

	app.draw()
	assert.Equal(t, " ui/dock.go ", rowText(s, 0, 0, 12))
	assert.Equal(t, "     ", rowText(s, 1, 0, 5))

	// rows below the visible items do nothing
	click(app, 2, 3)
	assert.Equal(t, []string{"go.mod"}, clicked)
	click(app, 2, 0)
	assert.Equal(t, []string{"go.mod", "ui/dock.go"}, clicked)
}

func TestListTruncates(t *testing.T) {
	l := NewList().Append("ui/dock.go", nil)
	_, s := newTestApp(t, l, 6, 1)
	assert.Equal(t, " ui/d…", rowText(s, 0, 0, 6))
}

func TestTextFieldEditing(t *testing.T) {
	var changes []string
	tf := NewTextField().OnChange(func(s string) { changes = append(changes, s) })
	app, s := newTestApp(t, tf, 12, 1)
	assert.Equal(t, "filter", rowText(s, 0, 0, 6))

	// keys are ignored until the field has focus
	app.HandleEvent(key(tcell.KeyRune, 'z'))
	assert.Empty(t, tf.Text())

	app.Focus(tf)
	for _, ev := range []*tcell.EventKey{
		key(tcell.KeyRune, 'a'),
		key(tcell.KeyRune, 'b'),
		key(tcell.KeyLeft, 0),
		key(tcell.KeyBackspace2, 0),
		key(tcell.KeyRune, 'x'),
		key(tcell.KeyDelete, 0),
	} {
		app.HandleEvent(ev)
	}
	assert.Equal(t, "x", tf.Text())
	assert.Equal(t, []string{"a", "ab", "b", "xb", "x"}, changes)
	assert.Equal(t, "x     ", rowText(s, 0, 0, 6))

	tf.SetText("dock")
	assert.Equal(t, "dock", changes[len(changes)-1])
	tf.OnMouseDown(1, 0)
	app.HandleEvent(key(tcell.KeyRune, 'o'))
	assert.Equal(t, "doock", tf.Text())
}

func TestBorder(t *testing.T) {
	b := Border(NewText("hi"))
	w, h := b.MinSize()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	_, s := newTestApp(t, b, 6, 4)
	assert.Equal(t, "┌────┐", rowText(s, 0, 0, 6))
	assert.Equal(t, "│hi  │", rowText(s, 1, 0, 6))
	assert.Equal(t, "│    │", rowText(s, 2, 0, 6))
	assert.Equal(t, "└────┘", rowText(s, 3, 0, 6))
}

func TestSpacer(t *testing.T) {
	row := HStack(NewText("a"), Spacer(), NewText("b"))
	w, _ := row.MinSize()
	assert.Equal(t, 2, w)

	n := row.Layout(0, 0, 10, 1)
	require.Len(t, n.Children, 2)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 1, H: 1}, n.Children[0].Rect)
	assert.Equal(t, Rect{X: 9, Y: 0, W: 1, H: 1}, n.Children[1].Rect)
}

func TestAppOverlay(t *testing.T) {
	clicks := 0
	under := NewButton("under")
	under.OnClick = func() { clicks++ }
	app, s := newTestApp(t, under, 20, 5)

	app.ShowOverlay(Border(NewText("hi")))
	app.draw()
	// 4x3 centered in 20x5
	assert.Equal(t, '┌', runeAt(s, 8, 1))
	assert.Equal(t, "hi", rowText(s, 2, 9, 11))

	// Esc closes the overlay instead of quitting
	assert.False(t, app.HandleEvent(key(tcell.KeyEscape, 0)))
	assert.False(t, app.OverlayShown())

	app.ShowOverlay(Border(NewText("hi")))
	app.draw()
	click(app, 9, 2)
	assert.True(t, app.OverlayShown())

	// a press outside hides it and does not reach the root
	click(app, 0, 0)
	assert.False(t, app.OverlayShown())
	assert.Equal(t, 0, clicks)

	click(app, 0, 0)
	assert.Equal(t, 1, clicks)
	assert.True(t, app.HandleEvent(key(tcell.KeyEscape, 0)))
}
