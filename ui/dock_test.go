package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cansyan/dock/layout"
)

func newTestDock(t *testing.T) (*DockPanel, *Panel, *Panel) {
	t.Helper()
	d := NewDockPanel(1, zaptest.NewLogger(t))
	a := NewPanel("a", "A", NewText("alpha"))
	b := NewPanel("b", "B", NewText("beta"))
	require.NoError(t, d.AddPanel(a, layout.AddOptions{}))
	return d, a, b
}

func click(app *App, x, y int) {
	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func TestDockPanelSplitRender(t *testing.T) {
	d, a, b := newTestDock(t)
	require.NoError(t, d.AddPanel(b, layout.AddOptions{Mode: layout.SplitRight, Ref: a}))

	_, s := newTestApp(t, d, 41, 10)

	// 40 cells shared evenly, the handle in between
	assert.Equal(t, Rect{X: 0, Y: 1, W: 20, H: 9}, a.Bounds())
	assert.Equal(t, Rect{X: 21, Y: 1, W: 20, H: 9}, b.Bounds())
	assert.Equal(t, " A ", rowText(s, 0, 0, 3))
	assert.Equal(t, " B ", rowText(s, 0, 21, 24))
	assert.Equal(t, "alpha", rowText(s, 1, 0, 5))
	assert.Equal(t, "beta", rowText(s, 1, 21, 25))
	for y := range 10 {
		assert.Equal(t, vLine, runeAt(s, 20, y), "row %d", y)
	}
}

func TestDockPanelMinSize(t *testing.T) {
	d, a, b := newTestDock(t)
	require.NoError(t, d.AddPanel(b, layout.AddOptions{Mode: layout.SplitBottom, Ref: a}))

	w, h := d.MinSize()
	// widest of "alpha" and " A "; two tab bars, two text rows and a handle
	assert.Equal(t, 5, w)
	assert.Equal(t, 5, h)
}

func TestDockPanelSelectTab(t *testing.T) {
	d, a, b := newTestDock(t)
	require.NoError(t, d.AddPanel(b, layout.AddOptions{Mode: layout.TabAfter, Ref: a}))

	app, s := newTestApp(t, d, 20, 5)
	bar := d.DockLayout().FindTabBar(a)
	require.NotNil(t, bar)
	assert.Equal(t, 0, bar.CurrentIndex())
	assert.Equal(t, "alpha", rowText(s, 1, 0, 5))

	click(app, 4, 0) // " B " starts at column 3
	assert.Equal(t, 1, bar.CurrentIndex())
	assert.Equal(t, "beta", rowText(s, 1, 0, 4))
}

func TestDockPanelCloseTab(t *testing.T) {
	d, a, b := newTestDock(t)
	b.SetClosable(true)
	require.NoError(t, d.AddPanel(b, layout.AddOptions{Mode: layout.TabAfter, Ref: a}))

	var closed *Panel
	d.OnClose = func(p *Panel) { closed = p }
	app, s := newTestApp(t, d, 20, 5)
	assert.Equal(t, " B x ", rowText(s, 0, 3, 8))

	click(app, 4, 0) // label selects
	assert.Nil(t, closed)
	click(app, 6, 0) // the x closes
	assert.Same(t, b, closed)
	assert.Equal(t, []*Panel{a}, d.Panels())
	assert.False(t, d.DockLayout().Contains(b))
}

func TestDockPanelDragHandle(t *testing.T) {
	d, a, b := newTestDock(t)
	require.NoError(t, d.AddPanel(b, layout.AddOptions{Mode: layout.SplitRight, Ref: a}))
	app, s := newTestApp(t, d, 41, 10)
	require.Equal(t, 20, a.Bounds().W)

	app.HandleEvent(tcell.NewEventMouse(20, 5, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(25, 5, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 25, a.Bounds().W)
	assert.Equal(t, 15, b.Bounds().W)

	app.HandleEvent(tcell.NewEventMouse(10, 6, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(10, 6, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, 10, a.Bounds().W)
	assert.Equal(t, 30, b.Bounds().W)
	assert.Equal(t, vLine, runeAt(s, 10, 0))
	assert.Nil(t, d.dragged)
}

func TestDockPanelLayoutRoundTrip(t *testing.T) {
	d, a, b := newTestDock(t)
	c := NewPanel("c", "C", NewText("gamma"))
	require.NoError(t, d.AddPanel(b, layout.AddOptions{Mode: layout.SplitBottom, Ref: a}))
	require.NoError(t, d.AddPanel(c, layout.AddOptions{Mode: layout.TabBefore, Ref: b}))
	newTestApp(t, d, 30, 20)

	saved, err := d.MarshalLayout()
	require.NoError(t, err)

	other := NewDockPanel(1, zaptest.NewLogger(t))
	require.NoError(t, other.UnmarshalLayout(saved, []*Panel{a, b, c}, true))
	assert.Equal(t, d.Panels(), other.Panels())

	again, err := other.MarshalLayout()
	require.NoError(t, err)
	assert.JSONEq(t, string(saved), string(again))
}

func TestDockPanelUnmarshalStrict(t *testing.T) {
	d, a, _ := newTestDock(t)
	saved := []byte(`{"main": {"type": "tab-area", "widgets": ["a", "zz"], "currentIndex": 0}}`)

	err := d.UnmarshalLayout(saved, []*Panel{a}, true)
	require.ErrorIs(t, err, layout.ErrUnknownWidget)

	require.NoError(t, d.UnmarshalLayout(saved, []*Panel{a}, false))
	assert.Equal(t, []*Panel{a}, d.Panels())
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, NewBreakersTheme(), ThemeByName("light"))
	assert.Equal(t, NewMarianaTheme(), ThemeByName("Mariana"))

	t.Setenv("COLORFGBG", "0;15")
	assert.Equal(t, NewBreakersTheme(), ThemeByName(""))
	t.Setenv("COLORFGBG", "15;0")
	assert.Equal(t, NewMarianaTheme(), ThemeByName(""))
}

func TestDockPanelRefresh(t *testing.T) {
	d, a, _ := newTestDock(t)
	w, h := d.MinSize()
	assert.Equal(t, 5, w)
	assert.Equal(t, 2, h)

	a.Content.(*Text).SetText("alpha\nbeta\ngamma")
	_, h = d.MinSize()
	assert.Equal(t, 2, h, "content changes wait for Refresh")

	d.Refresh()
	w, h = d.MinSize()
	assert.Equal(t, 5, w)
	assert.Equal(t, 4, h)
}
