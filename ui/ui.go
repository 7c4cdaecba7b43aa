// Package ui provides a lightweight terminal application shell built on top of tcell.
// It offers an event–state–render pipeline with stacks and a dock panel.
package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/cansyan/dock/layout"
)

type Screen = tcell.Screen
type EventKey = tcell.EventKey
type EventMouse = tcell.EventMouse
type EventResize = tcell.EventResize
type Color = tcell.Color

// Element is the interface implemented by all UI elements.
type Element interface {
	MinSize() (w, h int)
	// Layout computes the layout node for this element given the position and size.
	// Elements inside the node will be rendered by drawTree()
	Layout(x, y, w, h int) *LayoutNode
	// Render draws the element onto the screen within the given rectangle and style.
	Render(s Screen, rect Rect, style Style)

	OnMouseEnter()
	OnMouseLeave()
	OnMouseDown(x, y int) // x, y is relative to element
	OnMouseMove(x, y int) // primary button held; relative to the rect at press time
	OnMouseUp(x, y int)   // x, y is relative to element
	OnMouseWheel(dy int)  // vertical scroll delta (dy > 0 means scroll down)
	OnFocus() Element     // returns the element that should receive focus, can be self or child
	OnBlur()
}

type LayoutNode struct {
	Element  Element
	Rect     Rect
	Children []*LayoutNode
}

type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// cells rounds a layout rectangle to terminal cells. Edges are rounded
// separately so adjacent rectangles neither overlap nor leave gaps.
func cells(r layout.Rect) Rect {
	x0, y0 := round(r.X), round(r.Y)
	x1, y1 := round(r.X+r.Width), round(r.Y+r.Height)
	return Rect{X: x0, Y: y0, W: max(0, x1-x0), H: max(0, y1-y0)}
}

func round(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

// BasicElement provides default no-op implementations for Element methods.
type BasicElement struct{}

func (b *BasicElement) MinSize() (int, int)                     { panic("not implemented") }
func (b *BasicElement) Layout(x, y, w, h int) *LayoutNode       { panic("not implemented") }
func (b *BasicElement) Render(s Screen, rect Rect, style Style) { panic("not implemented") }
func (b *BasicElement) OnMouseEnter()                           {}
func (b *BasicElement) OnMouseLeave()                           {}
func (b *BasicElement) OnMouseDown(x, y int)                    {}
func (b *BasicElement) OnMouseMove(x, y int)                    {}
func (b *BasicElement) OnMouseUp(x, y int)                      {}
func (b *BasicElement) OnMouseWheel(dy int)                     {}
func (b *BasicElement) OnFocus() Element                        { return nil }
func (b *BasicElement) OnBlur()                                 {}

// KeyHandler is implemented by elements that can handle key events.
type KeyHandler interface {
	HandleKey(ev *tcell.EventKey)
}

type Style struct {
	FG        Color
	BG        Color
	Reversed  bool
	Bold      bool
	Italic    bool
	Underline bool
	Dim       bool
}

var DefaultStyle = Style{FG: tcell.ColorDefault, BG: tcell.ColorDefault}

func (s Style) Apply() tcell.Style {
	st := tcell.StyleDefault
	if s.FG != tcell.ColorDefault {
		st = st.Foreground(s.FG)
	}
	if s.BG != tcell.ColorDefault {
		st = st.Background(s.BG)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reversed {
		st = st.Reverse(true)
	}
	if s.Dim {
		st = st.Dim(true)
	}
	return st
}

// Merge returns a new Style by applying the child style's non-default attributes
// over the receiver (parent) style.
func (s Style) Merge(child Style) Style {
	if child.FG == tcell.ColorDefault {
		child.FG = s.FG
	}
	if child.BG == tcell.ColorDefault {
		child.BG = s.BG
	}
	child.Bold = child.Bold || s.Bold
	child.Italic = child.Italic || s.Italic
	child.Reversed = child.Reversed || s.Reversed
	child.Underline = child.Underline || s.Underline
	child.Dim = child.Dim || s.Dim
	return child
}

// ---------------------------------------------------------------------
// APP RUNNER
// ---------------------------------------------------------------------

type App struct {
	Root    Element
	Screen  Screen
	QuitKey tcell.Key // key to quit the app, default is Escape
	// OnKey sees every key before the focused element. Returning true
	// consumes the key.
	OnKey func(ev *tcell.EventKey) bool

	logger    *zap.Logger
	focused   Element
	hovered   Element
	pressed   Element
	pressRect Rect
	done      chan struct{}
	tree      *LayoutNode // layout tree

	overlay     *overlay
	overlayTree *LayoutNode
}

// NewApp creates an app drawing root on screen. A nil screen uses the
// terminal.
func NewApp(root Element, screen Screen, logger *zap.Logger) (*App, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		screen = s
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Root:    root,
		Screen:  screen,
		QuitKey: tcell.KeyEscape,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

func drawTree(node *LayoutNode, s Screen, style Style) {
	if node == nil {
		return
	}

	node.Element.Render(s, node.Rect, style)
	for _, child := range node.Children {
		drawTree(child, s, style)
	}
}

// Render build layout tree and render
func (a *App) Render() {
	w, h := a.Screen.Size()
	a.tree = a.Root.Layout(0, 0, w, h)
	drawTree(a.tree, a.Screen, DefaultStyle)
	a.overlayTree = nil
	if a.overlay != nil {
		a.overlayTree = a.overlay.Layout(0, 0, w, h)
		drawTree(a.overlayTree, a.Screen, DefaultStyle)
	}
}

// ShowOverlay draws e centered above the root until HideOverlay. Mouse
// events go to the overlay only, and a press outside of it hides it.
func (a *App) ShowOverlay(e Element) {
	a.overlay = &overlay{child: e}
	a.Focus(e)
}

func (a *App) HideOverlay() {
	a.overlay = nil
	a.overlayTree = nil
}

// OverlayShown reports whether an overlay is shown.
func (a *App) OverlayShown() bool { return a.overlay != nil }

// overlay centers its child in the area it is given.
type overlay struct {
	BasicElement
	child Element
}

func (o *overlay) MinSize() (int, int) { return o.child.MinSize() }

func (o *overlay) Layout(x, y, w, h int) *LayoutNode {
	cw, ch := o.child.MinSize()
	cw, ch = min(cw, w), min(ch, h)
	return o.child.Layout(x+(w-cw)/2, y+(h-ch)/2, cw, ch)
}

func (o *overlay) Render(Screen, Rect, Style) {}

// find deepest node whose Rect contains (x, y)
func hitTest(node *LayoutNode, x, y int) *LayoutNode {
	if node == nil {
		return nil
	}
	if !node.Rect.Contains(x, y) {
		return nil
	}

	// Search children first (to get the most specific element)
	for _, c := range node.Children {
		if n := hitTest(c, x, y); n != nil {
			return n
		}
	}
	return node
}

// Focus moves keyboard focus to e, or to the element it delegates to.
func (a *App) Focus(e Element) {
	target := e.OnFocus()
	if target == nil || target == a.focused {
		return
	}
	if a.focused != nil {
		a.focused.OnBlur()
	}
	a.focused = target
}

func (a *App) draw() {
	a.Screen.Clear()
	a.Render()
	a.Screen.Show()
}

func (a *App) Run() error {
	if err := a.Screen.Init(); err != nil {
		return err
	}
	defer a.Screen.Fini()
	a.Screen.EnableMouse()
	a.draw()

	for {
		select {
		case <-a.done:
			return nil
		default:
		}

		ev := a.Screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := a.HandleEvent(ev); quit {
			return nil
		}
	}
}

// HandleEvent dispatches one event and redraws. It reports whether the app
// should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *EventResize:
		a.Screen.Sync()
	case *EventKey:
		if ev.Key() == a.QuitKey {
			if a.overlay == nil {
				return true
			}
			a.HideOverlay()
			break
		}
		if a.OnKey != nil && a.OnKey(ev) {
			break
		}
		if h, ok := a.focused.(KeyHandler); ok {
			h.HandleKey(ev)
		}
	case *EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
	default:
		return false
	}
	// redrawing after every event is efficient enough
	// and the most concise for simple TUI
	a.draw()
	return false
}

func (a *App) handleMouse(ev *EventMouse) {
	x, y := ev.Position()

	// a press in progress keeps its element until the button is released
	if a.pressed != nil {
		r := a.pressRect
		if ev.Buttons()&tcell.ButtonPrimary != 0 {
			a.pressed.OnMouseMove(x-r.X, y-r.Y)
			return
		}
		a.pressed.OnMouseUp(x-r.X, y-r.Y)
		a.pressed = nil
		return
	}

	tree := a.tree
	if a.overlay != nil {
		tree = a.overlayTree
		if hitTest(tree, x, y) == nil {
			if ev.Buttons()&tcell.ButtonPrimary != 0 {
				a.HideOverlay()
			}
			return
		}
	}
	node := hitTest(tree, x, y)
	if node == nil {
		return
	}
	e := node.Element
	switch {
	case ev.Buttons()&tcell.ButtonPrimary != 0:
		a.pressed = e
		a.pressRect = node.Rect
		e.OnMouseDown(x-node.Rect.X, y-node.Rect.Y)
		a.Focus(e)
	case ev.Buttons()&tcell.WheelUp != 0:
		e.OnMouseWheel(-1)
	case ev.Buttons()&tcell.WheelDown != 0:
		e.OnMouseWheel(1)
	default:
		// hover enter/leave
		if e != a.hovered {
			if a.hovered != nil {
				a.hovered.OnMouseLeave()
			}
			e.OnMouseEnter()
			a.hovered = e
		}
	}
}

// Post queues a redraw from another goroutine.
func (a *App) Post() {
	if err := a.Screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		a.logger.Warn("post redraw", zap.Error(err))
	}
}

func (a *App) Stop() {
	close(a.done)
	a.Post()
}
