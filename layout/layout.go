// Package layout sizes and positions widgets.
//
// It holds the box distribution engine (Calc and Adjust), a linear BoxLayout
// and the DockLayout, a tree of split and tab areas used to build resizable
// IDE-style shells. Geometry is computed in float64; hosts round to whatever
// unit they draw in.
package layout

import (
	"fmt"
	"iter"
	"math"
)

// Rect is a positioned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Limits are the size constraints a surface reports about itself.
type Limits struct {
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64
}

// Unbounded returns limits with no minimum and no maximum.
func Unbounded() Limits {
	return Limits{MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
}

// Surface is anything that can measure itself and accept a position.
// Place is called with the final rectangle after every layout pass that
// changed it.
type Surface interface {
	Measure() Limits
	Place(r Rect)
}

// Widget is a dockable surface. Its title is what a tab bar shows.
type Widget interface {
	Surface
	Title() *Title
}

// Title is the tab label of a widget.
type Title struct {
	Label    string
	Caption  string
	Closable bool
	Owner    Widget
}

// Layout is implemented by every layout strategy. Fit runs bottom up and
// Update places the surfaces top down.
type Layout interface {
	Fit() Limits
	Update(r Rect)
	Surfaces() iter.Seq[Surface]
}

// Orientation is the axis along which a split area arranges its children.
type Orientation uint8

const (
	// Horizontal arranges children left to right.
	Horizontal Orientation = iota + 1
	// Vertical arranges children top to bottom.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case Horizontal, Vertical:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("%w: orientation %d", ErrInvalidConfig, uint8(o))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*o = Horizontal
	case "vertical":
		*o = Vertical
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidConfig, b)
	}
	return nil
}

// mustValid panics on an orientation no switch can handle.
func (o Orientation) mustValid() {
	if o != Horizontal && o != Vertical {
		panic(fmt.Sprintf("layout: invalid orientation %d", uint8(o)))
	}
}

// Handle is the draggable boundary after a child of a split area.
type Handle struct {
	Orientation Orientation
	Hidden      bool
	Rect        Rect
}

// Renderer creates the pieces a dock layout draws besides widgets.
type Renderer interface {
	CreateTabBar() *TabBar
	CreateHandle() *Handle
}

// DefaultRenderer creates plain tab bars and handles.
type DefaultRenderer struct{}

func (DefaultRenderer) CreateTabBar() *TabBar  { return NewTabBar() }
func (DefaultRenderer) CreateHandle() *Handle { return &Handle{} }
