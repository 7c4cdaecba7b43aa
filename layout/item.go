package layout

import "math"

// layoutItem caches a surface's limits and last geometry so repeated passes
// with identical input do not place the surface again.
type layoutItem struct {
	surface Surface
	limits  Limits
	rect    Rect
	placed  bool
}

func newLayoutItem(s Surface) *layoutItem {
	return &layoutItem{surface: s, limits: Unbounded()}
}

func (it *layoutItem) fit() Limits {
	l := it.surface.Measure()
	l.MinWidth = max(0, l.MinWidth)
	l.MinHeight = max(0, l.MinHeight)
	if math.IsNaN(l.MaxWidth) || l.MaxWidth < l.MinWidth {
		l.MaxWidth = l.MinWidth
	}
	if math.IsNaN(l.MaxHeight) || l.MaxHeight < l.MinHeight {
		l.MaxHeight = l.MinHeight
	}
	it.limits = l
	return l
}

func (it *layoutItem) update(r Rect) {
	r.Width = max(it.limits.MinWidth, min(r.Width, it.limits.MaxWidth))
	r.Height = max(it.limits.MinHeight, min(r.Height, it.limits.MaxHeight))
	if it.placed && it.rect == r {
		return
	}
	it.rect = r
	it.placed = true
	it.surface.Place(r)
}
