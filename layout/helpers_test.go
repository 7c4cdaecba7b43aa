package layout

import (
	"fmt"
	"strings"
)

// fakeWidget reports fixed limits and counts placements.
type fakeWidget struct {
	title  Title
	limits Limits
	rect   Rect
	places int
}

func newFake(label string) *fakeWidget {
	w := &fakeWidget{limits: Unbounded()}
	w.title = Title{Label: label, Owner: w}
	return w
}

func newFakeMin(label string, minW, minH float64) *fakeWidget {
	w := newFake(label)
	w.limits.MinWidth, w.limits.MinHeight = minW, minH
	return w
}

func (w *fakeWidget) Title() *Title   { return &w.title }
func (w *fakeWidget) Measure() Limits { return w.limits }
func (w *fakeWidget) Place(r Rect)    { w.rect = r; w.places++ }
func (w *fakeWidget) String() string  { return w.title.Label }

// recordingHost counts the requests a layout makes.
type recordingHost struct {
	minW, minH float64
	fits       int
	updates    int
	attached   []string
	detached   []string
	// onFitAncestors runs synchronously, like a host that lays out its
	// parents immediately.
	onFitAncestors func()
}

func (h *recordingHost) SetMinSize(w, hh float64) { h.minW, h.minH = w, hh }
func (h *recordingHost) RequestFit()              { h.fits++ }
func (h *recordingHost) RequestUpdate()           { h.updates++ }
func (h *recordingHost) Attach(w Widget)          { h.attached = append(h.attached, w.Title().Label) }
func (h *recordingHost) Detach(w Widget)          { h.detached = append(h.detached, w.Title().Label) }
func (h *recordingHost) FitAncestors() {
	if h.onFitAncestors != nil {
		h.onFitAncestors()
	}
}

// shape renders the tree compactly: a single-tab area is its label, a
// multi-tab area is (A B*) with the current tab starred, and splits are
// h[...] or v[...].
func shape(d *DockLayout) string {
	if d.root == noNode {
		return "<empty>"
	}
	var b strings.Builder
	writeShape(&b, d, d.root)
	return b.String()
}

func writeShape(b *strings.Builder, d *DockLayout, id nodeID) {
	n := d.at(id)
	switch n.kind {
	case tabArea:
		titles := n.tabBar.Titles()
		if len(titles) == 1 {
			b.WriteString(titles[0].Label)
			return
		}
		b.WriteByte('(')
		for i, t := range titles {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.Label)
			if i == n.tabBar.CurrentIndex() {
				b.WriteByte('*')
			}
		}
		b.WriteByte(')')
	case splitArea:
		fmt.Fprintf(b, "%c[", n.orientation.String()[0])
		for i, c := range n.children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeShape(b, d, c)
		}
		b.WriteByte(']')
	}
}

// rootHints returns the size hints of the root split.
func rootHints(d *DockLayout) []float64 {
	return hints(d.at(d.root).sizers)
}
