package layout

import (
	"slices"

	"github.com/mattn/go-runewidth"
)

// TabBar is an ordered strip of titles with at most one current title.
// The zero value is not usable; create one with NewTabBar.
type TabBar struct {
	titles   []*Title
	current  int
	previous *Title
	rect     Rect
}

// NewTabBar returns an empty tab bar with no current title.
func NewTabBar() *TabBar {
	return &TabBar{current: -1}
}

// Titles returns a copy of the titles in order.
func (b *TabBar) Titles() []*Title { return slices.Clone(b.titles) }

// Len returns the number of tabs.
func (b *TabBar) Len() int { return len(b.titles) }

// IndexOf returns the position of t, or -1.
func (b *TabBar) IndexOf(t *Title) int { return slices.Index(b.titles, t) }

// CurrentIndex returns the selected position, or -1 when nothing is selected.
func (b *TabBar) CurrentIndex() int { return b.current }

// CurrentTitle returns the selected title, or nil.
func (b *TabBar) CurrentTitle() *Title {
	if b.current < 0 || b.current >= len(b.titles) {
		return nil
	}
	return b.titles[b.current]
}

// SetCurrentIndex selects the tab at i. Out of range values clear the
// selection.
func (b *TabBar) SetCurrentIndex(i int) {
	if i < 0 || i >= len(b.titles) {
		i = -1
	}
	if i == b.current {
		return
	}
	b.previous = b.CurrentTitle()
	b.current = i
}

// SetCurrentTitle selects t if it is in the bar.
func (b *TabBar) SetCurrentTitle(t *Title) {
	if i := b.IndexOf(t); i >= 0 {
		b.SetCurrentIndex(i)
	}
}

// AddTab appends t, or moves it to the end if it is already present.
func (b *TabBar) AddTab(t *Title) *Title {
	return b.InsertTab(len(b.titles), t)
}

// InsertTab inserts t at index, clamped to the valid range. A title that is
// already present is moved instead. The inserted title becomes current when
// nothing was selected.
func (b *TabBar) InsertTab(index int, t *Title) *Title {
	i := b.IndexOf(t)
	j := max(0, min(index, len(b.titles)))

	if i == -1 {
		b.titles = slices.Insert(b.titles, j, t)
		switch {
		case b.current == -1:
			b.current = j
		case j <= b.current:
			b.current++
		}
		return t
	}

	if j == len(b.titles) {
		j--
	}
	if i == j {
		return t
	}
	b.titles = slices.Delete(b.titles, i, i+1)
	b.titles = slices.Insert(b.titles, j, t)

	switch ci := b.current; {
	case i == ci:
		b.current = j
	case i < ci && j >= ci:
		b.current--
	case i > ci && j <= ci:
		b.current++
	}
	return t
}

// RemoveTab removes t if present.
func (b *TabBar) RemoveTab(t *Title) {
	if i := b.IndexOf(t); i >= 0 {
		b.RemoveTabAt(i)
	}
}

// RemoveTabAt removes the tab at i and returns its title. When the current
// tab is removed the previously selected tab is restored if it still exists,
// otherwise the tab that took its place.
func (b *TabBar) RemoveTabAt(i int) *Title {
	if i < 0 || i >= len(b.titles) {
		return nil
	}
	t := b.titles[i]
	b.titles = slices.Delete(b.titles, i, i+1)
	if t == b.previous {
		b.previous = nil
	}

	switch {
	case len(b.titles) == 0:
		b.current = -1
		b.previous = nil
	case i < b.current:
		b.current--
	case i == b.current:
		if pi := b.IndexOf(b.previous); pi >= 0 {
			b.current = pi
		} else {
			b.current = min(i, len(b.titles)-1)
		}
		b.previous = nil
	}
	return t
}

// ClearTabs removes every tab.
func (b *TabBar) ClearTabs() {
	b.titles = nil
	b.current = -1
	b.previous = nil
}

// tabLabel is the text drawn for one tab.
func tabLabel(t *Title) string {
	if t.Closable {
		return " " + t.Label + " x "
	}
	return " " + t.Label + " "
}

// TabWidth returns the width in cells of the tab at i.
func (b *TabBar) TabWidth(i int) int {
	return runewidth.StringWidth(tabLabel(b.titles[i]))
}

// TabLabel returns the text drawn for the tab at i.
func (b *TabBar) TabLabel(i int) string { return tabLabel(b.titles[i]) }

// TabAt returns the index of the tab under the column x, relative to the
// bar's left edge, or -1.
func (b *TabBar) TabAt(x float64) int {
	pos := 0.0
	for i := range b.titles {
		w := float64(b.TabWidth(i))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w
	}
	return -1
}

// Measure implements Surface. A tab bar is one row tall and at least as wide
// as its widest tab.
func (b *TabBar) Measure() Limits {
	l := Unbounded()
	l.MinHeight, l.MaxHeight = 1, 1
	for i := range b.titles {
		l.MinWidth = max(l.MinWidth, float64(b.TabWidth(i)))
	}
	return l
}

// Place implements Surface.
func (b *TabBar) Place(r Rect) { b.rect = r }

// Rect returns the rectangle the bar was last placed at.
func (b *TabBar) Rect() Rect { return b.rect }
