package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func labels(b *TabBar) []string {
	var out []string
	for _, t := range b.Titles() {
		out = append(out, t.Label)
	}
	return out
}

func newTitles(names ...string) []*Title {
	out := make([]*Title, len(names))
	for i, n := range names {
		out[i] = &Title{Label: n}
	}
	return out
}

func TestTabBarInsert(t *testing.T) {
	ts := newTitles("a", "b", "c")
	b := NewTabBar()
	assert.Equal(t, -1, b.CurrentIndex())
	assert.Nil(t, b.CurrentTitle())

	b.AddTab(ts[0])
	assert.Equal(t, 0, b.CurrentIndex(), "first tab is selected")

	b.InsertTab(0, ts[1])
	assert.Equal(t, []string{"b", "a"}, labels(b))
	assert.Same(t, ts[0], b.CurrentTitle(), "selection follows the title")

	b.InsertTab(99, ts[2])
	assert.Equal(t, []string{"b", "a", "c"}, labels(b))
	assert.Equal(t, 1, b.CurrentIndex())
}

func TestTabBarMove(t *testing.T) {
	ts := newTitles("a", "b", "c")
	b := NewTabBar()
	for _, tt := range ts {
		b.AddTab(tt)
	}
	b.SetCurrentTitle(ts[1])

	b.InsertTab(0, ts[2])
	assert.Equal(t, []string{"c", "a", "b"}, labels(b))
	assert.Same(t, ts[1], b.CurrentTitle())

	b.AddTab(ts[0])
	assert.Equal(t, []string{"c", "b", "a"}, labels(b))
	assert.Same(t, ts[1], b.CurrentTitle())

	b.InsertTab(2, ts[1])
	assert.Equal(t, []string{"c", "a", "b"}, labels(b))
	assert.Equal(t, 2, b.CurrentIndex())
}

func TestTabBarRemove(t *testing.T) {
	ts := newTitles("a", "b", "c", "d")
	b := NewTabBar()
	for _, tt := range ts {
		b.AddTab(tt)
	}

	// removing the current tab restores the previous selection
	b.SetCurrentIndex(3)
	b.RemoveTab(ts[3])
	assert.Same(t, ts[0], b.CurrentTitle())

	// without a previous selection the neighbour takes over
	b.SetCurrentIndex(1)
	b.RemoveTab(ts[0])
	assert.Same(t, ts[1], b.CurrentTitle())
	b.RemoveTab(ts[1])
	assert.Same(t, ts[2], b.CurrentTitle())

	// removing before the current tab keeps it selected
	b.InsertTab(0, ts[0])
	assert.Same(t, ts[2], b.CurrentTitle())
	assert.Same(t, ts[0], b.RemoveTabAt(0))
	assert.Same(t, ts[2], b.CurrentTitle())

	assert.Nil(t, b.RemoveTabAt(5))
	b.RemoveTab(ts[2])
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, -1, b.CurrentIndex())
}

func TestTabBarSetCurrentIndexOutOfRange(t *testing.T) {
	b := NewTabBar()
	b.AddTab(&Title{Label: "a"})
	b.SetCurrentIndex(4)
	assert.Equal(t, -1, b.CurrentIndex())
	assert.Nil(t, b.CurrentTitle())
}

func TestTabBarGeometry(t *testing.T) {
	b := NewTabBar()
	b.AddTab(&Title{Label: "main.go"})
	b.AddTab(&Title{Label: "日本", Closable: true})

	assert.Equal(t, " main.go ", b.TabLabel(0))
	assert.Equal(t, " 日本 x ", b.TabLabel(1))
	assert.Equal(t, 9, b.TabWidth(0))
	assert.Equal(t, 8, b.TabWidth(1))

	assert.Equal(t, 0, b.TabAt(0))
	assert.Equal(t, 0, b.TabAt(8))
	assert.Equal(t, 1, b.TabAt(9))
	assert.Equal(t, 1, b.TabAt(16))
	assert.Equal(t, -1, b.TabAt(17))
	assert.Equal(t, -1, b.TabAt(-1))

	l := b.Measure()
	assert.Equal(t, 9.0, l.MinWidth)
	assert.Equal(t, 1.0, l.MinHeight)
	assert.Equal(t, 1.0, l.MaxHeight)
}
