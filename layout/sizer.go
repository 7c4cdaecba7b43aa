package layout

import (
	"fmt"
	"math"
)

// nearZero is the amount of free space below which distribution stops.
const nearZero = 0.01

// Sizer describes one dimension of one layout participant.
//
// SizeHint, MinSize, MaxSize and Stretch are inputs. Size is written by Calc.
// A Stretch of zero puts the sizer in the last-resort tier: it only grows or
// shrinks after every stretchable sizer has reached its limit.
type Sizer struct {
	SizeHint float64
	MinSize  float64
	MaxSize  float64
	Stretch  int
	Size     float64

	done bool
}

// NewSizer returns an unconstrained, stretchable sizer whose hint and size
// are both hint.
func NewSizer(hint float64) Sizer {
	return Sizer{
		SizeHint: hint,
		MaxSize:  math.Inf(1),
		Stretch:  1,
		Size:     hint,
	}
}

func (s *Sizer) check() {
	if s.MinSize < 0 || s.MinSize > s.MaxSize || s.Stretch < 0 {
		panic(fmt.Sprintf("layout: malformed sizer min=%v max=%v stretch=%d", s.MinSize, s.MaxSize, s.Stretch))
	}
}

// Calc sets the Size of each sizer so the sizes fill space as closely as the
// limits permit, and returns space minus the total size. The result is
// negative when space is below the summed minimums and positive when it is
// above the summed maximums.
func Calc(sizers []Sizer, space float64) float64 {
	count := len(sizers)
	if count == 0 {
		return space
	}

	var totalMin, totalMax, totalSize float64
	totalStretch, stretchCount := 0, 0
	for i := range sizers {
		s := &sizers[i]
		s.check()
		s.done = false
		s.Size = max(s.MinSize, min(s.SizeHint, s.MaxSize))
		totalSize += s.Size
		totalMin += s.MinSize
		totalMax += s.MaxSize
		if s.Stretch > 0 {
			totalStretch += s.Stretch
			stretchCount++
		}
	}

	if space == totalSize {
		return 0
	}
	if space <= totalMin {
		for i := range sizers {
			sizers[i].Size = sizers[i].MinSize
		}
		return space - totalMin
	}
	if space >= totalMax {
		for i := range sizers {
			sizers[i].Size = sizers[i].MaxSize
		}
		return space - totalMax
	}

	notDone := count
	if space < totalSize {
		shrink(sizers, totalSize-space, totalStretch, stretchCount, notDone)
	} else {
		grow(sizers, space-totalSize, totalStretch, stretchCount, notDone)
	}
	return 0
}

func shrink(sizers []Sizer, free float64, totalStretch, stretchCount, notDone int) {
	for stretchCount > 0 && free > nearZero {
		dist, distStretch := free, float64(totalStretch)
		for i := range sizers {
			s := &sizers[i]
			if s.done || s.Stretch == 0 {
				continue
			}
			amt := float64(s.Stretch) * dist / distStretch
			if s.Size-amt <= s.MinSize {
				free -= s.Size - s.MinSize
				totalStretch -= s.Stretch
				s.Size = s.MinSize
				s.done = true
				notDone--
				stretchCount--
			} else {
				free -= amt
				s.Size -= amt
			}
		}
	}
	for notDone > 0 && free > nearZero {
		amt := free / float64(notDone)
		for i := range sizers {
			s := &sizers[i]
			if s.done {
				continue
			}
			if s.Size-amt <= s.MinSize {
				free -= s.Size - s.MinSize
				s.Size = s.MinSize
				s.done = true
				notDone--
			} else {
				free -= amt
				s.Size -= amt
			}
		}
	}
}

func grow(sizers []Sizer, free float64, totalStretch, stretchCount, notDone int) {
	for stretchCount > 0 && free > nearZero {
		dist, distStretch := free, float64(totalStretch)
		for i := range sizers {
			s := &sizers[i]
			if s.done || s.Stretch == 0 {
				continue
			}
			amt := float64(s.Stretch) * dist / distStretch
			if s.Size+amt >= s.MaxSize {
				free -= s.MaxSize - s.Size
				totalStretch -= s.Stretch
				s.Size = s.MaxSize
				s.done = true
				notDone--
				stretchCount--
			} else {
				free -= amt
				s.Size += amt
			}
		}
	}
	for notDone > 0 && free > nearZero {
		amt := free / float64(notDone)
		for i := range sizers {
			s := &sizers[i]
			if s.done {
				continue
			}
			if s.Size+amt >= s.MaxSize {
				free -= s.MaxSize - s.Size
				s.Size = s.MaxSize
				s.done = true
				notDone--
			} else {
				free -= amt
				s.Size += amt
			}
		}
	}
}

// Adjust moves the boundary after sizers[index] by delta. A positive delta
// grows the sizers up to and including index and shrinks the ones after it;
// a negative delta does the opposite. The move is clamped to the slack
// available on both sides. Only SizeHint is modified, so the caller must run
// Calc again to see the effect.
func Adjust(sizers []Sizer, index int, delta float64) {
	if len(sizers) == 0 || delta == 0 {
		return
	}
	if index < 0 || index >= len(sizers) {
		panic(fmt.Sprintf("layout: adjust index %d out of range [0,%d)", index, len(sizers)))
	}
	if delta > 0 {
		growSizer(sizers, index, delta)
	} else {
		shrinkSizer(sizers, index, -delta)
	}
}

func growSizer(sizers []Sizer, index int, delta float64) {
	var growLimit, shrinkLimit float64
	for i := 0; i <= index; i++ {
		growLimit += sizers[i].MaxSize - sizers[i].Size
	}
	for i := index + 1; i < len(sizers); i++ {
		shrinkLimit += sizers[i].Size - sizers[i].MinSize
	}
	delta = min(delta, growLimit, shrinkLimit)

	rest := delta
	for i := index; i >= 0 && rest > 0; i-- {
		s := &sizers[i]
		limit := s.MaxSize - s.Size
		if limit >= rest {
			s.SizeHint = s.Size + rest
			rest = 0
		} else {
			s.SizeHint = s.Size + limit
			rest -= limit
		}
	}
	rest = delta
	for i := index + 1; i < len(sizers) && rest > 0; i++ {
		s := &sizers[i]
		limit := s.Size - s.MinSize
		if limit >= rest {
			s.SizeHint = s.Size - rest
			rest = 0
		} else {
			s.SizeHint = s.Size - limit
			rest -= limit
		}
	}
}

func shrinkSizer(sizers []Sizer, index int, delta float64) {
	var growLimit, shrinkLimit float64
	for i := index + 1; i < len(sizers); i++ {
		growLimit += sizers[i].MaxSize - sizers[i].Size
	}
	for i := 0; i <= index; i++ {
		shrinkLimit += sizers[i].Size - sizers[i].MinSize
	}
	delta = min(delta, growLimit, shrinkLimit)

	rest := delta
	for i := index + 1; i < len(sizers) && rest > 0; i++ {
		s := &sizers[i]
		limit := s.MaxSize - s.Size
		if limit >= rest {
			s.SizeHint = s.Size + rest
			rest = 0
		} else {
			s.SizeHint = s.Size + limit
			rest -= limit
		}
	}
	rest = delta
	for i := index; i >= 0 && rest > 0; i-- {
		s := &sizers[i]
		limit := s.Size - s.MinSize
		if limit >= rest {
			s.SizeHint = s.Size - rest
			rest = 0
		} else {
			s.SizeHint = s.Size - limit
			rest -= limit
		}
	}
}

// normalizeHints scales the hints so they sum to one, splitting evenly when
// they sum to zero. Sizes follow the hints.
func normalizeHints(sizers []Sizer) {
	n := len(sizers)
	if n == 0 {
		return
	}
	var sum float64
	for i := range sizers {
		sum += sizers[i].SizeHint
	}
	for i := range sizers {
		s := &sizers[i]
		if sum == 0 {
			s.SizeHint = 1 / float64(n)
		} else {
			s.SizeHint /= sum
		}
		s.Size = s.SizeHint
	}
}

// holdSizes commits the current sizes as hints.
func holdSizes(sizers []Sizer) {
	for i := range sizers {
		sizers[i].SizeHint = sizers[i].Size
	}
}

// normalized returns the weights scaled to sum to one.
func normalized(weights []float64) []float64 {
	out := make([]float64, len(weights))
	var sum float64
	for _, w := range weights {
		sum += w
	}
	for i, w := range weights {
		if sum == 0 {
			out[i] = 1 / float64(len(weights))
		} else {
			out[i] = w / sum
		}
	}
	return out
}
