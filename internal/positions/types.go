package positions

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// span is a closed interval of 1-based positions.
type span struct {
	lo int
	hi int
}

// List is a normalized set of 1-based positions.
//
// Positions are kept as sorted, disjoint, non-adjacent spans so that a wide
// range such as "1-1000000" costs nothing until it is walked. The zero value
// is an empty list. A List is never mutated after Parse returns it.
type List struct {
	spans []span
}

// count returns the number of distinct positions, saturating at
// math.MaxInt for lists like "1-9223372036854775807".
func (l List) count() int {
	n := 0
	for _, s := range l.spans {
		width := s.hi - s.lo
		if n > math.MaxInt-1-width {
			return math.MaxInt
		}
		n += width + 1
	}
	return n
}

func (l List) IsEmpty() bool {
	return len(l.spans) == 0
}

// last returns the largest position, or 0 for an empty list.
func (l List) last() int {
	if len(l.spans) == 0 {
		return 0
	}
	return l.spans[len(l.spans)-1].hi
}

func (l List) contains(pos int) bool {
	i := sort.Search(len(l.spans), func(i int) bool { return l.spans[i].hi >= pos })
	return i < len(l.spans) && l.spans[i].lo <= pos
}

// expand returns the ascending positions <= limit.
func (l List) expand(limit int) []int {
	out := make([]int, 0, min(l.count(), max(limit, 0)))
	l.Each(limit, func(pos int) {
		out = append(out, pos)
	})
	return out
}

// Each calls fn for every position <= limit in ascending order.
func (l List) Each(limit int, fn func(pos int)) {
	for _, s := range l.spans {
		if s.lo > limit {
			return
		}
		hi := min(s.hi, limit)
		for pos := s.lo; ; pos++ {
			fn(pos)
			if pos == hi {
				break
			}
		}
	}
}

// Equal reports whether both lists hold the same positions.
func (l List) Equal(other List) bool {
	if len(l.spans) != len(other.spans) {
		return false
	}
	for i := range l.spans {
		if l.spans[i] != other.spans[i] {
			return false
		}
	}
	return true
}

// String renders the canonical list form, e.g. "1-3,5". Parsing the result
// yields an equal List.
func (l List) String() string {
	var b strings.Builder
	for i, s := range l.spans {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s.lo))
		if s.hi != s.lo {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(s.hi))
		}
	}
	return b.String()
}

// normalize sorts spans and merges overlapping or touching ones.
func normalize(spans []span) List {
	if len(spans) == 0 {
		return List{}
	}
	sorted := append([]span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].lo != sorted[j].lo {
			return sorted[i].lo < sorted[j].lo
		}
		return sorted[i].hi < sorted[j].hi
	})

	merged := sorted[:1]
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.lo-1 <= last.hi {
			if s.hi > last.hi {
				last.hi = s.hi
			}
			continue
		}
		merged = append(merged, s)
	}
	return List{spans: merged}
}
