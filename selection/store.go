package selection

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/selva/position"
)

// Store is the ordered set of selections over one buffer. It maintains the
// engine's central invariants: selections are mutually disjoint, iteration
// order is ascending From, the set is never empty, and exactly one
// selection, identified by its From position, is the main one.
//
// The backing container is a sorted slice with binary search; overlap
// detection and merge happen on every insertion.
type Store struct {
	sels []Selection
	main position.Position
}

// NewStore builds a store holding the bare main cursor at 1:1, the state of
// a fresh buffer.
func NewStore() *Store {
	return &Store{
		sels: []Selection{NewPoint(1, 1)},
		main: position.Make(1, 1),
	}
}

// Len reports the number of selections.
func (st *Store) Len() int { return len(st.sels) }

// Selections returns the selections in document order.
func (st *Store) Selections() []Selection {
	out := make([]Selection, len(st.sels))
	copy(out, st.sels)
	return out
}

// Main returns the main selection. The pointer is kept valid by every
// operation; a dangling pointer is a bug.
func (st *Store) Main() Selection {
	for _, s := range st.sels {
		if s.From == st.main {
			return s
		}
	}
	log.Panic().Str("main", fmt.Sprintf("%d:%d", st.main.Line.Int(), st.main.Col.Int())).
		Msg("main selection pointer dangles")
	return Selection{}
}

// searchFrom returns the index of the first selection whose From is after p.
func (st *Store) searchFrom(p position.Position) int {
	return sort.Search(len(st.sels), func(i int) bool {
		return p.Less(st.sels[i].From)
	})
}

// FindHit returns the selection covering position p, if any.
func (st *Store) FindHit(p position.Position) (Selection, bool) {
	i := st.searchFrom(p) - 1
	if i >= 0 && !st.sels[i].To.Less(p) {
		return st.sels[i], true
	}
	return Selection{}, false
}

// takeHit removes and returns the selection covering p.
func (st *Store) takeHit(p position.Position) (Selection, bool) {
	i := st.searchFrom(p) - 1
	if i >= 0 && !st.sels[i].To.Less(p) {
		s := st.sels[i]
		st.sels = append(st.sels[:i], st.sels[i+1:]...)
		return s, true
	}
	return Selection{}, false
}

// Add inserts ns, merging it with everything it overlaps.
func (st *Store) Add(ns Selection) {
	st.add(ns, false)
}

// add is the §merge loop: selections hit by either endpoint of ns are taken
// out and folded into it, then the widened ns is re-checked until it is
// disjoint from the rest; selections fully inside ns are absorbed the same
// way. The result keeps the incoming cursor direction and loses any sticky
// memory. Main-ness is contagious: if ns or anything folded into it was
// main, the result is main.
func (st *Store) add(ns Selection, isMain bool) Selection {
	for {
		if hit, ok := st.takeHit(ns.From); ok {
			ns, isMain = st.merge(ns, hit, isMain)
			continue
		}
		if hit, ok := st.takeHit(ns.To); ok {
			ns, isMain = st.merge(ns, hit, isMain)
			continue
		}
		break
	}
	// Remaining overlaps are selections strictly inside ns.
	lo := sort.Search(len(st.sels), func(i int) bool {
		return !st.sels[i].From.Less(ns.From)
	})
	hi := lo
	for hi < len(st.sels) && !ns.To.Less(st.sels[hi].From) {
		if st.sels[hi].From == st.main {
			isMain = true
		}
		hi++
	}
	if lo < hi {
		st.sels = append(st.sels[:lo], st.sels[hi:]...)
		ns.sticky = 0
	}
	st.sels = append(st.sels, Selection{})
	copy(st.sels[lo+1:], st.sels[lo:])
	st.sels[lo] = ns
	if isMain {
		st.main = ns.From
	}
	return ns
}

func (st *Store) merge(ns, hit Selection, isMain bool) (Selection, bool) {
	if hit.From == st.main {
		isMain = true
	}
	if hit.From.Less(ns.From) {
		ns.From = hit.From
	}
	if ns.To.Less(hit.To) {
		ns.To = hit.To
	}
	if ns.From == ns.To {
		ns.Dir = Forward
	}
	ns.sticky = 0
	return ns, isMain
}

// applyToAll drains the store, transforms every selection and reinserts it,
// so collisions caused by the bulk movement collapse into merges. A
// selection whose transformed shape differs and survives as its own entry
// yields a SelectionChanged delta; one merged into a neighbour yields
// SelectionRemoved under its prior identity; one left unchanged yields no
// delta.
func (st *Store) applyToAll(f func(Selection) Selection) []Delta {
	drained := st.sels
	mainFrom := st.main
	st.sels = make([]Selection, 0, len(drained))

	var deltas []Delta
	for _, s := range drained {
		moved := f(s)
		before := len(st.sels)
		st.add(moved, s.From == mainFrom)
		switch {
		case len(st.sels) != before+1:
			// The moved selection folded into a neighbour.
			deltas = append(deltas, Removed(s.From))
		case !moved.Equal(s):
			deltas = append(deltas, Changed(s, moved))
		}
	}
	return deltas
}

// MoveLeft moves every selection n slots left.
func (st *Store) MoveLeft(n int, extend bool, m position.LineMetrics) []Delta {
	return st.applyToAll(func(s Selection) Selection { return s.MoveLeft(n, extend, m) })
}

// MoveRight moves every selection n slots right.
func (st *Store) MoveRight(n int, extend bool, m position.LineMetrics) []Delta {
	return st.applyToAll(func(s Selection) Selection { return s.MoveRight(n, extend, m) })
}

// MoveUp moves every selection n lines up.
func (st *Store) MoveUp(n int, extend bool, m position.LineMetrics) []Delta {
	return st.applyToAll(func(s Selection) Selection { return s.MoveUp(n, extend, m) })
}

// MoveDown moves every selection n lines down.
func (st *Store) MoveDown(n int, extend bool, m position.LineMetrics) []Delta {
	return st.applyToAll(func(s Selection) Selection { return s.MoveDown(n, extend, m) })
}

// SwapCursor flips the cursor end of every non-point selection.
func (st *Store) SwapCursor() []Delta {
	return st.applyToAll(Selection.SwapCursor)
}

// PlaceUnder adds, for each selection that finds room, a copy placed below
// it. The copy placed under the main selection becomes the new main; the
// originals are preserved.
func (st *Store) PlaceUnder(m position.LineMetrics) []Delta {
	snapshot := st.Selections()
	mainFrom := st.main

	var deltas []Delta
	for _, s := range snapshot {
		under, ok := s.Under(m)
		if !ok {
			continue
		}
		before := len(st.sels)
		st.add(under, s.From == mainFrom)
		if len(st.sels) > before {
			deltas = append(deltas, Added(under))
		}
	}
	return deltas
}

// MoveRightIncremental is the bookkeeping for a multi-cursor insertion of n
// plain characters: the k-th selection on a line absorbs the k·n columns
// the insertions before and at it pushed in. A Forward range grows over its
// inserted text (the anchor lags one insertion behind the cursor); points
// and Backward ranges translate whole.
func (st *Store) MoveRightIncremental(n int) {
	// counts tracks, per line, how many insertion points (cursors) have
	// been passed so far in document order.
	counts := make(map[int]int)
	mainFrom := st.main
	for i, s := range st.sels {
		wasMain := s.From == mainFrom
		cursor, anchor := s.Cursor(), s.Anchor()
		anchorBefore := counts[anchor.Line.Int()]
		counts[cursor.Line.Int()]++

		cursorShift := counts[cursor.Line.Int()] * n
		var anchorShift int
		switch {
		case s.IsPoint():
			anchorShift = cursorShift
		case s.Dir == Backward:
			// The cursor's own insertion happens at From and pushes a
			// same-line To along with it.
			anchorShift = counts[anchor.Line.Int()] * n
		default:
			// A Forward anchor sits before its own insertion point and
			// only absorbs the copies of earlier selections on its line.
			anchorShift = anchorBefore * n
		}

		cursor.Col = cursor.Col.Add(cursorShift)
		anchor.Col = anchor.Col.Add(anchorShift)
		if s.Dir == Backward {
			s.From, s.To = cursor, anchor
		} else {
			s.From, s.To = anchor, cursor
		}
		s.sticky = 0
		st.sels[i] = s
		if wasMain {
			st.main = s.From
		}
	}
}

// MoveDownIncremental is the bookkeeping for a multi-cursor insertion of n
// newlines, applied cumulatively in document order: the i-th selection sits
// below i·n freshly inserted line breaks. Points and Backward ranges land
// at column 1 of their new line; a Forward range keeps its anchor at the
// insertion point, one newline group behind the cursor.
func (st *Store) MoveDownIncremental(n int) {
	// lastCol remembers, per original line, the column of the latest
	// insertion point passed on it; an end behind such a split line
	// splices onto the line the newline opened.
	lastCol := make(map[int]int)
	mainFrom := st.main
	for i, s := range st.sels {
		wasMain := s.From == mainFrom
		shift := (i + 1) * n
		switch {
		case s.IsPoint():
			lastCol[s.From.Line.Int()] = s.From.Col.Int()
			s.From.Line = s.From.Line.Add(shift)
			s.From.Col = 1
			s.To = s.From
		case s.Dir == Backward:
			lastCol[s.From.Line.Int()] = s.From.Col.Int()
			if c, ok := lastCol[s.To.Line.Int()]; ok && c <= s.To.Col.Int() {
				s.To.Col = position.MakeIndex(s.To.Col.Int() - c + 1)
			}
			s.From.Line = s.From.Line.Add(shift)
			s.From.Col = 1
			s.To.Line = s.To.Line.Add(shift)
		default: // Forward range
			if c, ok := lastCol[s.From.Line.Int()]; ok && c <= s.From.Col.Int() {
				s.From.Col = position.MakeIndex(s.From.Col.Int() - c + 1)
			}
			lastCol[s.To.Line.Int()] = s.To.Col.Int()
			s.From.Line = s.From.Line.Add(shift - n)
			s.To.Line = s.To.Line.Add(shift)
			s.To.Col = 1
		}
		s.sticky = 0
		st.sels[i] = s
		if wasMain {
			st.main = s.From
		}
	}
}

// FirstBefore returns the last selection ending strictly before s begins.
func (st *Store) FirstBefore(s Selection) (Selection, bool) {
	i := st.searchFrom(s.From)
	for i--; i >= 0; i-- {
		if st.sels[i].To.Less(s.From) {
			return st.sels[i], true
		}
	}
	return Selection{}, false
}

// MoveLeftOnLine nudges left by k every selection starting on line strictly
// right of afterCol.
func (st *Store) MoveLeftOnLine(line, afterCol, k int) {
	for i, s := range st.sels {
		if s.From.Line.Int() == line && s.From.Col.Int() > afterCol {
			st.sels[i] = s.NudgeLeft(k)
		}
	}
}

// Replace reloads the store from sels, resolving any overlaps through the
// merge loop, and points main at the selection whose From equals main.
func (st *Store) Replace(sels []Selection, main position.Position) {
	st.sels = st.sels[:0]
	st.main = main
	for _, s := range sels {
		st.add(s, s.From == main)
	}
}

// Check verifies the store invariants: non-empty, ordered, disjoint, valid
// main pointer. It backs the property tests.
func (st *Store) Check() error {
	if len(st.sels) == 0 {
		return fmt.Errorf("store is empty")
	}
	mainSeen := false
	for i, s := range st.sels {
		if s.To.Less(s.From) {
			return fmt.Errorf("selection %d: from %v after to %v", i, s.From, s.To)
		}
		if i > 0 && !st.sels[i-1].To.Less(s.From) {
			return fmt.Errorf("selections %d and %d overlap or are unordered", i-1, i)
		}
		if s.From == st.main {
			mainSeen = true
		}
	}
	if !mainSeen {
		return fmt.Errorf("main pointer %v matches no selection", st.main)
	}
	return nil
}
