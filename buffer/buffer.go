// Package buffer ties the rope and the selection store together: it owns
// both exclusively, translates between line/column positions and rune
// offsets, and implements the operations that mutate text under multiple
// cursors.
package buffer

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/selva/position"
	"github.com/xonecas/selva/rope"
	"github.com/xonecas/selva/selection"
)

// ErrRead reports that the input stream for FromReader failed.
var ErrRead = errors.New("buffer: read source")

// Buffer is the main structure to store and process text. It is created
// empty or from a reader, and carries at least one selection at all times.
// All operations are synchronous and atomic: on return the store invariants
// hold and the rope matches the selection coordinates.
type Buffer struct {
	rope  *rope.Rope
	store *selection.Store
}

// Empty builds a buffer over no text, with the bare main cursor at 1:1.
func Empty() *Buffer {
	return &Buffer{rope: rope.New(""), store: selection.NewStore()}
}

// FromReader builds a buffer over the full contents of r.
func FromReader(r io.Reader) (*Buffer, error) {
	rp, err := rope.FromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return &Buffer{rope: rp, store: selection.NewStore()}, nil
}

// Rope exposes the underlying rope read-only; mutating it directly would
// desynchronise the selections.
func (b *Buffer) Rope() *rope.Rope { return b.rope }

// String returns the whole text.
func (b *Buffer) String() string { return b.rope.String() }

// LineCount reports the number of lines.
func (b *Buffer) LineCount() int { return b.rope.LineCount() }

// LineLength reports the column-slot count of the 1-based line.
func (b *Buffer) LineLength(line int) (int, bool) { return b.rope.LineLength(line) }

// Selections returns the selections in document order.
func (b *Buffer) Selections() []selection.Selection { return b.store.Selections() }

// Main returns the main selection.
func (b *Buffer) Main() selection.Selection { return b.store.Main() }

// SelectionsAt returns, in document order, the selections that end on or
// after the start of the 1-based line.
func (b *Buffer) SelectionsAt(line int) []selection.Selection {
	start := position.Make(line, 1)
	var out []selection.Selection
	for _, s := range b.store.Selections() {
		if !s.To.Less(start) {
			out = append(out, s)
		}
	}
	return out
}

// CreatePosition builds a position clamped into the buffer bounds.
func (b *Buffer) CreatePosition(line, col int) position.Position {
	if last := b.rope.LineCount(); line > last {
		line = last
	}
	p := position.Make(line, col)
	if length, ok := b.rope.LineLength(p.Line.Int()); ok && p.Col.Int() > length {
		p.Col = position.MakeIndex(length)
	}
	return p
}

// MoveLeft moves all cursors left by n, shrinking selections to bare
// cursors unless extend is set.
func (b *Buffer) MoveLeft(n int, extend bool) []selection.Delta {
	return b.store.MoveLeft(n, extend, b.rope)
}

// MoveRight moves all cursors right by n; see MoveLeft.
func (b *Buffer) MoveRight(n int, extend bool) []selection.Delta {
	return b.store.MoveRight(n, extend, b.rope)
}

// MoveUp moves all cursors up by n; see MoveLeft.
func (b *Buffer) MoveUp(n int, extend bool) []selection.Delta {
	return b.store.MoveUp(n, extend, b.rope)
}

// MoveDown moves all cursors down by n; see MoveLeft.
func (b *Buffer) MoveDown(n int, extend bool) []selection.Delta {
	return b.store.MoveDown(n, extend, b.rope)
}

// SwapCursor swaps every selection's cursor end.
func (b *Buffer) SwapCursor() []selection.Delta {
	return b.store.SwapCursor()
}

// PlaceSelectionUnder places, under each selection that finds room, a copy
// with the same columns, skipping lines too short to hold it.
func (b *Buffer) PlaceSelectionUnder() []selection.Delta {
	return b.store.PlaceUnder(b.rope)
}

// charOffset translates a position to its rune offset.
func (b *Buffer) charOffset(p position.Position) int {
	return b.rope.LineToChar(p.Line.Int()-1) + p.Col.Int() - 1
}

// run is a maximal span of text that is either all newlines or free of
// them.
type run struct {
	newline bool
	n       int
}

func splitRuns(text string) []run {
	var runs []run
	for _, r := range text {
		nl := r == '\n'
		if len(runs) == 0 || runs[len(runs)-1].newline != nl {
			runs = append(runs, run{newline: nl})
		}
		runs[len(runs)-1].n++
	}
	return runs
}

// Insert inserts text at every cursor. A selection whose cursor is in
// front grows over its inserted copy; otherwise the whole selection is
// pushed past it. Rope insertion walks the selections in reverse document
// order so earlier edits cannot shift the offsets of the ones still
// pending.
func (b *Buffer) Insert(text string) []selection.Delta {
	if text == "" {
		return nil
	}
	before := b.store.Selections()
	for i := len(before) - 1; i >= 0; i-- {
		b.rope.Insert(b.charOffset(before[i].Cursor()), text)
	}
	for _, r := range splitRuns(text) {
		if r.newline {
			b.store.MoveDownIncremental(r.n)
		} else {
			b.store.MoveRightIncremental(r.n)
		}
	}

	after := b.store.Selections()
	if len(after) != len(before) {
		log.Panic().Int("before", len(before)).Int("after", len(after)).
			Msg("insertion changed the selection count")
	}
	deltas := make([]selection.Delta, 0, 2*len(after))
	for i := range after {
		deltas = append(deltas, selection.Changed(before[i], after[i]))
	}
	return append(deltas, b.lineHints(after)...)
}

// Delete removes the selected text of every selection and collapses each to
// a bare cursor at its start. Selections are processed in reverse document
// order; survivors left and right of each removed range are nudged so they
// keep naming the same characters, and any collisions merge.
func (b *Buffer) Delete() []selection.Delta {
	old := b.store.Selections()
	sels := b.store.Selections()
	mainFrom := b.store.Main().From

	for i := len(sels) - 1; i >= 0; i-- {
		s := sels[i]
		from, to := s.From, s.To

		length, ok := b.rope.LineLength(to.Line.Int())
		if !ok {
			log.Panic().Int("line", to.Line.Int()).Msg("selection ends outside the buffer")
		}
		nlSlot := to.Col.Int() >= length

		fromCh := b.charOffset(from)
		endCh := b.charOffset(to) + 1
		if nlSlot {
			// The newline slot swallows the whole separator.
			endCh = b.rope.LineToChar(to.Line.Int())
		}
		if fromCh < endCh {
			b.rope.Remove(fromCh, endCh)
		}
		sels[i] = selection.NewPoint(from.Line.Int(), from.Col.Int())

		// Reseat the already-collapsed selections behind the removed span:
		// those landing on the splice line shift onto from's column, later
		// lines only move up.
		spliceLine := to.Line.Int()
		afterCol := to.Col.Int()
		if nlSlot {
			spliceLine++
			afterCol = 0
		}
		dLines := spliceLine - from.Line.Int()
		shift := afterCol - from.Col.Int() + 1
		for j := i + 1; j < len(sels); j++ {
			t := sels[j]
			if t.From.Line.Int() == spliceLine && t.From.Col.Int() > afterCol {
				if shift > 0 {
					t = t.NudgeLeft(shift)
				} else if shift < 0 {
					t = t.NudgeRight(-shift)
				}
			}
			if dLines > 0 && t.From.Line.Int() >= spliceLine {
				t = t.NudgeUp(dLines)
			}
			sels[j] = t
		}
	}

	// The collapsed main keeps its role under its new position.
	newMain := mainFrom
	for i, o := range old {
		if o.From == mainFrom {
			newMain = sels[i].From
		}
	}
	b.store.Replace(sels, newMain)

	final := b.store.Selections()
	deltas := make([]selection.Delta, 0, len(old))
	claimed := make(map[position.Position]bool)
	for i, o := range old {
		if b.contains(final, sels[i]) && !claimed[sels[i].From] {
			claimed[sels[i].From] = true
			deltas = append(deltas, selection.Changed(o, sels[i]))
		} else {
			deltas = append(deltas, selection.Removed(o.From))
		}
	}
	return append(deltas, b.lineHints(final)...)
}

func (b *Buffer) contains(sels []selection.Selection, s selection.Selection) bool {
	for _, t := range sels {
		if t.Equal(s) {
			return true
		}
	}
	return false
}

// lineHints emits LineChanged deltas for the distinct cursor lines of sels.
func (b *Buffer) lineHints(sels []selection.Selection) []selection.Delta {
	var deltas []selection.Delta
	seen := make(map[int]bool)
	for _, s := range sels {
		line := s.Cursor().Line.Int()
		if seen[line] {
			continue
		}
		seen[line] = true
		deltas = append(deltas, selection.ChangedLine(line, b.rope.Line(line)))
	}
	return deltas
}
