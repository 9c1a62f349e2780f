// Package selection implements the selection algebra of the engine: ranged
// selections with a directional cursor end, the movement primitives they
// respond to, and the ordered disjoint store that keeps an arbitrary number
// of them coherent.
package selection

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/selva/position"
)

// Direction marks which end of a selection carries the active cursor.
type Direction int

const (
	// Forward places the cursor on To.
	Forward Direction = iota
	// Backward places the cursor on From.
	Backward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

func (d Direction) opposite() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Selection is an inclusive slot range [From, To] with the active cursor on
// the end named by Dir. A selection of length one is a bare cursor and is
// always Forward. Movement is functional: every primitive returns a new
// value and never consults the store.
type Selection struct {
	From position.Position
	To   position.Position
	Dir  Direction

	// sticky remembers the column a vertical move wants to return to after
	// a shorter line clamped the cursor; 0 means no memory.
	sticky position.Index
}

// New builds a selection from raw 1-based coordinates. From must not be
// after To; points are normalized to Forward.
func New(fromLine, fromCol, toLine, toCol int, dir Direction) Selection {
	s := Selection{
		From: position.Make(fromLine, fromCol),
		To:   position.Make(toLine, toCol),
		Dir:  dir,
	}
	if s.To.Less(s.From) {
		log.Panic().
			Str("from", fmt.Sprintf("%d:%d", fromLine, fromCol)).
			Str("to", fmt.Sprintf("%d:%d", toLine, toCol)).
			Msg("selection built with from after to")
	}
	if s.From == s.To {
		s.Dir = Forward
	}
	return s
}

// NewPoint builds a bare cursor.
func NewPoint(line, col int) Selection {
	return New(line, col, line, col, Forward)
}

// WithSticky returns a copy of s carrying the given sticky column.
func (s Selection) WithSticky(col int) Selection {
	s.sticky = position.MakeIndex(col)
	return s
}

// StickyColumn reports the remembered vertical-movement column, if any.
func (s Selection) StickyColumn() (position.Index, bool) {
	return s.sticky, s.sticky != 0
}

// Cursor returns the active end of the selection.
func (s Selection) Cursor() position.Position {
	if s.Dir == Backward {
		return s.From
	}
	return s.To
}

// Anchor returns the end opposite the cursor.
func (s Selection) Anchor() position.Position {
	if s.Dir == Backward {
		return s.To
	}
	return s.From
}

// IsPoint reports whether the selection is a bare cursor.
func (s Selection) IsPoint() bool { return s.From == s.To }

// Equal reports full structural equality, sticky column included.
func (s Selection) Equal(o Selection) bool { return s == o }

// String implements fmt.Stringer.
func (s Selection) String() string {
	return fmt.Sprintf("%d:%d-%d:%d %s",
		s.From.Line.Int(), s.From.Col.Int(), s.To.Line.Int(), s.To.Col.Int(), s.Dir)
}

// withCursor places the cursor on p. When extend is false the selection
// collapses to a bare cursor there; otherwise the anchor holds and the
// selection flips if the cursor crossed it.
func (s Selection) withCursor(p position.Position, extend bool) Selection {
	if !extend {
		return Selection{From: p, To: p, Dir: Forward}
	}
	if s.Dir == Backward {
		s.From = p
	} else {
		s.To = p
	}
	if s.To.Less(s.From) {
		s.From, s.To = s.To, s.From
		s.Dir = s.Dir.opposite()
	}
	if s.From == s.To {
		s.Dir = Forward
	}
	return s
}

// lineLength resolves a line against the metrics; an unresolvable line is a
// bug in the caller, not a recoverable state.
func lineLength(m position.LineMetrics, line int) int {
	length, ok := m.LineLength(line)
	if !ok {
		log.Panic().Int("line", line).Msg("selection movement over unknown line")
	}
	return length
}

// movePointLeft walks p backward by n slots, descending over line ends and
// clamping at the first slot of the buffer.
func movePointLeft(p position.Position, n int, m position.LineMetrics) position.Position {
	for n > 0 {
		col := p.Col.Int()
		if n < col {
			p.Col = p.Col.Sub(n)
			break
		}
		if p.Line.Int() == 1 {
			return position.Make(1, 1)
		}
		// col-1 steps to the first column plus one across the newline.
		n -= col
		prev := p.Line.Int() - 1
		p = position.Position{Line: position.MakeIndex(prev), Col: position.MakeIndex(lineLength(m, prev))}
	}
	return p
}

// movePointRight walks p forward by n slots, clamping at the end-of-buffer
// slot when no further line exists.
func movePointRight(p position.Position, n int, m position.LineMetrics) position.Position {
	for n > 0 {
		length := lineLength(m, p.Line.Int())
		remaining := length - p.Col.Int()
		if n <= remaining {
			p.Col = p.Col.Add(n)
			break
		}
		if _, ok := m.LineLength(p.Line.Int() + 1); !ok {
			p.Col = position.MakeIndex(length)
			break
		}
		n -= remaining + 1
		p = position.Position{Line: p.Line.Add(1), Col: 1}
	}
	return p
}

// MoveLeft moves the cursor n slots backward. Without extend the selection
// collapses to the moved cursor. Horizontal movement forgets any sticky
// column.
func (s Selection) MoveLeft(n int, extend bool, m position.LineMetrics) Selection {
	moved := s.withCursor(movePointLeft(s.Cursor(), n, m), extend)
	moved.sticky = 0
	return moved
}

// MoveRight moves the cursor n slots forward; see MoveLeft.
func (s Selection) MoveRight(n int, extend bool, m position.LineMetrics) Selection {
	moved := s.withCursor(movePointRight(s.Cursor(), n, m), extend)
	moved.sticky = 0
	return moved
}

// verticalTarget resolves the column a vertical move lands on and the
// sticky memory it leaves behind.
func (s Selection) verticalTarget(cur position.Position, line int, m position.LineMetrics) (position.Index, position.Index) {
	length := lineLength(m, line)
	if s.sticky != 0 {
		if s.sticky.Int() <= length {
			return s.sticky, 0
		}
		return position.MakeIndex(length), s.sticky
	}
	if cur.Col.Int() > length {
		return position.MakeIndex(length), cur.Col
	}
	return cur.Col, 0
}

// MoveUp moves the cursor n lines up, saturating at line 1. A shorter
// target line clamps the cursor to its end slot and records the desired
// column; a later vertical move onto a long-enough line restores it.
func (s Selection) MoveUp(n int, extend bool, m position.LineMetrics) Selection {
	cur := s.Cursor()
	line := cur.Line.Sub(n)
	col, sticky := s.verticalTarget(cur, line.Int(), m)
	moved := s.withCursor(position.Position{Line: line, Col: col}, extend)
	moved.sticky = sticky
	return moved
}

// MoveDown moves the cursor n lines down, saturating at the last line; see
// MoveUp for the sticky-column contract.
func (s Selection) MoveDown(n int, extend bool, m position.LineMetrics) Selection {
	cur := s.Cursor()
	line := cur.Line.Add(n)
	if last := m.LineCount(); line.Int() > last {
		line = position.MakeIndex(last)
	}
	col, sticky := s.verticalTarget(cur, line.Int(), m)
	moved := s.withCursor(position.Position{Line: line, Col: col}, extend)
	moved.sticky = sticky
	return moved
}

// SwapCursor moves the cursor to the opposite end. A bare cursor is left
// untouched.
func (s Selection) SwapCursor() Selection {
	if s.IsPoint() {
		return s
	}
	s.Dir = s.Dir.opposite()
	return s
}

// Set places the cursor on an absolute position, extending or collapsing
// exactly like a movement would.
func (s Selection) Set(line, col int, extend bool) Selection {
	moved := s.withCursor(position.Make(line, col), extend)
	moved.sticky = 0
	return moved
}

// Under searches below s for the nearest pair of lines that can hold a copy
// of it: the same column span, the same line width, the same direction.
// The search starts one full selection height below To so stacked copies
// never touch. Reports false when no line fits before the buffer ends.
func (s Selection) Under(m position.LineMetrics) (Selection, bool) {
	width := s.To.Line.Int() - s.From.Line.Int()
	last := m.LineCount()
	for i := s.To.Line.Int() + width + 1; i <= last; i++ {
		top, ok := m.LineLength(i - width)
		if !ok {
			return Selection{}, false
		}
		bottom, ok := m.LineLength(i)
		if !ok {
			return Selection{}, false
		}
		if top >= s.From.Col.Int() && bottom >= s.To.Col.Int() {
			next := Selection{
				From: position.Position{Line: position.MakeIndex(i - width), Col: s.From.Col},
				To:   position.Position{Line: position.MakeIndex(i), Col: s.To.Col},
				Dir:  s.Dir,
			}
			return next, true
		}
	}
	return Selection{}, false
}

// NudgeLeft translates the selection k columns left in reaction to an edit
// elsewhere on its line. To follows only when it shares From's line; the
// caller guarantees columns stay positive.
func (s Selection) NudgeLeft(k int) Selection {
	sameLine := s.From.Line == s.To.Line
	s.From.Col = s.From.Col.Sub(k)
	if sameLine {
		s.To.Col = s.To.Col.Sub(k)
	}
	return s
}

// NudgeRight translates the selection k columns right; see NudgeLeft.
func (s Selection) NudgeRight(k int) Selection {
	sameLine := s.From.Line == s.To.Line
	s.From.Col = s.From.Col.Add(k)
	if sameLine {
		s.To.Col = s.To.Col.Add(k)
	}
	return s
}

// NudgeUp translates the selection k lines up.
func (s Selection) NudgeUp(k int) Selection {
	s.From.Line = s.From.Line.Sub(k)
	s.To.Line = s.To.Line.Sub(k)
	return s
}
