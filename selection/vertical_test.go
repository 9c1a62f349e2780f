package selection

import (
	"testing"

	"github.com/xonecas/selva/position"
)

// Up movements

func TestMoveUpEnoughLength(t *testing.T) {
	m := position.MapMetrics{4: 40, 5: 30}
	s := quick(5, 10, 5, 20, true).MoveUp(1, true, m)
	assertSelection(t, s, quick(4, 20, 5, 10, false))
}

func TestMoveUpUntilFirstLine(t *testing.T) {
	m := position.MapMetrics{1: 40, 2: 40, 3: 40}
	s := quick(3, 10, 3, 20, true).MoveUp(322, true, m)
	assertSelection(t, s, quick(1, 20, 3, 10, false))
}

func TestMoveUpPreserveColumn(t *testing.T) {
	m := position.MapMetrics{2: 322, 3: 20, 4: 30, 5: 50}
	s := quick(5, 10, 5, 40, true)

	// A shorter line clamps the cursor to its end and remembers the column.
	s = s.MoveUp(1, true, m)
	assertSelection(t, s, quick(4, 30, 5, 10, false).WithSticky(40))

	// A long-enough line restores the remembered column and forgets it.
	s = s.MoveUp(2, true, m)
	assertSelection(t, s, quick(2, 40, 5, 10, false))
}

func TestMoveUpDropColumnOnLeftRight(t *testing.T) {
	m := position.MapMetrics{3: 50, 4: 30, 5: 50}
	s := quick(5, 10, 5, 40, true)

	s = s.MoveUp(1, true, m)
	assertSelection(t, s, quick(4, 30, 5, 10, false).WithSticky(40))

	// Horizontal movement forgets the remembered column.
	s = s.MoveLeft(1, true, m)
	assertSelection(t, s, quick(4, 29, 5, 10, false))

	s = s.MoveUp(1, true, m)
	assertSelection(t, s, quick(3, 29, 5, 10, false))
}

func TestMoveUpPreserveColumnDropSelectionOnce(t *testing.T) {
	m := position.MapMetrics{2: 322, 3: 20, 4: 30, 5: 50}
	s := quick(5, 10, 5, 40, true)

	// Collapsing to a point keeps the sticky memory.
	s = s.MoveUp(1, false, m)
	assertSelection(t, s, quick(4, 30, 4, 30, true).WithSticky(40))

	s = s.MoveUp(2, true, m)
	assertSelection(t, s, quick(2, 40, 4, 30, false))
}

// Down movements

func TestMoveDownEnoughLength(t *testing.T) {
	m := position.MapMetrics{4: 40, 5: 30}
	s := quick(4, 10, 4, 20, true).MoveDown(1, true, m)
	assertSelection(t, s, quick(4, 10, 5, 20, true))
}

func TestMoveDownUntilLastLine(t *testing.T) {
	m := position.MapMetrics{1: 40, 2: 50, 3: 50}
	s := quick(1, 10, 1, 20, true).MoveDown(420, true, m)
	assertSelection(t, s, quick(1, 10, 3, 20, true))
}

func TestMoveDownPreserveColumn(t *testing.T) {
	m := position.MapMetrics{2: 50, 3: 20, 4: 30, 5: 50}
	s := quick(2, 10, 2, 40, true)

	s = s.MoveDown(1, true, m)
	assertSelection(t, s, quick(2, 10, 3, 20, true).WithSticky(40))

	s = s.MoveDown(2, true, m)
	assertSelection(t, s, quick(2, 10, 5, 40, true))
}

func TestMoveDownDropColumnOnLeftRight(t *testing.T) {
	m := position.MapMetrics{3: 50, 4: 30, 5: 50}
	s := quick(3, 10, 3, 40, true)

	s = s.MoveDown(1, true, m)
	assertSelection(t, s, quick(3, 10, 4, 30, true).WithSticky(40))

	s = s.MoveLeft(1, true, m)
	assertSelection(t, s, quick(3, 10, 4, 29, true))

	s = s.MoveDown(1, true, m)
	assertSelection(t, s, quick(3, 10, 5, 29, true))
}

func TestMoveDownPreserveColumnDropSelectionOnce(t *testing.T) {
	m := position.MapMetrics{2: 50, 3: 20, 4: 30, 5: 50}
	s := quick(2, 10, 2, 40, true)

	s = s.MoveDown(1, false, m)
	assertSelection(t, s, quick(3, 20, 3, 20, true).WithSticky(40))

	s = s.MoveDown(2, true, m)
	assertSelection(t, s, quick(3, 20, 5, 40, true))
}

// Placing a copy below

func TestCreateUnderMultiLine(t *testing.T) {
	m := position.MapMetrics{1: 50, 2: 20, 3: 30, 4: 30, 5: 50, 6: 50, 7: 50, 8: 50, 9: 50}
	s := quick(1, 40, 3, 10, true)

	under, ok := s.Under(m)
	if !ok {
		t.Fatal("expected a selection below")
	}
	assertSelection(t, under, quick(5, 40, 7, 10, true))
}

func TestCreateUnderSingleLine(t *testing.T) {
	m := position.MapMetrics{2: 50, 3: 20, 4: 30}

	under, ok := quick(2, 10, 2, 20, false).Under(m)
	if !ok {
		t.Fatal("expected a selection below")
	}
	assertSelection(t, under, quick(3, 10, 3, 20, false))

	// A line too short for the columns is skipped.
	under, ok = quick(2, 10, 2, 29, false).Under(m)
	if !ok {
		t.Fatal("expected a selection below")
	}
	assertSelection(t, under, quick(4, 10, 4, 29, false))
}

func TestCreateUnderNoRoom(t *testing.T) {
	m := position.MapMetrics{2: 50, 3: 20, 4: 20}
	if under, ok := quick(2, 10, 2, 29, true).Under(m); ok {
		t.Errorf("expected no room below, got %+v", under)
	}
}

// Absolute cursor placement

func TestSetStraightAhead(t *testing.T) {
	forward := quick(4, 10, 6, 20, true).Set(6, 45, true)
	assertSelection(t, forward, quick(4, 10, 6, 45, true))

	backward := quick(4, 10, 6, 20, false).Set(4, 5, true)
	assertSelection(t, backward, quick(4, 5, 6, 20, false))
}

func TestSetShrink(t *testing.T) {
	forward := quick(4, 10, 6, 20, true).Set(5, 20, true)
	assertSelection(t, forward, quick(4, 10, 5, 20, true))

	backward := quick(4, 10, 6, 20, false).Set(5, 15, true)
	assertSelection(t, backward, quick(5, 15, 6, 20, false))
}

func TestSetReverse(t *testing.T) {
	forward := quick(4, 10, 6, 20, true).Set(3, 30, true)
	assertSelection(t, forward, quick(3, 30, 4, 10, false))

	backward := quick(4, 10, 6, 20, false).Set(6, 35, true)
	assertSelection(t, backward, quick(6, 20, 6, 35, true))
}

func TestSetNonExpand(t *testing.T) {
	forward := quick(4, 10, 6, 20, true).Set(6, 21, false)
	assertSelection(t, forward, quick(6, 21, 6, 21, true))

	backward := quick(4, 10, 6, 20, false).Set(2, 5, false)
	assertSelection(t, backward, quick(2, 5, 2, 5, true))
}
