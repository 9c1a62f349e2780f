package position

import "testing"

func TestOrdering(t *testing.T) {
	cases := []struct {
		p, q Position
		cmp  int
	}{
		{Make(1, 1), Make(1, 1), 0},
		{Make(1, 1), Make(1, 2), -1},
		{Make(2, 1), Make(1, 50), 1},
		{Make(3, 7), Make(3, 9), -1},
	}
	for _, tc := range cases {
		if got := tc.p.Cmp(tc.q); got != tc.cmp {
			t.Errorf("%v.Cmp(%v): got %d, want %d", tc.p, tc.q, got, tc.cmp)
		}
	}
}

func TestSuccessorCrossesLineEnd(t *testing.T) {
	m := MapMetrics{2: 10, 3: 10}

	p := Make(2, 9)
	p, ok := p.Successor(m)
	if !ok || p != Make(2, 10) {
		t.Fatalf("first successor: got %v ok=%v", p, ok)
	}
	p, ok = p.Successor(m)
	if !ok || p != Make(3, 1) {
		t.Fatalf("second successor: got %v ok=%v", p, ok)
	}
}

func TestSuccessorPastLastSlot(t *testing.T) {
	m := MapMetrics{1: 5}
	if next, ok := Make(1, 5).Successor(m); ok {
		t.Errorf("successor of last slot: got %v, want none", next)
	}
}

func TestPredecessorCrossesLineStart(t *testing.T) {
	m := MapMetrics{2: 10}

	p := Make(3, 2)
	p, ok := p.Predecessor(m)
	if !ok || p != Make(3, 1) {
		t.Fatalf("first predecessor: got %v ok=%v", p, ok)
	}
	p, ok = p.Predecessor(m)
	if !ok || p != Make(2, 10) {
		t.Fatalf("second predecessor: got %v ok=%v", p, ok)
	}
}

func TestPredecessorAtOrigin(t *testing.T) {
	m := MapMetrics{1: 5}
	if prev, ok := Make(1, 1).Predecessor(m); ok {
		t.Errorf("predecessor of 1:1: got %v, want none", prev)
	}
}

func TestIsLineEnd(t *testing.T) {
	m := MapMetrics{1: 5}
	if Make(1, 4).IsLineEnd(m) {
		t.Error("1:4 should not be the line end of a 5-slot line")
	}
	if !Make(1, 5).IsLineEnd(m) {
		t.Error("1:5 should be the line end of a 5-slot line")
	}
}
