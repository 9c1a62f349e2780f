package selection

import "github.com/xonecas/selva/position"

// DeltaKind discriminates the observable changes an operation can produce.
type DeltaKind int

const (
	// DeltaSelectionChanged reports a selection, identified by its prior
	// state, transitioning to a new one.
	DeltaSelectionChanged DeltaKind = iota
	// DeltaSelectionAdded reports a selection entering the store.
	DeltaSelectionAdded
	// DeltaSelectionRemoved reports a selection leaving the store, merged
	// into a neighbour; ID is its prior From position.
	DeltaSelectionRemoved
	// DeltaLineChanged is a renderer hint carrying fresh line content.
	DeltaLineChanged
)

// String implements fmt.Stringer.
func (k DeltaKind) String() string {
	switch k {
	case DeltaSelectionChanged:
		return "selection-changed"
	case DeltaSelectionAdded:
		return "selection-added"
	case DeltaSelectionRemoved:
		return "selection-removed"
	case DeltaLineChanged:
		return "line-changed"
	}
	return "unknown"
}

// Delta describes a single observable change. Only the fields named by Kind
// are meaningful.
type Delta struct {
	Kind DeltaKind

	// Old and New carry a DeltaSelectionChanged transition.
	Old Selection
	New Selection

	// Sel carries a DeltaSelectionAdded selection.
	Sel Selection

	// ID identifies a DeltaSelectionRemoved selection by its prior From.
	ID position.Position

	// Line and Content carry a DeltaLineChanged hint.
	Line    int
	Content string
}

// Changed builds a SelectionChanged delta.
func Changed(old, now Selection) Delta {
	return Delta{Kind: DeltaSelectionChanged, Old: old, New: now}
}

// Added builds a SelectionAdded delta.
func Added(s Selection) Delta {
	return Delta{Kind: DeltaSelectionAdded, Sel: s}
}

// Removed builds a SelectionRemoved delta.
func Removed(id position.Position) Delta {
	return Delta{Kind: DeltaSelectionRemoved, ID: id}
}

// ChangedLine builds a LineChanged hint.
func ChangedLine(line int, content string) Delta {
	return Delta{Kind: DeltaLineChanged, Line: line, Content: content}
}
