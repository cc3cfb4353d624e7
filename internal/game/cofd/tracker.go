package cofd

import (
	"slices"
)

// TrackerState is the mark in one box of a tracker.
type TrackerState int

// Damage severities, least to most severe. Single-state trackers use Marked.
const (
	Bashing    TrackerState = 1
	Lethal     TrackerState = 2
	Aggravated TrackerState = 3

	Marked = Lethal
)

// String returns the damage name.
func (s TrackerState) String() string {
	switch s {
	case Bashing:
		return "bashing"
	case Lethal:
		return "lethal"
	case Aggravated:
		return "aggravated"
	default:
		return "unknown"
	}
}

// Tracker is a row of boxes such as Health, Willpower or Beats.
//
// Invariant: len(Values) <= Max; Values is ordered most severe first.
type Tracker struct {
	Max    int            `json:"max"`
	Values []TrackerState `json:"values"`
}

// NewTracker returns an empty tracker with the given number of boxes.
func NewTracker(boxes int) Tracker {
	return Tracker{Max: max(boxes, 0), Values: []TrackerState{}}
}

func (t *Tracker) sort() {
	slices.SortStableFunc(t.Values, func(a, b TrackerState) int { return int(b) - int(a) })
}

// Add marks one box with state.
//
// When every box is already marked, the least severe mark below Aggravated is upgraded
// one step instead, as damage overflow works for Health.
// Postcondition: Returns false when the tracker could not absorb the mark.
func (t *Tracker) Add(state TrackerState) bool {
	if len(t.Values) < t.Max {
		t.Values = append(t.Values, state)
		t.sort()
		return true
	}
	for i := len(t.Values) - 1; i >= 0; i-- {
		if t.Values[i] < Aggravated {
			t.Values[i]++
			t.sort()
			return true
		}
	}
	return false
}

// Remove clears one box marked with state.
//
// Postcondition: Returns false when no box carried state.
func (t *Tracker) Remove(state TrackerState) bool {
	i := slices.Index(t.Values, state)
	if i < 0 {
		return false
	}
	t.Values = slices.Delete(t.Values, i, i+1)
	return true
}

// SetMax changes the number of boxes, dropping the least severe marks that no longer fit.
func (t *Tracker) SetMax(boxes int) {
	t.Max = max(boxes, 0)
	if len(t.Values) > t.Max {
		t.Values = t.Values[:t.Max]
	}
}

// SetMarked sets a single-state tracker to exactly n marked boxes, clamped to 0..Max.
func (t *Tracker) SetMarked(n int) {
	n = max(0, min(n, t.Max))
	t.Values = make([]TrackerState, n)
	for i := range t.Values {
		t.Values[i] = Marked
	}
}

// Count returns the number of boxes marked with state.
func (t Tracker) Count(state TrackerState) int {
	n := 0
	for _, v := range t.Values {
		if v == state {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of t.
func (t Tracker) Clone() Tracker {
	t.Values = slices.Clone(t.Values)
	if t.Values == nil {
		t.Values = []TrackerState{}
	}
	return t
}
