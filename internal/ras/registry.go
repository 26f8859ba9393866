package ras

import "fmt"

// Registry owns immutable copies of the descriptor tables plus the only
// mutable state of the monitor: one 16-bit assertion mask per event table
// row. Masks record which sub-resources were asserted on the most recent
// poll; only 0->1 and 1->0 bit transitions produce emitted records, so a
// condition held across polls is reported exactly once per edge.
//
// Masks are updated exclusively from the single sweep goroutine, no
// locking. That discipline has to hold if sweeps ever move off one
// goroutine.
type Registry struct {
	errors      []ErrorSource
	events      []EventSource
	occurrences map[uint16]Occurrence
	masks       []uint16
}

// NewRegistry builds a Registry from the platform tables, verifying the
// expected row counts so a table edit that drops a socket or category is
// caught at startup instead of silently shrinking coverage.
func NewRegistry() (*Registry, error) {
	if len(errorSourceTable) != NumErrorSources {
		return nil, fmt.Errorf("error source table has %d rows, want %d",
			len(errorSourceTable), NumErrorSources)
	}
	if len(eventSourceTable) != NumEventSources {
		return nil, fmt.Errorf("event source table has %d rows, want %d",
			len(eventSourceTable), NumEventSources)
	}
	for i, src := range eventSourceTable {
		if src.Row != i {
			return nil, fmt.Errorf("event source %q has row %d at index %d", src.Label, src.Row, i)
		}
	}

	r := &Registry{
		errors:      append([]ErrorSource(nil), errorSourceTable...),
		events:      append([]EventSource(nil), eventSourceTable...),
		occurrences: make(map[uint16]Occurrence, len(occurrenceTable)),
		masks:       make([]uint16, NumEventSources),
	}
	for k, v := range occurrenceTable {
		r.occurrences[k] = v
	}
	return r, nil
}

// ErrorSources returns the error report table.
func (r *Registry) ErrorSources() []ErrorSource { return r.errors }

// EventSources returns the event report table.
func (r *Registry) EventSources() []EventSource { return r.events }

// Occurrence looks up the component/template entry for a bus error key.
func (r *Registry) Occurrence(key uint16) (Occurrence, bool) {
	occ, ok := r.occurrences[key]
	return occ, ok
}

// Mask returns the current assertion mask of an event row.
func (r *Registry) Mask(row int) uint16 { return r.masks[row] }

// Transition is a single bit edge observed between two polls of an event
// row.
type Transition struct {
	Bit      int
	Asserted bool
}

// Update compares next against the stored mask of row over the given bit
// positions, flips the stored bits that changed, and returns the edges in
// bit-list order. Bits outside the list are left untouched. Feeding the
// same mask twice yields no transitions on the second call.
func (r *Registry) Update(row int, next uint16, bits []int) []Transition {
	var edges []Transition
	for _, bit := range bits {
		b := uint16(1) << bit
		cur := r.masks[row]
		switch {
		case next&b != 0 && cur&b == 0:
			r.masks[row] = cur | b
			edges = append(edges, Transition{Bit: bit, Asserted: true})
		case next&b == 0 && cur&b != 0:
			r.masks[row] = cur &^ b
			edges = append(edges, Transition{Bit: bit, Asserted: false})
		}
	}
	return edges
}
