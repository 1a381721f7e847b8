package pokedex

import (
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// FilterState is the search term plus the type picker selection.
// SelectedTypes is either {TypeAll} or one or two concrete types.
type FilterState struct {
	SearchTerm    string   `json:"search_term"`
	SelectedTypes []string `json:"selected_types"`
}

// NewFilterState returns the initial state: no search, all types
func NewFilterState() FilterState {
	return FilterState{SelectedTypes: []string{TypeAll}}
}

// ConcreteTypes returns the selected types without the sentinel. An empty
// result means no type constraint.
func (f FilterState) ConcreteTypes() []string {
	out := make([]string, 0, len(f.SelectedTypes))
	for _, t := range f.SelectedTypes {
		if t != TypeAll {
			out = append(out, t)
		}
	}
	return out
}

// IsAll reports whether the state has no type constraint
func (f FilterState) IsAll() bool {
	return len(f.ConcreteTypes()) == 0
}

// WithSearchTerm returns a copy with the search term replaced
func (f FilterState) WithSearchTerm(term string) FilterState {
	return FilterState{
		SearchTerm:    term,
		SelectedTypes: append([]string(nil), f.SelectedTypes...),
	}
}

// PickType applies one click on the type picker and returns the new state.
//
// Picking TypeAll clears the selection. Picking a selected type removes it.
// Picking a third concrete type returns the receiver unchanged together with
// an error for which errors.IsResourceExhausted is true.
func (f FilterState) PickType(t string) (FilterState, error) {
	if t == TypeAll {
		return FilterState{SearchTerm: f.SearchTerm, SelectedTypes: []string{TypeAll}}, nil
	}
	if !IsKnownType(t) {
		return f, errors.InvalidArgumentf("unknown type %q", t).WithMeta("type", t)
	}

	selected := f.ConcreteTypes()
	for i, existing := range selected {
		if existing == t {
			selected = append(selected[:i], selected[i+1:]...)
			if len(selected) == 0 {
				selected = []string{TypeAll}
			}
			return FilterState{SearchTerm: f.SearchTerm, SelectedTypes: selected}, nil
		}
	}

	if len(selected) >= MaxSelectedTypes {
		return f, errors.ResourceExhausted("at most 2 types can be selected").
			WithMeta("type", t)
	}

	return FilterState{SearchTerm: f.SearchTerm, SelectedTypes: append(selected, t)}, nil
}

// FilterStateFromTypes replays picks for each type in order. An empty list
// or {TypeAll} yields the unconstrained state.
func FilterStateFromTypes(search string, types ...string) (FilterState, error) {
	state := NewFilterState().WithSearchTerm(search)
	for _, t := range types {
		if t == "" {
			continue
		}
		next, err := state.PickType(t)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
