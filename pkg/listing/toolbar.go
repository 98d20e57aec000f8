package listing

import "strings"

// MergeFilters overlays a partial update on the current filter state and returns the
// complete, normalized result.
func MergeFilters(desc *Descriptor, current, update FilterState) FilterState {
	merged := current.Clone()
	for k, v := range update {
		merged[k] = v
	}
	return Normalize(desc, State{Filters: merged}).Filters
}

// ActiveFilterCount counts each selected multi-select value, and 1 for every tri-state
// or text filter away from its default.
func ActiveFilterCount(desc *Descriptor, filters FilterState) int {
	n := 0
	for _, f := range desc.Filters {
		v := normalizeValue(f, filters[f.Key])
		switch f.Kind {
		case FilterMulti:
			n += len(v.List)
		case FilterTriState:
			if v.Value != f.TriState.All {
				n++
			}
		default:
			if v.Value != "" {
				n++
			}
		}
	}
	return n
}

// Chip is one active filter value as shown in the toolbar.
type Chip struct {
	Key   string
	Field string
	Value string
	Label string
}

func ActiveChips(desc *Descriptor, filters FilterState) []Chip {
	var chips []Chip
	for _, f := range desc.Filters {
		v := normalizeValue(f, filters[f.Key])
		switch f.Kind {
		case FilterMulti:
			for _, item := range v.List {
				chips = append(chips, Chip{Key: f.Key, Field: f.Label, Value: item, Label: f.OptionLabel(item)})
			}
		case FilterTriState:
			if v.Value != f.TriState.All {
				chips = append(chips, Chip{Key: f.Key, Field: f.Label, Value: v.Value, Label: f.OptionLabel(v.Value)})
			}
		default:
			if v.Value != "" {
				chips = append(chips, Chip{Key: f.Key, Field: f.Label, Value: v.Value, Label: v.Value})
			}
		}
	}
	return chips
}

// ActiveFilterLabels renders one "Field: Label, Label" line per active filter.
func ActiveFilterLabels(desc *Descriptor, filters FilterState) []string {
	var (
		out    []string
		key    string
		labels []string
		field  string
	)
	flush := func() {
		if len(labels) > 0 {
			out = append(out, field+": "+strings.Join(labels, ", "))
		}
	}
	for _, chip := range ActiveChips(desc, filters) {
		if chip.Key != key {
			flush()
			key, field, labels = chip.Key, chip.Field, nil
		}
		labels = append(labels, chip.Label)
	}
	flush()
	return out
}

// WithoutChip returns filters with a single chip removed.
func WithoutChip(desc *Descriptor, filters FilterState, chip Chip) FilterState {
	f, ok := desc.Filter(chip.Key)
	if !ok {
		return Normalize(desc, State{Filters: filters}).Filters
	}
	v := normalizeValue(f, filters[chip.Key])
	if f.Kind == FilterMulti {
		var rest []string
		for _, item := range v.List {
			if item != chip.Value {
				rest = append(rest, item)
			}
		}
		return MergeFilters(desc, filters, FilterState{chip.Key: {List: rest}})
	}
	return MergeFilters(desc, filters, FilterState{chip.Key: defaultValue(f)})
}

// Toggle adds value to a multi-select filter, or removes it when already selected.
func Toggle(desc *Descriptor, filters FilterState, key, value string) FilterState {
	f, ok := desc.Filter(key)
	if !ok || f.Kind != FilterMulti {
		return Normalize(desc, State{Filters: filters}).Filters
	}
	current := normalizeValue(f, filters[key]).List
	var next []string
	found := false
	for _, item := range current {
		if item == value {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		next = append(next, value)
	}
	return MergeFilters(desc, filters, FilterState{key: {List: next}})
}
