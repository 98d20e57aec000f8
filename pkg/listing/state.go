package listing

import (
	"math"
	"slices"
	"strings"
)

// MaxOffset bounds the row offset a page can address, so page*size never overflows
// and always fits a postgres OFFSET.
const MaxOffset = math.MaxInt32

// maxPageIndex is the last page index whose offset stays within MaxOffset.
func maxPageIndex(size int) int {
	if size < 1 {
		return 0
	}
	return MaxOffset / size
}

type SortField struct {
	Field string
	Desc  bool
}

// SortSpec is ordered; only the first entry drives the request.
type SortSpec []SortField

func (s SortSpec) Equal(o SortSpec) bool {
	return slices.Equal(s, o)
}

func (s SortSpec) Order() string {
	if len(s) > 0 && s[0].Desc {
		return SortDesc
	}
	return SortAsc
}

type Pagination struct {
	PageIndex int
	PageSize  int
}

// FilterValue holds a multi-select list or a single value depending on the field kind.
type FilterValue struct {
	List  []string
	Value string
}

func Multi(values ...string) FilterValue {
	return FilterValue{List: values}
}

func Single(value string) FilterValue {
	return FilterValue{Value: value}
}

type FilterState map[string]FilterValue

func (s FilterState) Clone() FilterState {
	out := make(FilterState, len(s))
	for k, v := range s {
		out[k] = FilterValue{List: slices.Clone(v.List), Value: v.Value}
	}
	return out
}

type State struct {
	Search     string
	Filters    FilterState
	Sorting    SortSpec
	Pagination Pagination
}

func (s State) Clone() State {
	return State{
		Search:     s.Search,
		Filters:    s.Filters.Clone(),
		Sorting:    slices.Clone(s.Sorting),
		Pagination: s.Pagination,
	}
}

func (s State) Equal(o State) bool {
	if s.Search != o.Search || s.Pagination != o.Pagination || !s.Sorting.Equal(o.Sorting) {
		return false
	}
	if len(s.Filters) != len(o.Filters) {
		return false
	}
	for k, v := range s.Filters {
		w, ok := o.Filters[k]
		if !ok || v.Value != w.Value || !slices.Equal(v.List, w.List) {
			return false
		}
	}
	return true
}

// DefaultFilters returns the filter state with every declared field at its default.
func DefaultFilters(desc *Descriptor) FilterState {
	out := make(FilterState, len(desc.Filters))
	for _, f := range desc.Filters {
		out[f.Key] = defaultValue(f)
	}
	return out
}

func defaultValue(f FilterField) FilterValue {
	if f.Kind == FilterTriState {
		return FilterValue{Value: f.TriState.All}
	}
	return FilterValue{}
}

func DefaultState(desc *Descriptor) State {
	return State{
		Filters:    DefaultFilters(desc),
		Sorting:    desc.Sort(),
		Pagination: Pagination{PageIndex: 0, PageSize: desc.PageSize()},
	}
}

// Normalize brings a state into canonical form: every declared filter present,
// undeclared ones dropped, multi-select lists split, deduplicated and restricted to
// known options, sorting reduced to one whitelisted entry and pagination clamped.
func Normalize(desc *Descriptor, s State) State {
	out := State{
		Search:     s.Search,
		Filters:    make(FilterState, len(desc.Filters)),
		Sorting:    normalizeSort(desc, s.Sorting),
		Pagination: normalizePagination(desc, s.Pagination),
	}
	for _, f := range desc.Filters {
		v, ok := s.Filters[f.Key]
		if !ok {
			out.Filters[f.Key] = defaultValue(f)
			continue
		}
		out.Filters[f.Key] = normalizeValue(f, v)
	}
	return out
}

func normalizeValue(f FilterField, v FilterValue) FilterValue {
	switch f.Kind {
	case FilterMulti:
		return FilterValue{List: cleanList(f, v.List)}
	case FilterTriState:
		switch v.Value {
		case f.TriState.True, f.TriState.False:
			return FilterValue{Value: v.Value}
		}
		return FilterValue{Value: f.TriState.All}
	default:
		return FilterValue{Value: v.Value}
	}
}

func cleanList(f FilterField, values []string) []string {
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" || !f.allows(part) || slices.Contains(out, part) {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func normalizeSort(desc *Descriptor, s SortSpec) SortSpec {
	if len(s) == 0 || !desc.IsSortable(s[0].Field) {
		return desc.Sort()
	}
	return SortSpec{s[0]}
}

func normalizePagination(desc *Descriptor, p Pagination) Pagination {
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = desc.PageSize()
	case p.PageSize > desc.MaxSize():
		p.PageSize = desc.MaxSize()
	}
	p.PageIndex = min(p.PageIndex, maxPageIndex(p.PageSize))
	return p
}
