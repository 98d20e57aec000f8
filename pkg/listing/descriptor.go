// Package listing holds the query state of a list page: search, filters, sorting and
// pagination, their URL form, and the request parameters sent to a fetcher.
package listing

import (
	"fmt"
	"strings"
)

type FilterKind int

const (
	// FilterMulti is a multi-select filter, transported comma-joined.
	FilterMulti FilterKind = iota
	// FilterTriState has exactly three values: unset, true and false.
	FilterTriState
	// FilterText is a single free value.
	FilterText
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Option struct {
	Value string
	Label string
}

// TriState names the URL values of a tri-state filter.
type TriState struct {
	All   string
	True  string
	False string
}

var (
	SystemTriState  = TriState{All: "all", True: "system", False: "regular"}
	DefaultTriState = TriState{All: "all", True: "default", False: "custom"}
)

type FilterField struct {
	// Key is used both in the URL and as the FilterState key.
	Key string
	// Param is the name of the outgoing request parameter.
	Param    string
	Label    string
	Kind     FilterKind
	Options  []Option
	TriState TriState
}

func (f FilterField) OptionLabel(value string) string {
	for _, o := range f.Options {
		if o.Value == value && o.Label != "" {
			return o.Label
		}
	}
	if f.Kind == FilterTriState {
		switch value {
		case f.TriState.True:
			return capitalize(f.TriState.True)
		case f.TriState.False:
			return capitalize(f.TriState.False)
		}
	}
	return value
}

func (f FilterField) allows(value string) bool {
	if len(f.Options) == 0 {
		return true
	}
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// PageResetPolicy decides what happens to the page index when search or filters change.
type PageResetPolicy int

const (
	KeepPage PageResetPolicy = iota
	ResetPageOnChange
)

type StatusTransition struct {
	From  string
	To    string
	Label string
}

// Descriptor is the per-entity field mapping every list page is parameterised with.
type Descriptor struct {
	Name              string
	SearchParam       string
	SearchFields      []string
	Filters           []FilterField
	Sortable          []string
	DefaultSort       SortSpec
	DefaultPageSize   int
	MaxPageSize       int
	PageReset         PageResetPolicy
	StatusTransitions []StatusTransition
}

func (d *Descriptor) Filter(key string) (FilterField, bool) {
	for _, f := range d.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterField{}, false
}

func (d *Descriptor) FilterByParam(param string) (FilterField, bool) {
	for _, f := range d.Filters {
		if f.Param == param {
			return f, true
		}
	}
	return FilterField{}, false
}

func (d *Descriptor) searchParam() string {
	if d.SearchParam == "" {
		return "search"
	}
	return d.SearchParam
}

func (d *Descriptor) PageSize() int {
	if d.DefaultPageSize <= 0 {
		return DefaultPageSize
	}
	return d.DefaultPageSize
}

func (d *Descriptor) MaxSize() int {
	if d.MaxPageSize <= 0 {
		return MaxPageSize
	}
	return d.MaxPageSize
}

func (d *Descriptor) Sort() SortSpec {
	if len(d.DefaultSort) == 0 {
		return SortSpec{{Field: "created_at", Desc: true}}
	}
	return SortSpec{d.DefaultSort[0]}
}

// IsSortable reports whether field may be used as sort_by. An empty whitelist accepts
// the default sort field only.
func (d *Descriptor) IsSortable(field string) bool {
	if field == "" {
		return false
	}
	if field == d.Sort()[0].Field {
		return true
	}
	for _, s := range d.Sortable {
		if s == field {
			return true
		}
	}
	return false
}

// Transitions returns the status changes allowed from the given status.
func (d *Descriptor) Transitions(from string) []StatusTransition {
	var out []StatusTransition
	for _, t := range d.StatusTransitions {
		if t.From == from {
			out = append(out, t)
		}
	}
	return out
}

func (d *Descriptor) CanTransition(from, to string) bool {
	for _, t := range d.Transitions(from) {
		if t.To == to {
			return true
		}
	}
	return false
}

var reservedKeys = map[string]struct{}{
	ParamSortBy:    {},
	ParamSortOrder: {},
	ParamPage:      {},
	ParamLimit:     {},
}

var reservedParams = map[string]struct{}{
	ParamWirePage:      {},
	ParamWireLimit:     {},
	ParamWireSortBy:    {},
	ParamWireSortOrder: {},
}

// Validate checks the descriptor for key collisions and incomplete tri-state filters.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("listing: descriptor name is required")
	}
	keys := map[string]struct{}{d.searchParam(): {}}
	params := map[string]struct{}{}
	for _, p := range d.SearchFields {
		if _, ok := reservedParams[p]; ok {
			return fmt.Errorf("listing %s: search field %q collides with a reserved parameter", d.Name, p)
		}
		params[p] = struct{}{}
	}
	for _, f := range d.Filters {
		if f.Key == "" || f.Param == "" {
			return fmt.Errorf("listing %s: filter needs both key and param", d.Name)
		}
		if _, ok := reservedKeys[f.Key]; ok {
			return fmt.Errorf("listing %s: filter key %q is reserved", d.Name, f.Key)
		}
		if _, ok := keys[f.Key]; ok {
			return fmt.Errorf("listing %s: duplicate filter key %q", d.Name, f.Key)
		}
		keys[f.Key] = struct{}{}
		if _, ok := reservedParams[f.Param]; ok {
			return fmt.Errorf("listing %s: filter param %q is reserved", d.Name, f.Param)
		}
		if _, ok := params[f.Param]; ok {
			return fmt.Errorf("listing %s: duplicate param %q", d.Name, f.Param)
		}
		params[f.Param] = struct{}{}
		if f.Kind == FilterTriState {
			ts := f.TriState
			if ts.All == "" || ts.True == "" || ts.False == "" || ts.True == ts.False || ts.All == ts.True || ts.All == ts.False {
				return fmt.Errorf("listing %s: tri-state filter %q needs three distinct values", d.Name, f.Key)
			}
		}
	}
	if d.MaxSize() < d.PageSize() {
		return fmt.Errorf("listing %s: max page size %d is below default %d", d.Name, d.MaxSize(), d.PageSize())
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
