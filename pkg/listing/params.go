package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	ParamWirePage      = "page"
	ParamWireLimit     = "limit"
	ParamWireSortBy    = "sort_by"
	ParamWireSortOrder = "sort_order"
)

// Params is the request derived from a State and sent to a Fetcher.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	// Fields holds search and multi-select/text filter values, keyed by param name.
	Fields map[string]string
	// Flags holds tri-state filters that are not "all".
	Flags map[string]bool
}

// Derive computes the request parameters for a state. It is pure.
func Derive(desc *Descriptor, s State) Params {
	s = Normalize(desc, s)
	p := Params{
		Page:      s.Pagination.PageIndex + 1,
		Limit:     s.Pagination.PageSize,
		SortBy:    s.Sorting[0].Field,
		SortOrder: s.Sorting.Order(),
		Fields:    map[string]string{},
		Flags:     map[string]bool{},
	}
	if term := strings.TrimSpace(s.Search); term != "" {
		for _, field := range desc.SearchFields {
			p.Fields[field] = term
		}
	}
	for _, f := range desc.Filters {
		v := s.Filters[f.Key]
		switch f.Kind {
		case FilterMulti:
			if len(v.List) > 0 {
				p.Fields[f.Param] = strings.Join(v.List, ",")
			}
		case FilterTriState:
			switch v.Value {
			case f.TriState.True:
				p.Flags[f.Param] = true
			case f.TriState.False:
				p.Flags[f.Param] = false
			}
		default:
			if term := strings.TrimSpace(v.Value); term != "" {
				p.Fields[f.Param] = term
			}
		}
	}
	return p
}

// Offset is the number of rows before the page, saturating at MaxOffset.
func (p Params) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > maxPageIndex(p.Limit) {
		return MaxOffset
	}
	return (p.Page - 1) * p.Limit
}

func (p Params) Field(name string) (string, bool) {
	v, ok := p.Fields[name]
	return v, ok
}

func (p Params) List(name string) []string {
	v, ok := p.Fields[name]
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func (p Params) Flag(name string) (value bool, ok bool) {
	value, ok = p.Flags[name]
	return value, ok
}

// Search returns the search term if any search field carries one.
func (p Params) Search(desc *Descriptor) string {
	for _, field := range desc.SearchFields {
		if v, ok := p.Fields[field]; ok {
			return v
		}
	}
	return ""
}

// Values encodes the params as the wire query string of the list endpoint.
func (p Params) Values() url.Values {
	q := url.Values{}
	q.Set(ParamWirePage, strconv.Itoa(p.Page))
	q.Set(ParamWireLimit, strconv.Itoa(p.Limit))
	if p.SortBy != "" {
		q.Set(ParamWireSortBy, p.SortBy)
		q.Set(ParamWireSortOrder, p.SortOrder)
	}
	for k, v := range p.Fields {
		q.Set(k, v)
	}
	for k, v := range p.Flags {
		q.Set(k, strconv.FormatBool(v))
	}
	return q
}

// Key is a canonical string for the params, stable across map ordering.
func (p Params) Key() string {
	return p.Values().Encode()
}

// Names lists the params that carry a value, sorted.
func (p Params) Names() []string {
	out := make([]string, 0, len(p.Fields)+len(p.Flags))
	for k := range p.Fields {
		out = append(out, k)
	}
	for k := range p.Flags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DecodeParams is the server-side inverse of Params.Values. Unknown names are ignored
// and malformed values fall back to defaults.
func DecodeParams(desc *Descriptor, q url.Values) Params {
	def := desc.Sort()[0]
	p := Params{
		Page:      1,
		Limit:     desc.PageSize(),
		SortBy:    def.Field,
		SortOrder: SortSpec{def}.Order(),
		Fields:    map[string]string{},
		Flags:     map[string]bool{},
	}
	if page, err := strconv.Atoi(lastParam(q, ParamWirePage)); err == nil && page >= 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(lastParam(q, ParamWireLimit)); err == nil && limit >= 1 {
		p.Limit = min(limit, desc.MaxSize())
	}
	p.Page = min(p.Page, maxPageIndex(p.Limit)+1)
	if by := lastParam(q, ParamWireSortBy); desc.IsSortable(by) {
		p.SortBy = by
		p.SortOrder = SortAsc
		if strings.EqualFold(lastParam(q, ParamWireSortOrder), SortDesc) {
			p.SortOrder = SortDesc
		}
	}
	for _, field := range desc.SearchFields {
		if v := strings.TrimSpace(lastParam(q, field)); v != "" {
			p.Fields[field] = v
		}
	}
	for _, f := range desc.Filters {
		switch f.Kind {
		case FilterMulti:
			if list := cleanList(f, q[f.Param]); len(list) > 0 {
				p.Fields[f.Param] = strings.Join(list, ",")
			}
		case FilterTriState:
			if b, err := strconv.ParseBool(lastParam(q, f.Param)); err == nil {
				p.Flags[f.Param] = b
			}
		default:
			if v := strings.TrimSpace(lastParam(q, f.Param)); v != "" {
				p.Fields[f.Param] = v
			}
		}
	}
	return p
}
