package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
	ParamPage      = "page"
	ParamLimit     = "limit"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ParseURL restores a state from query parameters. Missing or malformed values fall
// back to defaults; it never fails.
func ParseURL(desc *Descriptor, q url.Values) State {
	s := DefaultState(desc)
	s.Search = lastParam(q, desc.searchParam())

	for _, f := range desc.Filters {
		switch f.Kind {
		case FilterMulti:
			s.Filters[f.Key] = FilterValue{List: cleanList(f, q[f.Key])}
		case FilterTriState:
			s.Filters[f.Key] = normalizeValue(f, FilterValue{Value: lastParam(q, f.Key)})
		default:
			s.Filters[f.Key] = FilterValue{Value: lastParam(q, f.Key)}
		}
	}

	if by := lastParam(q, ParamSortBy); desc.IsSortable(by) {
		s.Sorting = SortSpec{{Field: by, Desc: strings.EqualFold(lastParam(q, ParamSortOrder), SortDesc)}}
	}

	if page, err := strconv.Atoi(lastParam(q, ParamPage)); err == nil && page >= 1 {
		s.Pagination.PageIndex = page - 1
	}
	if limit, err := strconv.Atoi(lastParam(q, ParamLimit)); err == nil && limit >= 1 {
		s.Pagination.PageSize = min(limit, desc.MaxSize())
	}
	s.Pagination = normalizePagination(desc, s.Pagination)
	return s
}

// EncodeURL writes the non-default parts of a state. ParseURL(EncodeURL(s)) == Normalize(s).
func EncodeURL(desc *Descriptor, s State) url.Values {
	s = Normalize(desc, s)
	q := url.Values{}
	if s.Search != "" {
		q.Set(desc.searchParam(), s.Search)
	}
	for _, f := range desc.Filters {
		v := s.Filters[f.Key]
		switch f.Kind {
		case FilterMulti:
			if len(v.List) > 0 {
				q.Set(f.Key, strings.Join(v.List, ","))
			}
		case FilterTriState:
			if v.Value != f.TriState.All {
				q.Set(f.Key, v.Value)
			}
		default:
			if v.Value != "" {
				q.Set(f.Key, v.Value)
			}
		}
	}
	if !s.Sorting.Equal(desc.Sort()) {
		q.Set(ParamSortBy, s.Sorting[0].Field)
		q.Set(ParamSortOrder, s.Sorting.Order())
	}
	if s.Pagination.PageIndex > 0 {
		q.Set(ParamPage, strconv.Itoa(s.Pagination.PageIndex+1))
	}
	if s.Pagination.PageSize != desc.PageSize() {
		q.Set(ParamLimit, strconv.Itoa(s.Pagination.PageSize))
	}
	return q
}

// lastParam returns the last value for key; htmx may append an included field after
// the one already present in the URL.
func lastParam(q url.Values, key string) string {
	values := q[key]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
