package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record exposes column values by name for in-memory filtering and sorting.
type Record interface {
	Row
	Value(column string) any
}

// Match reports whether r satisfies the search and filters in p.
func Match(desc *Descriptor, p Params, r Record) bool {
	if term := p.Search(desc); term != "" {
		term = strings.ToLower(term)
		found := false
		for _, field := range desc.SearchFields {
			if strings.Contains(strings.ToLower(stringValue(r.Value(field))), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, f := range desc.Filters {
		switch f.Kind {
		case FilterMulti:
			if list := p.List(f.Param); len(list) > 0 && !slices.Contains(list, stringValue(r.Value(f.Param))) {
				return false
			}
		case FilterTriState:
			if want, ok := p.Flag(f.Param); ok {
				got, _ := r.Value(f.Param).(bool)
				if got != want {
					return false
				}
			}
		default:
			if want, ok := p.Field(f.Param); ok && !strings.EqualFold(stringValue(r.Value(f.Param)), want) {
				return false
			}
		}
	}
	return true
}

// Apply filters, sorts and pages records according to p.
func Apply[E Record](desc *Descriptor, p Params, records []E) Page[E] {
	matched := make([]E, 0, len(records))
	for _, r := range records {
		if Match(desc, p, r) {
			matched = append(matched, r)
		}
	}
	SortRecords(matched, p.SortBy, p.SortOrder == SortDesc)
	total := len(matched)
	start := min(p.Offset(), total)
	end := start + min(max(p.Limit, 0), total-start)
	return Page[E]{Rows: matched[start:end], Total: total}
}

// SortRecords sorts in place by column; ties keep ID order so pages are stable.
func SortRecords[E Record](records []E, column string, desc bool) {
	slices.SortStableFunc(records, func(a, b E) int {
		c := compareValues(a.Value(column), b.Value(column))
		if desc {
			c = -c
		}
		if c == 0 {
			return strings.Compare(a.RowID(), b.RowID())
		}
		return c
	})
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case int:
		bv, _ := b.(int)
		return cmp.Compare(av, bv)
	default:
		return strings.Compare(strings.ToLower(stringValue(a)), strings.ToLower(stringValue(b)))
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
