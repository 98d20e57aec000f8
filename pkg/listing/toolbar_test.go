package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMergeFilters(t *testing.T) {
	desc := templatesDescriptor()
	current := DefaultFilters(desc)
	current["status"] = Multi("active")

	merged := MergeFilters(desc, current, FilterState{"isSystem": Single("system")})
	require.Equal(t, []string{"active"}, merged["status"].List)
	require.Equal(t, "system", merged["isSystem"].Value)
	require.Len(t, merged, len(desc.Filters))
	require.Equal(t, []string{"active"}, current["status"].List)
}

func sameFilters(a, b FilterState) bool {
	return State{Filters: a}.Equal(State{Filters: b})
}

func TestFilters_Idempotent(t *testing.T) {
	desc := templatesDescriptor()
	require.True(t, sameFilters(DefaultFilters(desc), DefaultFilters(desc)))

	current := DefaultFilters(desc)
	current["status"] = Multi("draft")
	partial := FilterState{"isSystem": Single("regular"), "status": Multi("active")}
	once := MergeFilters(desc, current, partial)
	require.True(t, sameFilters(once, MergeFilters(desc, once, partial)))

	cleared := MergeFilters(desc, once, DefaultFilters(desc))
	require.True(t, sameFilters(DefaultFilters(desc), cleared))
	require.True(t, sameFilters(cleared, MergeFilters(desc, cleared, DefaultFilters(desc))))
	require.Zero(t, ActiveFilterCount(desc, cleared))
}

func TestActiveFilterCount(t *testing.T) {
	desc := templatesDescriptor()
	f := DefaultFilters(desc)
	require.Zero(t, ActiveFilterCount(desc, f))

	f["status"] = Multi("active", "draft")
	f["isSystem"] = Single("regular")
	f["serviceId"] = Single("svc")
	require.Equal(t, 4, ActiveFilterCount(desc, f))
}

func TestActiveChipsAndRemoval(t *testing.T) {
	desc := templatesDescriptor()
	f := DefaultFilters(desc)
	f["status"] = Multi("active", "draft")
	f["isSystem"] = Single("system")

	chips := ActiveChips(desc, f)
	require.Len(t, chips, 3)
	require.Equal(t, "Active", chips[0].Label)
	require.Equal(t, "System", chips[2].Label)

	f = WithoutChip(desc, f, chips[0])
	require.Equal(t, []string{"draft"}, f["status"].List)
	f = WithoutChip(desc, f, chips[2])
	require.Equal(t, "all", f["isSystem"].Value)
}

func TestActiveFilterLabels(t *testing.T) {
	desc := templatesDescriptor()
	f := DefaultFilters(desc)
	f["status"] = Multi("active", "draft")
	f["isSystem"] = Single("regular")
	require.Equal(t, []string{"Status: Active, Draft", "Origin: Regular"}, ActiveFilterLabels(desc, f))
	require.Empty(t, ActiveFilterLabels(desc, DefaultFilters(desc)))
}

func TestToggle(t *testing.T) {
	desc := templatesDescriptor()
	f := Toggle(desc, DefaultFilters(desc), "status", "draft")
	require.Equal(t, []string{"draft"}, f["status"].List)
	f = Toggle(desc, f, "status", "draft")
	require.Nil(t, f["status"].List)
}

type fakeRecord struct {
	testRow
	name      string
	isSystem  bool
	createdAt time.Time
}

func (r fakeRecord) Value(column string) any {
	switch column {
	case "name", "display_name":
		return r.name
	case "status":
		return r.status
	case "is_system":
		return r.isSystem
	case "created_at":
		return r.createdAt
	}
	return nil
}

func TestApply(t *testing.T) {
	desc := templatesDescriptor()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []fakeRecord{
		{testRow{id: "a", status: "active"}, "Welcome", true, base},
		{testRow{id: "b", status: "draft"}, "Password reset", false, base.Add(time.Hour)},
		{testRow{id: "c", status: "active"}, "Welcome back", false, base.Add(2 * time.Hour)},
		{testRow{id: "d", status: "inactive"}, "Invoice", false, base.Add(3 * time.Hour)},
	}

	s := DefaultState(desc)
	page := Apply(desc, Derive(desc, s), records)
	require.Equal(t, 4, page.Total)
	require.Equal(t, "d", page.Rows[0].RowID())

	s.Search = "WELCOME"
	page = Apply(desc, Derive(desc, s), records)
	require.Equal(t, 2, page.Total)

	s.Filters["isSystem"] = Single("regular")
	page = Apply(desc, Derive(desc, s), records)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "c", page.Rows[0].RowID())

	s = DefaultState(desc)
	s.Filters["status"] = Multi("active", "inactive")
	s.Sorting = SortSpec{{Field: "name"}}
	s.Pagination = Pagination{PageIndex: 1, PageSize: 2}
	page = Apply(desc, Derive(desc, s), records)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Rows, 1)
	require.Equal(t, "c", page.Rows[0].RowID())
}
