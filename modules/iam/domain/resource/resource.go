// Package resource holds what every IAM entity shares: the entity contract, the
// repository port, domain errors and change events.
package resource

import (
	"context"
	"time"

	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/serrors"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
)

var (
	ErrNotFound      = serrors.NewError("NOT_FOUND", "resource not found", "Errors.NotFound")
	ErrProtected     = serrors.NewError("PROTECTED", "system resources cannot be modified", "Errors.Protected")
	ErrInvalidStatus = serrors.NewError("INVALID_STATUS", "status change is not allowed", "Errors.InvalidStatus")
)

// Entity is implemented by pointers to the entity structs. WithStatus returns a copy.
type Entity[E any] interface {
	listing.Record
	WithStatus(status string, at time.Time) E
}

type Repository[E Entity[E]] interface {
	List(ctx context.Context, params listing.Params) (listing.Page[E], error)
	GetByID(ctx context.Context, id string) (E, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// ChangeKind says what happened to a resource.
type ChangeKind string

const (
	StatusChanged ChangeKind = "status"
	Deleted       ChangeKind = "delete"
)

// Changed is published on the event bus after every successful mutation.
type Changed struct {
	Resource string
	ID       string
	Kind     ChangeKind
	Status   string
}

// ActiveTransitions is the status lifecycle shared by most entities.
var ActiveTransitions = []listing.StatusTransition{
	{From: StatusActive, To: StatusInactive, Label: "Deactivate"},
	{From: StatusInactive, To: StatusActive, Label: "Activate"},
	{From: StatusDraft, To: StatusActive, Label: "Publish"},
}

// StatusOptions lists the options of the standard status filter.
func StatusOptions(withDraft bool) []listing.Option {
	opts := []listing.Option{
		{Value: StatusActive, Label: "Active"},
		{Value: StatusInactive, Label: "Inactive"},
	}
	if withDraft {
		opts = append(opts, listing.Option{Value: StatusDraft, Label: "Draft"})
	}
	return opts
}

// StatusFilter is the multi-select status filter every entity carries.
func StatusFilter(withDraft bool) listing.FilterField {
	return listing.FilterField{
		Key:     "status",
		Param:   "status",
		Label:   "Status",
		Kind:    listing.FilterMulti,
		Options: StatusOptions(withDraft),
	}
}

// SystemFilter is the isSystem tri-state filter mapped to is_system.
func SystemFilter() listing.FilterField {
	return listing.FilterField{
		Key:      "isSystem",
		Param:    "is_system",
		Label:    "System",
		Kind:     listing.FilterTriState,
		TriState: listing.SystemTriState,
	}
}

// Common returns descriptor fields shared by every entity.
func Common(name string, searchFields []string, filters []listing.FilterField, sortable ...string) *listing.Descriptor {
	return &listing.Descriptor{
		Name:              name,
		SearchParam:       "search",
		SearchFields:      searchFields,
		Filters:           filters,
		Sortable:          append([]string{"created_at", "updated_at"}, sortable...),
		DefaultSort:       listing.SortSpec{{Field: "created_at", Desc: true}},
		DefaultPageSize:   listing.DefaultPageSize,
		MaxPageSize:       listing.MaxPageSize,
		PageReset:         listing.ResetPageOnChange,
		StatusTransitions: ActiveTransitions,
	}
}

// Label picks the first non-empty of the given names.
func Label(names ...string) string {
	for _, n := range names {
		if n != "" {
			return n
		}
	}
	return ""
}
