package role

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "roles"

// Role belongs to exactly one service.
type Role struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ServiceID   uuid.UUID `db:"service_id" json:"service_id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	IsSystem    bool      `db:"is_system" json:"is_system"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*Role] = (*Role)(nil)

var Columns = []string{"id", "service_id", "name", "display_name", "description", "status", "is_system", "created_at", "updated_at"}

var Descriptor = resource.Common(
	Resource,
	[]string{"name", "display_name"},
	[]listing.FilterField{
		resource.StatusFilter(false),
		resource.SystemFilter(),
		{
			Key:   "serviceId",
			Param: "service_id",
			Label: "Service",
			Kind:  listing.FilterText,
		},
	},
	"name", "display_name",
)

func (r *Role) RowID() string     { return r.ID.String() }
func (r *Role) RowLabel() string  { return resource.Label(r.DisplayName, r.Name) }
func (r *Role) RowStatus() string { return r.Status }
func (r *Role) Protected() bool   { return r.IsSystem }

func (r *Role) Value(column string) any {
	switch column {
	case "id":
		return r.ID
	case "service_id":
		return r.ServiceID
	case "name":
		return r.Name
	case "display_name":
		return r.DisplayName
	case "description":
		return r.Description
	case "status":
		return r.Status
	case "is_system":
		return r.IsSystem
	case "created_at":
		return r.CreatedAt
	case "updated_at":
		return r.UpdatedAt
	}
	return nil
}

func (r *Role) WithStatus(status string, at time.Time) *Role {
	cp := *r
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
