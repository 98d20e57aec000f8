package policy

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "policies"

const (
	TypePassword = "password"
	TypeMFA      = "mfa"
	TypeSession  = "session"
	TypeLockout  = "lockout"
)

type Policy struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`
	IsSystem    bool      `db:"is_system" json:"is_system"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*Policy] = (*Policy)(nil)

var Columns = []string{"id", "name", "description", "type", "status", "is_system", "created_at", "updated_at"}

var Descriptor = resource.Common(
	Resource,
	[]string{"name", "description"},
	[]listing.FilterField{
		resource.StatusFilter(true),
		{
			Key:   "type",
			Param: "type",
			Label: "Type",
			Kind:  listing.FilterMulti,
			Options: []listing.Option{
				{Value: TypePassword, Label: "Password"},
				{Value: TypeMFA, Label: "MFA"},
				{Value: TypeSession, Label: "Session"},
				{Value: TypeLockout, Label: "Lockout"},
			},
		},
		resource.SystemFilter(),
	},
	"name", "type", "status",
)

func (p *Policy) RowID() string     { return p.ID.String() }
func (p *Policy) RowLabel() string  { return p.Name }
func (p *Policy) RowStatus() string { return p.Status }
func (p *Policy) Protected() bool   { return p.IsSystem }

func (p *Policy) Value(column string) any {
	switch column {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "type":
		return p.Type
	case "status":
		return p.Status
	case "is_system":
		return p.IsSystem
	case "created_at":
		return p.CreatedAt
	case "updated_at":
		return p.UpdatedAt
	}
	return nil
}

func (p *Policy) WithStatus(status string, at time.Time) *Policy {
	cp := *p
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
