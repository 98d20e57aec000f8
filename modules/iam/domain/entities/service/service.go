package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "services"

const (
	TypeWeb    = "web"
	TypeSPA    = "spa"
	TypeNative = "native"
	TypeM2M    = "m2m"
)

// Service is a client application registered with the identity platform.
type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`
	IsSystem    bool      `db:"is_system" json:"is_system"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*Service] = (*Service)(nil)

var Columns = []string{"id", "name", "display_name", "type", "status", "is_system", "created_at", "updated_at"}

var Descriptor = resource.Common(
	Resource,
	[]string{"name", "display_name"},
	[]listing.FilterField{
		resource.StatusFilter(false),
		{
			Key:   "type",
			Param: "type",
			Label: "Type",
			Kind:  listing.FilterMulti,
			Options: []listing.Option{
				{Value: TypeWeb, Label: "Web"},
				{Value: TypeSPA, Label: "Single page"},
				{Value: TypeNative, Label: "Native"},
				{Value: TypeM2M, Label: "Machine to machine"},
			},
		},
		resource.SystemFilter(),
	},
	"name", "display_name", "type",
)

func (s *Service) RowID() string     { return s.ID.String() }
func (s *Service) RowLabel() string  { return resource.Label(s.DisplayName, s.Name) }
func (s *Service) RowStatus() string { return s.Status }
func (s *Service) Protected() bool   { return s.IsSystem }

func (s *Service) Value(column string) any {
	switch column {
	case "id":
		return s.ID
	case "name":
		return s.Name
	case "display_name":
		return s.DisplayName
	case "type":
		return s.Type
	case "status":
		return s.Status
	case "is_system":
		return s.IsSystem
	case "created_at":
		return s.CreatedAt
	case "updated_at":
		return s.UpdatedAt
	}
	return nil
}

func (s *Service) WithStatus(status string, at time.Time) *Service {
	cp := *s
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
