package socialprovider

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "social_providers"

type SocialProvider struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Provider  string    `db:"provider" json:"provider"`
	ClientID  string    `db:"client_id" json:"client_id"`
	Status    string    `db:"status" json:"status"`
	IsSystem  bool      `db:"is_system" json:"is_system"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*SocialProvider] = (*SocialProvider)(nil)

var Columns = []string{"id", "name", "provider", "client_id", "status", "is_system", "created_at", "updated_at"}

var Descriptor = resource.Common(
	Resource,
	[]string{"name"},
	[]listing.FilterField{
		{
			Key:   "provider",
			Param: "provider",
			Label: "Provider",
			Kind:  listing.FilterMulti,
			Options: []listing.Option{
				{Value: "google", Label: "Google"},
				{Value: "github", Label: "GitHub"},
				{Value: "microsoft", Label: "Microsoft"},
				{Value: "apple", Label: "Apple"},
				{Value: "facebook", Label: "Facebook"},
			},
		},
		resource.StatusFilter(false),
	},
	"name", "provider",
)

func (p *SocialProvider) RowID() string     { return p.ID.String() }
func (p *SocialProvider) RowLabel() string  { return p.Name }
func (p *SocialProvider) RowStatus() string { return p.Status }
func (p *SocialProvider) Protected() bool   { return p.IsSystem }

func (p *SocialProvider) Value(column string) any {
	switch column {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "provider":
		return p.Provider
	case "client_id":
		return p.ClientID
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

func (p *SocialProvider) WithStatus(status string, at time.Time) *SocialProvider {
	cp := *p
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
