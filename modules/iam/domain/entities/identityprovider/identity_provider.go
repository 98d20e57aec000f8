package identityprovider

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "identity_providers"

const (
	TypeOIDC = "oidc"
	TypeSAML = "saml"
	TypeLDAP = "ldap"
)

// IdentityProvider is an upstream login source. The default provider cannot be
// deactivated or removed.
type IdentityProvider struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Type        string    `db:"type" json:"type"`
	Issuer      string    `db:"issuer" json:"issuer"`
	Status      string    `db:"status" json:"status"`
	IsDefault   bool      `db:"is_default" json:"is_default"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*IdentityProvider] = (*IdentityProvider)(nil)

var Columns = []string{"id", "name", "display_name", "type", "issuer", "status", "is_default", "created_at", "updated_at"}

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
				{Value: TypeOIDC, Label: "OpenID Connect"},
				{Value: TypeSAML, Label: "SAML"},
				{Value: TypeLDAP, Label: "LDAP"},
			},
		},
		{
			Key:      "isDefault",
			Param:    "is_default",
			Label:    "Default",
			Kind:     listing.FilterTriState,
			TriState: listing.DefaultTriState,
		},
	},
	"name", "display_name", "type",
)

func (p *IdentityProvider) RowID() string     { return p.ID.String() }
func (p *IdentityProvider) RowLabel() string  { return resource.Label(p.DisplayName, p.Name) }
func (p *IdentityProvider) RowStatus() string { return p.Status }
func (p *IdentityProvider) Protected() bool   { return p.IsDefault }

func (p *IdentityProvider) Value(column string) any {
	switch column {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "display_name":
		return p.DisplayName
	case "type":
		return p.Type
	case "issuer":
		return p.Issuer
	case "status":
		return p.Status
	case "is_default":
		return p.IsDefault
	case "created_at":
		return p.CreatedAt
	case "updated_at":
		return p.UpdatedAt
	}
	return nil
}

func (p *IdentityProvider) WithStatus(status string, at time.Time) *IdentityProvider {
	cp := *p
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
