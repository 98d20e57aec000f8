package emailtemplate

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

const Resource = "email_templates"

const (
	TypeVerification  = "verification"
	TypePasswordReset = "password_reset"
	TypeWelcome       = "welcome"
	TypeInvitation    = "invitation"
	TypeMFACode       = "mfa_code"
)

type EmailTemplate struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Subject     string    `db:"subject" json:"subject"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`
	IsSystem    bool      `db:"is_system" json:"is_system"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

var _ resource.Entity[*EmailTemplate] = (*EmailTemplate)(nil)

var Columns = []string{"id", "name", "display_name", "subject", "type", "status", "is_system", "created_at", "updated_at"}

var Descriptor = resource.Common(
	Resource,
	[]string{"name", "display_name"},
	[]listing.FilterField{
		resource.StatusFilter(true),
		{
			Key:   "type",
			Param: "type",
			Label: "Type",
			Kind:  listing.FilterMulti,
			Options: []listing.Option{
				{Value: TypeVerification, Label: "Verification"},
				{Value: TypePasswordReset, Label: "Password reset"},
				{Value: TypeWelcome, Label: "Welcome"},
				{Value: TypeInvitation, Label: "Invitation"},
				{Value: TypeMFACode, Label: "MFA code"},
			},
		},
		resource.SystemFilter(),
	},
	"name", "display_name", "type", "status",
)

func (t *EmailTemplate) RowID() string     { return t.ID.String() }
func (t *EmailTemplate) RowLabel() string  { return resource.Label(t.DisplayName, t.Name) }
func (t *EmailTemplate) RowStatus() string { return t.Status }
func (t *EmailTemplate) Protected() bool   { return t.IsSystem }

func (t *EmailTemplate) Value(column string) any {
	switch column {
	case "id":
		return t.ID
	case "name":
		return t.Name
	case "display_name":
		return t.DisplayName
	case "subject":
		return t.Subject
	case "type":
		return t.Type
	case "status":
		return t.Status
	case "is_system":
		return t.IsSystem
	case "created_at":
		return t.CreatedAt
	case "updated_at":
		return t.UpdatedAt
	}
	return nil
}

func (t *EmailTemplate) WithStatus(status string, at time.Time) *EmailTemplate {
	cp := *t
	cp.Status = status
	cp.UpdatedAt = at
	return &cp
}
