package persistence

import (
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/identityprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/policy"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/socialprovider"
)

// Table maps an entity onto its SQL table. Column names double as listing param names.
type Table[E any] struct {
	Name    string
	Columns []string
	New     func() E
}

var (
	EmailTemplates = Table[*emailtemplate.EmailTemplate]{
		Name:    "iam_email_templates",
		Columns: emailtemplate.Columns,
		New:     func() *emailtemplate.EmailTemplate { return &emailtemplate.EmailTemplate{} },
	}
	IdentityProviders = Table[*identityprovider.IdentityProvider]{
		Name:    "iam_identity_providers",
		Columns: identityprovider.Columns,
		New:     func() *identityprovider.IdentityProvider { return &identityprovider.IdentityProvider{} },
	}
	SocialProviders = Table[*socialprovider.SocialProvider]{
		Name:    "iam_social_providers",
		Columns: socialprovider.Columns,
		New:     func() *socialprovider.SocialProvider { return &socialprovider.SocialProvider{} },
	}
	Policies = Table[*policy.Policy]{
		Name:    "iam_policies",
		Columns: policy.Columns,
		New:     func() *policy.Policy { return &policy.Policy{} },
	}
	Roles = Table[*role.Role]{
		Name:    "iam_roles",
		Columns: role.Columns,
		New:     func() *role.Role { return &role.Role{} },
	}
	Services = Table[*service.Service]{
		Name:    "iam_services",
		Columns: service.Columns,
		New:     func() *service.Service { return &service.Service{} },
	}
	Notifications = Table[*notification.Notification]{
		Name:    "iam_notifications",
		Columns: notification.Columns,
		New:     func() *notification.Notification { return &notification.Notification{} },
	}
)
