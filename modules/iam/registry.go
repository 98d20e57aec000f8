package iam

import (
	"strings"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/identityprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/policy"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/socialprovider"
	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/types"
)

// EntityInfo is the untyped view of a registered entity used outside the web UI.
type EntityInfo struct {
	Slug       string
	Descriptor *listing.Descriptor
	// Columns are the value keys shown in a list, in order.
	Columns []string
}

func info(link types.NavigationItem, desc *listing.Descriptor, columns []table.Column) EntityInfo {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return EntityInfo{
		Slug:       strings.TrimPrefix(link.Href, "/iam/"),
		Descriptor: desc,
		Columns:    append([]string{"id"}, keys...),
	}
}

// Entities lists every entity in navigation order.
func Entities() []EntityInfo {
	return []EntityInfo{
		info(RolesLink, role.Descriptor, roleColumns),
		info(PoliciesLink, policy.Descriptor, policyColumns),
		info(ServicesLink, service.Descriptor, serviceColumns),
		info(IdentityProvidersLink, identityprovider.Descriptor, identityProviderColumns),
		info(SocialProvidersLink, socialprovider.Descriptor, socialProviderColumns),
		info(EmailTemplatesLink, emailtemplate.Descriptor, emailTemplateColumns),
		info(NotificationsLink, notification.Descriptor, notificationColumns),
	}
}

func LookupEntity(slug string) (EntityInfo, bool) {
	for _, e := range Entities() {
		if e.Slug == slug {
			return e, true
		}
	}
	return EntityInfo{}, false
}
