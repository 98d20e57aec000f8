package iam

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/iam-console/pkg/types"
)

var (
	RolesLink = types.NavigationItem{
		Name: "NavigationLinks.Roles",
		Href: "/iam/roles",
	}
	PoliciesLink = types.NavigationItem{
		Name: "NavigationLinks.Policies",
		Href: "/iam/policies",
	}
	ServicesLink = types.NavigationItem{
		Name: "NavigationLinks.Services",
		Href: "/iam/services",
	}
	IdentityProvidersLink = types.NavigationItem{
		Name: "NavigationLinks.IdentityProviders",
		Href: "/iam/identity-providers",
	}
	SocialProvidersLink = types.NavigationItem{
		Name: "NavigationLinks.SocialProviders",
		Href: "/iam/social-providers",
	}
	EmailTemplatesLink = types.NavigationItem{
		Name: "NavigationLinks.EmailTemplates",
		Href: "/iam/email-templates",
	}
	NotificationsLink = types.NavigationItem{
		Name: "NavigationLinks.Notifications",
		Href: "/iam/notifications",
	}
)

var AccessLink = types.NavigationItem{
	Name: "NavigationLinks.Access",
	Icon: icons.UsersThree(icons.Props{Size: "20"}),
	Children: []types.NavigationItem{
		RolesLink,
		PoliciesLink,
		ServicesLink,
		IdentityProvidersLink,
		SocialProvidersLink,
	},
}

var MessagingLink = types.NavigationItem{
	Name: "NavigationLinks.Messaging",
	Icon: icons.List(icons.Props{Size: "20"}),
	Children: []types.NavigationItem{
		EmailTemplatesLink,
		NotificationsLink,
	},
}

var NavItems = []types.NavigationItem{
	AccessLink,
	MessagingLink,
}
