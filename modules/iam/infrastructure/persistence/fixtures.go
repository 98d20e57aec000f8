package persistence

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/identityprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/policy"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/socialprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
)

// fixtureEpoch anchors fixture timestamps so ordering is reproducible.
var fixtureEpoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// FixtureID derives a stable id so seeding twice is a no-op.
func FixtureID(resourceName, name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("iam-console/"+resourceName+"/"+name))
}

func fixtureTime(i int) time.Time {
	return fixtureEpoch.Add(time.Duration(i) * 36 * time.Hour)
}

func EmailTemplateFixtures() []*emailtemplate.EmailTemplate {
	type seed struct {
		name, display, subject, typ, status string
		system                              bool
	}
	seeds := []seed{
		{"verify-email", "Verify email", "Confirm your email address", emailtemplate.TypeVerification, resource.StatusActive, true},
		{"reset-password", "Reset password", "Reset your password", emailtemplate.TypePasswordReset, resource.StatusActive, true},
		{"welcome", "Welcome", "Welcome aboard", emailtemplate.TypeWelcome, resource.StatusActive, false},
		{"welcome-partner", "Welcome partner", "Welcome to the partner portal", emailtemplate.TypeWelcome, resource.StatusDraft, false},
		{"invite-member", "Invite member", "You have been invited", emailtemplate.TypeInvitation, resource.StatusActive, false},
		{"invite-admin", "Invite administrator", "Administrator invitation", emailtemplate.TypeInvitation, resource.StatusInactive, false},
		{"mfa-code", "MFA code", "Your sign-in code", emailtemplate.TypeMFACode, resource.StatusActive, true},
		{"mfa-code-sms-fallback", "MFA code fallback", "Your backup sign-in code", emailtemplate.TypeMFACode, resource.StatusDraft, false},
		{"verify-email-legacy", "Verify email (legacy)", "Please verify", emailtemplate.TypeVerification, resource.StatusInactive, false},
		{"reset-password-short", "Reset password (short)", "Password reset", emailtemplate.TypePasswordReset, resource.StatusDraft, false},
		{"welcome-trial", "Welcome trial", "Your trial has started", emailtemplate.TypeWelcome, resource.StatusActive, false},
		{"invite-guest", "Invite guest", "Guest access", emailtemplate.TypeInvitation, resource.StatusDraft, false},
	}
	out := make([]*emailtemplate.EmailTemplate, len(seeds))
	for i, s := range seeds {
		out[i] = &emailtemplate.EmailTemplate{
			ID:          FixtureID(emailtemplate.Resource, s.name),
			Name:        s.name,
			DisplayName: s.display,
			Subject:     s.subject,
			Type:        s.typ,
			Status:      s.status,
			IsSystem:    s.system,
			CreatedAt:   fixtureTime(i),
			UpdatedAt:   fixtureTime(i),
		}
	}
	return out
}

func IdentityProviderFixtures() []*identityprovider.IdentityProvider {
	type seed struct {
		name, display, typ, issuer, status string
		isDefault                          bool
	}
	seeds := []seed{
		{"local", "Local accounts", identityprovider.TypeOIDC, "https://id.example.com", resource.StatusActive, true},
		{"corp-azure", "Corporate Azure AD", identityprovider.TypeOIDC, "https://login.microsoftonline.com/corp/v2.0", resource.StatusActive, false},
		{"okta", "Okta", identityprovider.TypeSAML, "http://www.okta.com/exk1", resource.StatusActive, false},
		{"adfs", "ADFS", identityprovider.TypeSAML, "https://adfs.example.com/adfs/services/trust", resource.StatusInactive, false},
		{"openldap", "OpenLDAP", identityprovider.TypeLDAP, "ldap://ldap.example.com", resource.StatusActive, false},
		{"keycloak", "Keycloak", identityprovider.TypeOIDC, "https://kc.example.com/realms/main", resource.StatusInactive, false},
	}
	out := make([]*identityprovider.IdentityProvider, len(seeds))
	for i, s := range seeds {
		out[i] = &identityprovider.IdentityProvider{
			ID:          FixtureID(identityprovider.Resource, s.name),
			Name:        s.name,
			DisplayName: s.display,
			Type:        s.typ,
			Issuer:      s.issuer,
			Status:      s.status,
			IsDefault:   s.isDefault,
			CreatedAt:   fixtureTime(i),
			UpdatedAt:   fixtureTime(i),
		}
	}
	return out
}

func SocialProviderFixtures() []*socialprovider.SocialProvider {
	seeds := []struct {
		name, provider, status string
		system                 bool
	}{
		{"Google", "google", resource.StatusActive, true},
		{"GitHub", "github", resource.StatusActive, false},
		{"Microsoft", "microsoft", resource.StatusInactive, false},
		{"Apple", "apple", resource.StatusActive, false},
		{"Facebook", "facebook", resource.StatusInactive, false},
		{"GitHub Enterprise", "github", resource.StatusInactive, false},
	}
	out := make([]*socialprovider.SocialProvider, len(seeds))
	for i, s := range seeds {
		out[i] = &socialprovider.SocialProvider{
			ID:        FixtureID(socialprovider.Resource, s.name),
			Name:      s.name,
			Provider:  s.provider,
			ClientID:  s.provider + "-client-" + FixtureID(socialprovider.Resource, s.name).String()[:8],
			Status:    s.status,
			IsSystem:  s.system,
			CreatedAt: fixtureTime(i),
			UpdatedAt: fixtureTime(i),
		}
	}
	return out
}

func PolicyFixtures() []*policy.Policy {
	seeds := []struct {
		name, description, typ, status string
		system                         bool
	}{
		{"Default password", "Minimum length 12, one digit, one symbol", policy.TypePassword, resource.StatusActive, true},
		{"Strict password", "Minimum length 16 and no reuse of the last 10 passwords", policy.TypePassword, resource.StatusDraft, false},
		{"MFA for admins", "Administrators must enrol a second factor", policy.TypeMFA, resource.StatusActive, false},
		{"MFA everyone", "Every user must enrol a second factor", policy.TypeMFA, resource.StatusInactive, false},
		{"Session 8h", "Sessions expire after 8 hours", policy.TypeSession, resource.StatusActive, true},
		{"Session 30m idle", "Idle sessions expire after 30 minutes", policy.TypeSession, resource.StatusDraft, false},
		{"Lockout 5", "Lock the account after 5 failed attempts", policy.TypeLockout, resource.StatusActive, false},
		{"Lockout 10", "Lock the account after 10 failed attempts", policy.TypeLockout, resource.StatusInactive, false},
	}
	out := make([]*policy.Policy, len(seeds))
	for i, s := range seeds {
		out[i] = &policy.Policy{
			ID:          FixtureID(policy.Resource, s.name),
			Name:        s.name,
			Description: s.description,
			Type:        s.typ,
			Status:      s.status,
			IsSystem:    s.system,
			CreatedAt:   fixtureTime(i),
			UpdatedAt:   fixtureTime(i),
		}
	}
	return out
}

func ServiceFixtures() []*service.Service {
	seeds := []struct {
		name, display, typ, status string
		system                     bool
	}{
		{"console", "Admin console", service.TypeWeb, resource.StatusActive, true},
		{"account", "Account portal", service.TypeSPA, resource.StatusActive, true},
		{"mobile", "Mobile app", service.TypeNative, resource.StatusActive, false},
		{"billing-sync", "Billing sync", service.TypeM2M, resource.StatusActive, false},
		{"reports", "Reports", service.TypeWeb, resource.StatusInactive, false},
		{"partner-api", "Partner API", service.TypeM2M, resource.StatusInactive, false},
	}
	out := make([]*service.Service, len(seeds))
	for i, s := range seeds {
		out[i] = &service.Service{
			ID:          FixtureID(service.Resource, s.name),
			Name:        s.name,
			DisplayName: s.display,
			Type:        s.typ,
			Status:      s.status,
			IsSystem:    s.system,
			CreatedAt:   fixtureTime(i),
			UpdatedAt:   fixtureTime(i),
		}
	}
	return out
}

func RoleFixtures() []*role.Role {
	console := FixtureID(service.Resource, "console")
	account := FixtureID(service.Resource, "account")
	billing := FixtureID(service.Resource, "billing-sync")
	seeds := []struct {
		serviceID                      uuid.UUID
		name, display, description, st string
		system                         bool
	}{
		{console, "admin", "Administrator", "Full access to the console", resource.StatusActive, true},
		{console, "auditor", "Auditor", "Read-only access to audit data", resource.StatusActive, false},
		{console, "support", "Support agent", "Can reset passwords and unlock accounts", resource.StatusActive, false},
		{account, "member", "Member", "Default role for signed-up users", resource.StatusActive, true},
		{account, "guest", "Guest", "Limited access for invited guests", resource.StatusInactive, false},
		{billing, "billing-writer", "Billing writer", "Writes invoices", resource.StatusActive, false},
		{billing, "billing-reader", "Billing reader", "Reads invoices", resource.StatusInactive, false},
	}
	out := make([]*role.Role, len(seeds))
	for i, s := range seeds {
		out[i] = &role.Role{
			ID:          FixtureID(role.Resource, s.name),
			ServiceID:   s.serviceID,
			Name:        s.name,
			DisplayName: s.display,
			Description: s.description,
			Status:      s.st,
			IsSystem:    s.system,
			CreatedAt:   fixtureTime(i),
			UpdatedAt:   fixtureTime(i),
		}
	}
	return out
}

func NotificationFixtures() []*notification.Notification {
	seeds := []struct{ title, channel, status string }{
		{"Scheduled maintenance", "email", notification.StatusScheduled},
		{"New sign-in from unknown device", "push", notification.StatusSent},
		{"Password expires soon", "email", notification.StatusDraft},
		{"Verify your phone", "sms", notification.StatusFailed},
		{"Welcome to the console", "in_app", notification.StatusSent},
		{"MFA enrolment reminder", "email", notification.StatusDraft},
		{"Quarterly access review", "in_app", notification.StatusScheduled},
	}
	out := make([]*notification.Notification, len(seeds))
	for i, s := range seeds {
		out[i] = &notification.Notification{
			ID:        FixtureID(notification.Resource, s.title),
			Title:     s.title,
			Channel:   s.channel,
			Status:    s.status,
			CreatedAt: fixtureTime(i),
			UpdatedAt: fixtureTime(i),
		}
	}
	return out
}
