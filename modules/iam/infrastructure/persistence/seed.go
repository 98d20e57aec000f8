package persistence

import (
	"context"

	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/identityprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/policy"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/socialprovider"
	"github.com/iota-uz/iam-console/pkg/composables"
)

type SeedResult struct {
	Resource string
	Inserted int64
}

// Seed inserts the fixtures into the iam_* tables. Services go before roles because of
// the foreign key. Run it inside composables.InTx to make it all-or-nothing.
func Seed(ctx context.Context, db composables.DB) ([]SeedResult, error) {
	steps := []struct {
		resource string
		insert   func() (int64, error)
	}{
		{service.Resource, func() (int64, error) {
			return NewPgRepository(db, service.Descriptor, Services).Insert(ctx, ServiceFixtures()...)
		}},
		{role.Resource, func() (int64, error) {
			return NewPgRepository(db, role.Descriptor, Roles).Insert(ctx, RoleFixtures()...)
		}},
		{emailtemplate.Resource, func() (int64, error) {
			return NewPgRepository(db, emailtemplate.Descriptor, EmailTemplates).Insert(ctx, EmailTemplateFixtures()...)
		}},
		{identityprovider.Resource, func() (int64, error) {
			return NewPgRepository(db, identityprovider.Descriptor, IdentityProviders).Insert(ctx, IdentityProviderFixtures()...)
		}},
		{socialprovider.Resource, func() (int64, error) {
			return NewPgRepository(db, socialprovider.Descriptor, SocialProviders).Insert(ctx, SocialProviderFixtures()...)
		}},
		{policy.Resource, func() (int64, error) {
			return NewPgRepository(db, policy.Descriptor, Policies).Insert(ctx, PolicyFixtures()...)
		}},
		{notification.Resource, func() (int64, error) {
			return NewPgRepository(db, notification.Descriptor, Notifications).Insert(ctx, NotificationFixtures()...)
		}},
	}
	out := make([]SeedResult, 0, len(steps))
	for _, step := range steps {
		n, err := step.insert()
		if err != nil {
			return out, err
		}
		out = append(out, SeedResult{Resource: step.resource, Inserted: n})
	}
	return out, nil
}
