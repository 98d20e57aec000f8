package iam

import (
	"embed"
	"strings"

	"github.com/iota-uz/iam-console/components/table"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/identityprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/policy"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/socialprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/modules/iam/infrastructure/persistence"
	"github.com/iota-uz/iam-console/modules/iam/presentation/controllers"
	"github.com/iota-uz/iam-console/modules/iam/services"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/spotlight"
	"github.com/iota-uz/iam-console/pkg/types"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	// Storage is configuration.StorageMemory or configuration.StoragePostgres.
	Storage string
	Listing configuration.ListingOptions
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{opts: opts}
}

type Module struct {
	opts *ModuleOptions
}

func (m *Module) Name() string {
	return "iam"
}

func (m *Module) Register(app application.Application) error {
	if err := app.RegisterLocaleFiles(&LocaleFiles); err != nil {
		return err
	}

	register(app, m.opts, entity[*emailtemplate.EmailTemplate]{
		link: EmailTemplatesLink, desc: emailtemplate.Descriptor, table: persistence.EmailTemplates,
		fixtures: persistence.EmailTemplateFixtures, columns: emailTemplateColumns, fields: emailTemplateFields,
	})
	register(app, m.opts, entity[*identityprovider.IdentityProvider]{
		link: IdentityProvidersLink, desc: identityprovider.Descriptor, table: persistence.IdentityProviders,
		fixtures: persistence.IdentityProviderFixtures, columns: identityProviderColumns, fields: identityProviderFields,
	})
	register(app, m.opts, entity[*socialprovider.SocialProvider]{
		link: SocialProvidersLink, desc: socialprovider.Descriptor, table: persistence.SocialProviders,
		fixtures: persistence.SocialProviderFixtures, columns: socialProviderColumns, fields: socialProviderFields,
	})
	register(app, m.opts, entity[*policy.Policy]{
		link: PoliciesLink, desc: policy.Descriptor, table: persistence.Policies,
		fixtures: persistence.PolicyFixtures, columns: policyColumns, fields: policyFields,
	})
	register(app, m.opts, entity[*role.Role]{
		link: RolesLink, desc: role.Descriptor, table: persistence.Roles,
		fixtures: persistence.RoleFixtures, columns: roleColumns, fields: roleFields,
	})
	register(app, m.opts, entity[*service.Service]{
		link: ServicesLink, desc: service.Descriptor, table: persistence.Services,
		fixtures: persistence.ServiceFixtures, columns: serviceColumns, fields: serviceFields,
	})
	register(app, m.opts, entity[*notification.Notification]{
		link: NotificationsLink, desc: notification.Descriptor, table: persistence.Notifications,
		fixtures: persistence.NotificationFixtures, columns: notificationColumns, fields: notificationFields,
	})

	app.RegisterNavItems(NavItems...)
	return nil
}

type entity[E resource.Entity[E]] struct {
	link     types.NavigationItem
	desc     *listing.Descriptor
	table    persistence.Table[E]
	fixtures func() []E
	columns  []table.Column
	fields   []table.Column
}

// slug is the last path segment of the entity's link.
func (e entity[E]) slug() string {
	return strings.TrimPrefix(e.link.Href, "/iam/")
}

// descriptor applies the configured page sizes to a copy of the entity descriptor.
func (e entity[E]) descriptor(opts configuration.ListingOptions) *listing.Descriptor {
	d := *e.desc
	if opts.PageSize > 0 {
		d.DefaultPageSize = opts.PageSize
	}
	if opts.MaxPageSize > 0 {
		d.MaxPageSize = opts.MaxPageSize
	}
	return &d
}

func register[E resource.Entity[E]](app application.Application, opts *ModuleOptions, e entity[E]) {
	desc := e.descriptor(opts.Listing)

	var repo resource.Repository[E]
	if opts.Storage == configuration.StoragePostgres {
		repo = persistence.NewPgRepository(app.DB(), desc, e.table)
	} else {
		repo = persistence.NewMemoryRepository(desc, e.fixtures()...)
	}

	svc := services.NewResourceService(desc, repo, app.EventPublisher())
	var fetcher listing.Fetcher[E] = svc
	if opts.Listing.CacheSize > 0 && opts.Listing.CacheTTL > 0 {
		fetcher = services.Cached(svc, app.EventPublisher(), opts.Listing.CacheSize, opts.Listing.CacheTTL)
	}

	res := controllers.Resource[E]{
		Slug:    e.slug(),
		Title:   e.link.Name,
		Service: svc,
		Fetcher: fetcher,
		Columns: e.columns,
		Fields:  e.fields,
	}
	app.RegisterServices(svc)
	app.RegisterControllers(
		controllers.NewResourceController(app, res, &controllers.ResourceControllerOptions{
			FetchTimeout: opts.Listing.FetchTimeout,
		}),
		controllers.NewResourceAPIController(res),
	)
	app.QuickLinks().Add(spotlight.NewQuickLink(nil, e.link.Name, e.link.Href))
}
