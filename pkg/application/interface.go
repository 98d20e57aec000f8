package application

import (
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/eventbus"
	"github.com/iota-uz/iam-console/pkg/spotlight"
	"github.com/iota-uz/iam-console/pkg/types"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// Application with a dynamically extendable service registry
type Application interface {
	DB() *pgxpool.Pool
	Config() *configuration.Configuration
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	QuickLinks() *spotlight.QuickLinks
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
	RegisterNavItems(items ...types.NavigationItem)
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterLocaleFiles(fsys ...*embed.FS) error
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}
