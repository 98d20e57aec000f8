package application

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/eventbus"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/spotlight"
	"github.com/iota-uz/iam-console/pkg/types"
)

func translate(localizer *i18n.Localizer, items []types.NavigationItem) []types.NavigationItem {
	translated := make([]types.NavigationItem, 0, len(items))
	for _, item := range items {
		name := item.Name
		if localizer != nil {
			if msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: item.Name}); err == nil {
				name = msg
			}
		}
		translated = append(translated, types.NavigationItem{
			Name:     name,
			Href:     item.Href,
			Children: translate(localizer, item.Children),
			Icon:     item.Icon,
		})
	}
	return translated
}

type ApplicationOptions struct {
	Pool               *pgxpool.Pool
	Configuration      *configuration.Configuration
	EventBus           eventbus.EventBus
	Logger             *logrus.Logger
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func New(opts *ApplicationOptions) Application {
	supportedLanguages := opts.SupportedLanguages
	if len(supportedLanguages) == 0 {
		for _, lang := range intl.Languages(nil) {
			supportedLanguages = append(supportedLanguages, lang.Code)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	bus := opts.EventBus
	if bus == nil {
		bus = eventbus.NewEventPublisher(logger)
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = LoadBundle()
	}

	return &application{
		pool:               opts.Pool,
		conf:               opts.Configuration,
		logger:             logger,
		eventPublisher:     bus,
		controllers:        make(map[string]Controller),
		services:           make(map[reflect.Type]interface{}),
		quickLinks:         &spotlight.QuickLinks{},
		bundle:             bundle,
		supportedLanguages: supportedLanguages,
	}
}

type application struct {
	pool               *pgxpool.Pool
	conf               *configuration.Configuration
	logger             *logrus.Logger
	eventPublisher     eventbus.EventBus
	services           map[reflect.Type]interface{}
	controllers        map[string]Controller
	middleware         []mux.MiddlewareFunc
	bundle             *i18n.Bundle
	quickLinks         *spotlight.QuickLinks
	navItems           []types.NavigationItem
	supportedLanguages []string
}

func (app *application) QuickLinks() *spotlight.QuickLinks {
	return app.quickLinks
}

func (app *application) NavItems(localizer *i18n.Localizer) []types.NavigationItem {
	return translate(localizer, app.navItems)
}

func (app *application) RegisterNavItems(items ...types.NavigationItem) {
	app.navItems = append(app.navItems, items...)
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) Config() *configuration.Configuration {
	return app.conf
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

// Controllers are returned ordered by key so route registration is deterministic.
func (app *application) Controllers() []Controller {
	keys := make([]string, 0, len(app.controllers))
	for k := range app.controllers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	controllers := make([]Controller, 0, len(keys))
	for _, k := range keys {
		controllers = append(controllers, app.controllers[k])
	}
	return controllers
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

// RegisterLocaleFiles parses every *.toml message file found in the given filesystems.
func (app *application) RegisterLocaleFiles(fsys ...*embed.FS) error {
	for _, localeFS := range fsys {
		err := fs.WalkDir(localeFS, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".toml" {
				return err
			}
			data, err := localeFS.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := app.bundle.ParseMessageFileBytes(data, filepath.Base(path)); err != nil {
				return fmt.Errorf("parse locale %s: %w", path, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) GetSupportedLanguages() []string {
	return app.supportedLanguages
}
