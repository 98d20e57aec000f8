package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/metrics"
	"github.com/iota-uz/iam-console/pkg/middleware"
	"github.com/iota-uz/iam-console/pkg/routing"
	"github.com/iota-uz/iam-console/pkg/server"
	"github.com/iota-uz/iam-console/pkg/spotlight"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	// Pool is nil in memory storage mode.
	Pool *pgxpool.Pool
	// HomePath is where "/" redirects to.
	HomePath string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	rules, err := routing.LoadAllowlist(conf.RoutingAllowlistPath, "server")
	if err != nil {
		return nil, err
	}
	classifier := routing.NewClassifier(rules)

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.Origin),

		middleware.TracedMiddleware("localizer"),
		middleware.ProvideLocalizer(app),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	// a nil *pgxpool.Pool must not reach the middleware as a non-nil interface
	var db composables.TxBeginner
	if options.Pool != nil {
		db = options.Pool
	}
	middlewares = append(middlewares,
		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(conf, append(classifier.Prefixes(routing.RouteClassOps), conf.Prometheus.Path)...),
		middleware.TracedMiddleware("database"),
		middleware.WithTransaction(db),
	)

	app.RegisterMiddleware(middlewares...)

	app.RegisterControllers(
		spotlight.NewController(app.QuickLinks()),
		&healthController{storage: conf.Storage, pool: options.Pool},
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}
	if options.HomePath != "" {
		app.RegisterControllers(&homeController{target: options.HomePath})
	}

	return server.NewHTTPServer(
		app,
		NotFound(app, classifier),
		MethodNotAllowed(app, classifier),
	), nil
}
