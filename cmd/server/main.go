package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/iam-console/internal/server"
	"github.com/iota-uz/iam-console/modules"
	"github.com/iota-uz/iam-console/modules/iam"
	"github.com/iota-uz/iam-console/modules/iam/infrastructure/persistence"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/configuration"
	"github.com/iota-uz/iam-console/pkg/eventbus"
	"github.com/iota-uz/iam-console/pkg/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	var pool *pgxpool.Pool
	if conf.Storage == configuration.StoragePostgres {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if conf.Database.AutoMigrate {
			db, err := persistence.OpenDB(conf.Database.Opts)
			if err != nil {
				panic(err)
			}
			if err := persistence.MigrateUp(ctx, db); err != nil {
				panic(err)
			}
			if err := db.Close(); err != nil {
				logger.WithError(err).Warn("failed to close migration connection")
			}
		}
		var err error
		pool, err = pgxpool.New(ctx, conf.Database.Opts)
		if err != nil {
			panic(err)
		}
		defer pool.Close()
	}

	app := application.New(&application.ApplicationOptions{
		Pool:          pool,
		Configuration: conf,
		Bundle:        application.LoadBundle(),
		EventBus:      eventbus.NewEventPublisher(logger),
		Logger:        logger,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
		HomePath:      iam.RolesLink.Href,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.WithField("storage", conf.Storage).Infof("Listening on: %s", conf.Origin)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
	conf.Unload()
}
