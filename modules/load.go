package modules

import (
	"github.com/iota-uz/iam-console/modules/iam"
	"github.com/iota-uz/iam-console/pkg/application"
	"github.com/iota-uz/iam-console/pkg/configuration"
)

// BuiltInModules returns the modules the console ships with, configured from conf.
func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		iam.NewModule(&iam.ModuleOptions{
			Storage: conf.Storage,
			Listing: conf.Listing,
		}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
