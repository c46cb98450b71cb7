package router

import (
	"github.com/groceryhub/grocery-api/internal/application"
	"github.com/groceryhub/grocery-api/internal/container"
	handlers "github.com/groceryhub/grocery-api/internal/interface/http"
	"github.com/groceryhub/grocery-api/internal/router/modules"
)

type ModuleDeps struct {
	Accounts *application.AccountService
	Lists    *application.ListService
}

func buildDeps() ModuleDeps {
	database := container.GetDB()
	logger := container.GetLogger()

	return ModuleDeps{
		Accounts: application.NewAccountService(database, logger),
		Lists:    application.NewListService(database, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Accounts, logger)))
	r.Add(modules.NewListModule(
		handlers.NewStoreHandler(deps.Lists, logger),
		handlers.NewAisleHandler(deps.Lists, logger),
		handlers.NewProductHandler(deps.Lists, logger),
	))
	if container.GetConfig().MetricsEnabled {
		r.Add(modules.NewMetricsModule())
	}
}
