package router

import (
	"github.com/inmobo/inmobo-api/internal/application"
	"github.com/inmobo/inmobo-api/internal/container"
	"github.com/inmobo/inmobo-api/internal/infrastructure/postgres"
	handlers "github.com/inmobo/inmobo-api/internal/interface/http"
	"github.com/inmobo/inmobo-api/internal/router/modules"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// InitModules builds the repositories, services and handlers and registers
// every feature module on the registry. Called once at startup.
func InitModules(r *Registry, c *container.Container) {
	userRepo := postgres.NewUserRepository(c.PG)
	propRepo := postgres.NewPropertyRepository(c.PG)
	favRepo := postgres.NewFavoriteRepository(c.PG)

	var images application.ImageStore
	if c.GCS != nil {
		images = helpers.NewGCSImageStore(c.GCS, c.Cfg.GCSBucket)
	}

	userSvc := application.NewUserService(userRepo, c.JWT, c.Redis, c.Logger, c.Rabbit)
	propSvc := application.NewPropertyService(propRepo, userRepo, images, c.Redis, c.Logger, c.Hub, c.ES, c.Cfg.ESListingsIndex)
	favSvc := application.NewFavoriteService(favRepo, propRepo, c.Logger)
	draftSvc := application.NewDraftService(c.Redis, propSvc, c.Logger, c.Cfg.DraftTTL)

	userHandler := handlers.NewUserHandler(userSvc, c.Logger, c.Cfg.CookieDomain, c.Cfg.CookieSecure)
	propHandler := handlers.NewPropertyHandler(propSvc, c.Logger)
	favHandler := handlers.NewFavoriteHandler(favSvc, c.Logger)
	draftHandler := handlers.NewDraftHandler(draftSvc, c.Logger)
	mapHandler := handlers.NewMapHandler(propSvc, c.Logger)

	r.Add(modules.NewHealthModule(c.PG, c.Redis))
	r.Add(modules.NewUserModule(userHandler, c.JWT, c.Redis))
	r.Add(modules.NewPropertyModule(propHandler, c.JWT, c.Redis))
	r.Add(modules.NewFavoriteModule(favHandler, c.JWT, c.Redis))
	r.Add(modules.NewDraftModule(draftHandler, c.JWT, c.Redis))
	r.Add(modules.NewMapModule(mapHandler, c.Redis))
	r.Add(modules.NewRealtimeModule(c.Hub, c.JWT, c.Redis))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
