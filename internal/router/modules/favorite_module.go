package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/inmobo/inmobo-api/internal/interface/http"
	"github.com/inmobo/inmobo-api/internal/interface/middleware"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// FavoriteModule wires the favorites routes, all behind auth.
type FavoriteModule struct {
	Handler *handlers.FavoriteHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewFavoriteModule(h *handlers.FavoriteHandler, jwt *helpers.JWTManager, rdb *redis.Client) *FavoriteModule {
	return &FavoriteModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *FavoriteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/favorites", m.Handler.List)
		auth.GET("/favorites/ids", m.Handler.IDs)
		auth.POST("/favorites/:id/toggle", m.Handler.Toggle)
	}
}
