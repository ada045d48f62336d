package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/inmobo/inmobo-api/internal/interface/http"
	"github.com/inmobo/inmobo-api/internal/interface/middleware"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// PropertyModule wires listing routes.
// Public: GET /api/properties, GET /api/properties/:id,
// GET /api/properties/:id/contact, GET /api/search
// Protected: POST /api/properties, PUT/DELETE /api/properties/:id,
// GET /api/my/properties
type PropertyModule struct {
	Handler *handlers.PropertyHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewPropertyModule(h *handlers.PropertyHandler, jwt *helpers.JWTManager, rdb *redis.Client) *PropertyModule {
	return &PropertyModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *PropertyModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/properties", browseLimiter, m.Handler.List)
	rg.GET("/properties/:id", browseLimiter, m.Handler.Get)
	rg.GET("/properties/:id/contact", browseLimiter, m.Handler.Contact)
	rg.GET("/search", browseLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/properties", m.Handler.Create)
		auth.PUT("/properties/:id", m.Handler.Update)
		auth.DELETE("/properties/:id", m.Handler.Delete)
		auth.GET("/my/properties", m.Handler.MyListings)
	}
}
