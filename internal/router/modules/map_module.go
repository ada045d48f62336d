package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/inmobo/inmobo-api/internal/interface/http"
	"github.com/inmobo/inmobo-api/internal/interface/middleware"
)

// MapModule wires the public map endpoints.
type MapModule struct {
	Handler *handlers.MapHandler
	Redis   *redis.Client
}

func NewMapModule(h *handlers.MapHandler, rdb *redis.Client) *MapModule {
	return &MapModule{Handler: h, Redis: rdb}
}

func (m *MapModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/map/cities", rl, m.Handler.Cities)
	rg.GET("/map/markers", rl, m.Handler.Markers)
}
