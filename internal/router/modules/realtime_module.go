package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/inmobo/inmobo-api/internal/interface/middleware"
	"github.com/inmobo/inmobo-api/internal/realtime"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// RealtimeModule exposes the listing event feed over a websocket.
type RealtimeModule struct {
	Hub   *realtime.Hub
	JWT   *helpers.JWTManager
	Redis *redis.Client
}

func NewRealtimeModule(hub *realtime.Hub, jwt *helpers.JWTManager, rdb *redis.Client) *RealtimeModule {
	return &RealtimeModule{Hub: hub, JWT: jwt, Redis: rdb}
}

func (m *RealtimeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.GET("/realtime/listings", m.Hub.Serve)
}
