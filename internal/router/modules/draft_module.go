package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/inmobo/inmobo-api/internal/interface/http"
	"github.com/inmobo/inmobo-api/internal/interface/middleware"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// DraftModule wires the publish wizard routes, all behind auth.
type DraftModule struct {
	Handler *handlers.DraftHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewDraftModule(h *handlers.DraftHandler, jwt *helpers.JWTManager, rdb *redis.Client) *DraftModule {
	return &DraftModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *DraftModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/drafts/listing", m.Handler.Get)
		auth.PUT("/drafts/listing", m.Handler.Put)
		auth.POST("/drafts/listing/advance", m.Handler.Advance)
		auth.POST("/drafts/listing/back", m.Handler.Back)
		auth.POST("/drafts/listing/submit", m.Handler.Submit)
		auth.DELETE("/drafts/listing", m.Handler.Discard)
	}
}
