package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/inmobo/inmobo-api/pkg/response"
)

// HealthModule reports liveness of the API and its required backends.
type HealthModule struct {
	PG    *pgxpool.Pool
	Redis *redis.Client
}

func NewHealthModule(pg *pgxpool.Pool, rdb *redis.Client) *HealthModule {
	return &HealthModule{PG: pg, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.check)
}

func (m *HealthModule) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"postgres": "ok", "redis": "ok"}
	healthy := true
	if err := m.PG.Ping(ctx); err != nil {
		status["postgres"] = "down"
		healthy = false
	}
	if err := m.Redis.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
		healthy = false
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "servicio degradado", status)
		return
	}
	response.Success(c, http.StatusOK, status, "ok", nil)
}
