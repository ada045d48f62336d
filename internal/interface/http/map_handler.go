package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/application"
	"github.com/inmobo/inmobo-api/internal/geo"
	"github.com/inmobo/inmobo-api/pkg/response"
)

type MapHandler struct {
	Svc    *application.PropertyService
	Logger *logrus.Logger
}

func NewMapHandler(svc *application.PropertyService, logger *logrus.Logger) *MapHandler {
	return &MapHandler{Svc: svc, Logger: logger}
}

// Cities lists the selectable cities with their map centers.
func (h *MapHandler) Cities(c *gin.Context) {
	response.Success(c, http.StatusOK, geo.Cities, "cities", nil)
}

// Markers returns filtered map markers plus the center the map should pan
// to (the city center when a city filter is set).
func (h *MapHandler) Markers(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	set, err := h.Svc.Markers(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("marker query failed")
		response.Error[any](c, http.StatusInternalServerError, "Error al cargar el mapa", nil)
		return
	}
	response.Success(c, http.StatusOK, set, "markers", map[string]any{"count": len(set.Markers)})
}
