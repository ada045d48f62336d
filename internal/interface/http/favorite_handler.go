package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/application"
	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/pkg/response"
)

type FavoriteHandler struct {
	Svc    *application.FavoriteService
	Logger *logrus.Logger
}

func NewFavoriteHandler(svc *application.FavoriteService, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Svc: svc, Logger: logger}
}

// Toggle flips the favorite state for the given listing and reports the
// state after the flip.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	favorited, err := h.Svc.Toggle(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrPropertyNotFound) {
			response.Error[any](c, http.StatusNotFound, "Propiedad no encontrada", nil)
			return
		}
		h.Logger.WithError(err).Error("favorite toggle failed")
		response.Error[any](c, http.StatusInternalServerError, "Error al actualizar favoritos", nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]bool{"favorited": favorited}, "favorite toggled", nil)
}

// IDs returns just the favorited property ids, enough for the client to
// paint heart icons without fetching full listings.
func (h *FavoriteHandler) IDs(c *gin.Context) {
	ids, err := h.Svc.IDs(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al cargar favoritos", nil)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	response.Success(c, http.StatusOK, ids, "favorite ids", nil)
}

func (h *FavoriteHandler) List(c *gin.Context) {
	props, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al cargar favoritos", nil)
		return
	}
	if props == nil {
		props = []entity.Property{}
	}
	response.Success(c, http.StatusOK, props, "favorites", map[string]any{"count": len(props)})
}
