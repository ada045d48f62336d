package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/application"
	"github.com/inmobo/inmobo-api/pkg/response"
	"github.com/inmobo/inmobo-api/pkg/validation"
)

// DraftHandler exposes the publish wizard. The draft lives server-side so a
// user can resume mid-wizard from another tab or after a reload.
type DraftHandler struct {
	Svc    *application.DraftService
	Logger *logrus.Logger
}

func NewDraftHandler(svc *application.DraftService, logger *logrus.Logger) *DraftHandler {
	return &DraftHandler{Svc: svc, Logger: logger}
}

func (h *DraftHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al cargar el borrador", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "draft", nil)
}

func (h *DraftHandler) Put(c *gin.Context) {
	var d application.ListingDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	saved, err := h.Svc.Put(c.Request.Context(), c.GetString("userID"), &d)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al guardar el borrador", nil)
		return
	}
	response.Success(c, http.StatusOK, saved, "draft saved", nil)
}

func (h *DraftHandler) Advance(c *gin.Context) {
	d, fieldErrs, err := h.Svc.Advance(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al guardar el borrador", nil)
		return
	}
	if len(fieldErrs) > 0 {
		response.Error[any](c, http.StatusUnprocessableEntity, "Revisa los campos marcados", fieldErrs)
		return
	}
	response.Success(c, http.StatusOK, d, "draft advanced", nil)
}

func (h *DraftHandler) Back(c *gin.Context) {
	d, err := h.Svc.Back(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al guardar el borrador", nil)
		return
	}
	response.Success(c, http.StatusOK, d, "draft moved back", nil)
}

// Submit finishes the wizard: multipart form with the photos under "images".
func (h *DraftHandler) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	images, err := readImages(form.File["images"])
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	p, fieldErrs, err := h.Svc.Submit(c.Request.Context(), c.GetString("userID"), images)
	if err != nil {
		if errors.Is(err, application.ErrDraftInvalid) {
			response.Error[any](c, http.StatusUnprocessableEntity, "Revisa los campos marcados", fieldErrs)
			return
		}
		h.Logger.WithError(err).Error("draft submit failed")
		response.Error[any](c, http.StatusInternalServerError, "Error al agregar la propiedad", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "property published", nil)
}

func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.Svc.Discard(c.Request.Context(), c.GetString("userID")); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al descartar el borrador", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"discarded": true}, "draft discarded", nil)
}
