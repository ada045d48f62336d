package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/application"
	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/pkg/response"
	"github.com/inmobo/inmobo-api/pkg/validation"
)

// Listings carry at most this many photos.
const maxListingImages = 6

type PropertyHandler struct {
	Svc    *application.PropertyService
	Logger *logrus.Logger
}

func NewPropertyHandler(svc *application.PropertyService, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{Svc: svc, Logger: logger}
}

// parseFilter builds the filter from query parameters. Absent parameters
// impose no constraint; present ones must be valid.
func parseFilter(c *gin.Context) (entity.Filter, error) {
	var f entity.Filter
	if v, ok := c.GetQuery("transactionType"); ok {
		t := entity.TransactionType(v)
		if !t.Valid() {
			return f, errors.New("invalid transactionType")
		}
		f.TransactionType = &t
	}
	if v, ok := c.GetQuery("propertyType"); ok {
		t := entity.PropertyType(v)
		if !t.Valid() {
			return f, errors.New("invalid propertyType")
		}
		f.PropertyType = &t
	}
	if v, ok := c.GetQuery("city"); ok {
		f.City = &v
	}
	if v, ok := c.GetQuery("minPrice"); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			return f, errors.New("invalid minPrice")
		}
		f.MinPrice = &p
	}
	if v, ok := c.GetQuery("maxPrice"); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			return f, errors.New("invalid maxPrice")
		}
		f.MaxPrice = &p
	}
	return f, nil
}

func (h *PropertyHandler) List(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	props, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("listing query failed")
		response.Error[any](c, http.StatusInternalServerError, "Error al cargar las propiedades", nil)
		return
	}
	if props == nil {
		props = []entity.Property{}
	}
	response.Success(c, http.StatusOK, props, "properties", map[string]any{"count": len(props)})
}

func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "Propiedad no encontrada", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "property", nil)
}

type createPropertyRequest struct {
	Title            string                 `json:"title" binding:"required"`
	Description      string                 `json:"description" binding:"required"`
	Address          string                 `json:"address" binding:"required"`
	City             string                 `json:"city" binding:"required"`
	Price            float64                `json:"price" binding:"required,gt=0"`
	Currency         entity.Currency        `json:"currency" binding:"required,currency"`
	TransactionType  entity.TransactionType `json:"transactionType" binding:"required,txtype"`
	PropertyType     entity.PropertyType    `json:"propertyType" binding:"required,proptype"`
	LandSize         float64                `json:"landSize" binding:"required,gt=0"`
	ConstructionSize float64                `json:"constructionSize" binding:"omitempty,gte=0"`
	Bedrooms         int                    `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms        int                    `json:"bathrooms" binding:"omitempty,gte=0"`
	ParkingSpots     int                    `json:"parkingSpots" binding:"omitempty,gte=0"`
	Features         []string               `json:"features"`
	Location         entity.Location        `json:"location" binding:"required"`
}

// Create accepts a multipart form: a "data" field with the listing JSON and
// up to six "images" files, stored in upload order.
func (h *PropertyHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	data := c.PostForm("data")
	var req createPropertyRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	images, err := readImages(form.File["images"])
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.CreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Address:          req.Address,
		City:             req.City,
		Price:            req.Price,
		Currency:         req.Currency,
		TransactionType:  req.TransactionType,
		PropertyType:     req.PropertyType,
		LandSize:         req.LandSize,
		ConstructionSize: req.ConstructionSize,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		ParkingSpots:     req.ParkingSpots,
		Features:         req.Features,
		Location:         req.Location,
	}, images)
	if err != nil {
		h.Logger.WithError(err).Error("listing create failed")
		response.Error[any](c, http.StatusInternalServerError, "Error al agregar la propiedad", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "property created", nil)
}

func readImages(files []*multipart.FileHeader) ([]application.ImageUpload, error) {
	if len(files) > maxListingImages {
		files = files[:maxListingImages]
	}
	images := make([]application.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("could not read image " + fh.Filename)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, errors.New("could not read image " + fh.Filename)
		}
		images = append(images, application.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return images, nil
}

type updatePropertyRequest struct {
	Title            *string                 `json:"title"`
	Description      *string                 `json:"description"`
	Address          *string                 `json:"address"`
	City             *string                 `json:"city"`
	Price            *float64                `json:"price" binding:"omitempty,gt=0"`
	Currency         *entity.Currency        `json:"currency" binding:"omitempty,currency"`
	TransactionType  *entity.TransactionType `json:"transactionType" binding:"omitempty,txtype"`
	PropertyType     *entity.PropertyType    `json:"propertyType" binding:"omitempty,proptype"`
	LandSize         *float64                `json:"landSize" binding:"omitempty,gt=0"`
	ConstructionSize *float64                `json:"constructionSize" binding:"omitempty,gte=0"`
	Bedrooms         *int                    `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms        *int                    `json:"bathrooms" binding:"omitempty,gte=0"`
	ParkingSpots     *int                    `json:"parkingSpots" binding:"omitempty,gte=0"`
	Features         []string                `json:"features"`
	Location         *entity.Location        `json:"location"`
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), application.UpdateInput{
		Title:            req.Title,
		Description:      req.Description,
		Address:          req.Address,
		City:             req.City,
		Price:            req.Price,
		Currency:         req.Currency,
		TransactionType:  req.TransactionType,
		PropertyType:     req.PropertyType,
		LandSize:         req.LandSize,
		ConstructionSize: req.ConstructionSize,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		ParkingSpots:     req.ParkingSpots,
		Features:         req.Features,
		Location:         req.Location,
	})
	if err != nil {
		h.writeMutationError(c, err, "Error al actualizar la propiedad")
		return
	}
	response.Success(c, http.StatusOK, p, "property updated", nil)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.writeMutationError(c, err, "Error al eliminar la propiedad")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "property deleted", nil)
}

func (h *PropertyHandler) writeMutationError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, application.ErrPropertyNotFound):
		response.Error[any](c, http.StatusNotFound, "Propiedad no encontrada", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusForbidden, "Solo el propietario puede modificar esta propiedad", nil)
	default:
		h.Logger.WithError(err).Error("listing mutation failed")
		response.Error[any](c, http.StatusInternalServerError, generic, nil)
	}
}

// MyListings returns the authenticated user's own listings (profile page).
func (h *PropertyHandler) MyListings(c *gin.Context) {
	props, err := h.Svc.ListByOwner(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error al cargar las propiedades", nil)
		return
	}
	if props == nil {
		props = []entity.Property{}
	}
	response.Success(c, http.StatusOK, props, "my listings", nil)
}

func (h *PropertyHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	props, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("listing search failed")
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, props, "search results", map[string]any{"count": len(props)})
}

func (h *PropertyHandler) Contact(c *gin.Context) {
	links, err := h.Svc.Contact(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrPropertyNotFound) {
			response.Error[any](c, http.StatusNotFound, "Propiedad no encontrada", nil)
			return
		}
		response.Error[any](c, http.StatusNotFound, "El propietario no tiene teléfono de contacto", nil)
		return
	}
	response.Success(c, http.StatusOK, links, "contact links", nil)
}
