package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// Wizard steps, in order. Transitions only move one step at a time;
// forward transitions are gated by per-step validation.
const (
	StepBasic    = 1
	StepLocation = 2
	StepDetails  = 3
	StepReview   = 4
)

var ErrDraftInvalid = errors.New("draft has validation errors")

// ListingDraft is the server-side state of the listing wizard for one user.
type ListingDraft struct {
	Step             int                    `json:"step"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Price            float64                `json:"price"`
	Currency         entity.Currency        `json:"currency"`
	TransactionType  entity.TransactionType `json:"transactionType"`
	PropertyType     entity.PropertyType    `json:"propertyType"`
	Address          string                 `json:"address"`
	City             string                 `json:"city"`
	Location         *entity.Location       `json:"location,omitempty"`
	LandSize         float64                `json:"landSize"`
	ConstructionSize float64                `json:"constructionSize"`
	Bedrooms         int                    `json:"bedrooms"`
	Bathrooms        int                    `json:"bathrooms"`
	ParkingSpots     int                    `json:"parkingSpots"`
	Features         []string               `json:"features"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func NewListingDraft() *ListingDraft {
	return &ListingDraft{
		Step:            StepBasic,
		Currency:        entity.CurrencyUSD,
		TransactionType: entity.TransactionSale,
		PropertyType:    entity.PropertyHouse,
		Features:        []string{},
	}
}

// ValidateStep checks the fields a step collects and returns field-keyed
// error messages; an empty map means the step may be left.
func (d *ListingDraft) ValidateStep(step int) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepBasic:
		if d.Title == "" {
			errs["title"] = "El título es obligatorio"
		}
		if d.Description == "" {
			errs["description"] = "La descripción es obligatoria"
		}
		if d.Price <= 0 {
			errs["price"] = "El precio debe ser mayor a 0"
		}
		if !d.Currency.Valid() {
			errs["currency"] = "Moneda inválida"
		}
		if !d.TransactionType.Valid() {
			errs["transactionType"] = "Tipo de transacción inválido"
		}
		if !d.PropertyType.Valid() {
			errs["propertyType"] = "Tipo de propiedad inválido"
		}
	case StepLocation:
		if d.Address == "" {
			errs["address"] = "La dirección es obligatoria"
		}
		if d.City == "" {
			errs["city"] = "La ciudad es obligatoria"
		}
		if d.Location == nil {
			errs["location"] = "Debes seleccionar una ubicación en el mapa"
		}
	case StepDetails:
		if d.LandSize <= 0 {
			errs["landSize"] = "El tamaño del terreno debe ser mayor a 0"
		}
		if d.PropertyType != entity.PropertyLand && d.ConstructionSize <= 0 {
			errs["constructionSize"] = "El tamaño de la construcción debe ser mayor a 0"
		}
	}
	return errs
}

// ValidateAll re-checks every gating step before submission.
func (d *ListingDraft) ValidateAll() map[string]string {
	for _, step := range []int{StepBasic, StepLocation, StepDetails} {
		if errs := d.ValidateStep(step); len(errs) > 0 {
			return errs
		}
	}
	return map[string]string{}
}

func draftKey(userID string) string { return "listing:draft:" + userID }

// DraftService persists wizard state in Redis, one draft per user.
// Drafts expire after TTL; there is no partial progress beyond that.
type DraftService struct {
	Redis      *redis.Client
	Properties *PropertyService
	Logger     *logrus.Logger
	TTL        time.Duration
}

func NewDraftService(rdb *redis.Client, props *PropertyService, logger *logrus.Logger, ttl time.Duration) *DraftService {
	return &DraftService{Redis: rdb, Properties: props, Logger: logger, TTL: ttl}
}

// Get returns the user's draft, or a fresh one at the first step.
func (s *DraftService) Get(ctx context.Context, userID string) (*ListingDraft, error) {
	var d ListingDraft
	ok, err := helpers.RedisGetJSON(ctx, s.Redis, draftKey(userID), &d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewListingDraft(), nil
	}
	return &d, nil
}

func (s *DraftService) save(ctx context.Context, userID string, d *ListingDraft) error {
	d.UpdatedAt = time.Now().UTC()
	return helpers.RedisSetJSON(ctx, s.Redis, draftKey(userID), d, s.TTL)
}

// Put overwrites the draft's collected fields without validating; the step
// is clamped to its current value (steps only change via Advance/Back).
func (s *DraftService) Put(ctx context.Context, userID string, d *ListingDraft) (*ListingDraft, error) {
	cur, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.Step = cur.Step
	if d.Features == nil {
		d.Features = []string{}
	}
	if err := s.save(ctx, userID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Advance moves the draft forward one step if the current step validates.
// Returns the per-field errors that blocked it, if any.
func (s *DraftService) Advance(ctx context.Context, userID string) (*ListingDraft, map[string]string, error) {
	d, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if errs := d.ValidateStep(d.Step); len(errs) > 0 {
		return d, errs, nil
	}
	if d.Step < StepReview {
		d.Step++
	}
	if err := s.save(ctx, userID, d); err != nil {
		return nil, nil, err
	}
	return d, nil, nil
}

// Back moves the draft one step back. Always allowed.
func (s *DraftService) Back(ctx context.Context, userID string) (*ListingDraft, error) {
	d, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d.Step > StepBasic {
		d.Step--
	}
	if err := s.save(ctx, userID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Discard drops the draft entirely.
func (s *DraftService) Discard(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.Redis, draftKey(userID))
}

// Submit validates the whole draft, creates the listing with its photos,
// and deletes the draft. Returns the created property.
func (s *DraftService) Submit(ctx context.Context, userID string, images []ImageUpload) (*entity.Property, map[string]string, error) {
	d, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if errs := d.ValidateAll(); len(errs) > 0 {
		return nil, errs, ErrDraftInvalid
	}

	p, err := s.Properties.Create(ctx, userID, CreateInput{
		Title:            d.Title,
		Description:      d.Description,
		Address:          d.Address,
		City:             d.City,
		Price:            d.Price,
		Currency:         d.Currency,
		TransactionType:  d.TransactionType,
		PropertyType:     d.PropertyType,
		LandSize:         d.LandSize,
		ConstructionSize: d.ConstructionSize,
		Bedrooms:         d.Bedrooms,
		Bathrooms:        d.Bathrooms,
		ParkingSpots:     d.ParkingSpots,
		Features:         d.Features,
		Location:         *d.Location,
	}, images)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Discard(ctx, userID); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("draft cleanup failed")
	}
	return p, nil, nil
}
