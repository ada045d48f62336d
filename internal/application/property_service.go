package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/internal/domain/repository"
	"github.com/inmobo/inmobo-api/internal/geo"
	"github.com/inmobo/inmobo-api/internal/realtime"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("not the property owner")
	ErrNoContactPhone   = errors.New("owner has no contact phone")

	// ErrImagesUnavailable is returned when photos are submitted but no
	// image store is configured.
	ErrImagesUnavailable = errors.New("image storage unavailable")
)

const listCacheKey = "properties:all"
const listCacheTTL = 5 * time.Minute

// ImageStore persists listing photos and returns their public URLs.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// PropertyService owns the listing lifecycle: persistence, photo storage,
// search indexing, the list cache, and the realtime event feed.
type PropertyService struct {
	Repo    repository.PropertyRepository
	Users   repository.UserRepository
	Images  ImageStore
	Redis   *redis.Client
	Logger  *logrus.Logger
	Hub     *realtime.Hub         // nil disables event publication
	ES      *elasticsearch.Client // nil disables search indexing
	ESIndex string
}

func NewPropertyService(repo repository.PropertyRepository, users repository.UserRepository, images ImageStore, rdb *redis.Client, logger *logrus.Logger, hub *realtime.Hub, es *elasticsearch.Client, esIndex string) *PropertyService {
	return &PropertyService{
		Repo:    repo,
		Users:   users,
		Images:  images,
		Redis:   rdb,
		Logger:  logger,
		Hub:     hub,
		ES:      es,
		ESIndex: esIndex,
	}
}

// List returns the filtered listing set. The unfiltered set is served from
// the Redis cache when possible.
func (s *PropertyService) List(ctx context.Context, f entity.Filter) ([]entity.Property, error) {
	if f.Empty() && s.Redis != nil {
		var cached []entity.Property
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, listCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	props, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if f.Empty() && s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, listCacheKey, props, listCacheTTL); err != nil {
			s.Logger.WithError(err).Warn("listing cache write failed")
		}
	}
	return props, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*entity.Property, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// ImageUpload is one photo submitted with a new listing.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateInput carries everything the listing wizard collects.
type CreateInput struct {
	Title            string
	Description      string
	Address          string
	City             string
	Price            float64
	Currency         entity.Currency
	TransactionType  entity.TransactionType
	PropertyType     entity.PropertyType
	LandSize         float64
	ConstructionSize float64
	Bedrooms         int
	Bathrooms        int
	ParkingSpots     int
	Features         []string
	Location         entity.Location
}

// Create stores a new listing owned by ownerID. Photos are uploaded
// concurrently; the stored URL list keeps the submission order.
func (s *PropertyService) Create(ctx context.Context, ownerID string, in CreateInput, images []ImageUpload) (*entity.Property, error) {
	if len(images) > 0 && s.Images == nil {
		return nil, ErrImagesUnavailable
	}
	id := uuid.NewString()

	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			objectPath := path.Join("listings", id, uuid.NewString()+strings.ToLower(path.Ext(img.Filename)))
			url, err := s.Images.Upload(gctx, objectPath, img.ContentType, bytes.NewReader(img.Data))
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &entity.Property{
		ID:               id,
		Title:            in.Title,
		Description:      in.Description,
		Address:          in.Address,
		City:             in.City,
		Price:            in.Price,
		Currency:         in.Currency,
		TransactionType:  in.TransactionType,
		PropertyType:     in.PropertyType,
		LandSize:         in.LandSize,
		ConstructionSize: in.ConstructionSize,
		Bedrooms:         in.Bedrooms,
		Bathrooms:        in.Bathrooms,
		ParkingSpots:     in.ParkingSpots,
		Features:         in.Features,
		Images:           urls,
		Location:         in.Location,
		OwnerID:          ownerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, p, realtime.ListingCreated)
	return p, nil
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title            *string
	Description      *string
	Address          *string
	City             *string
	Price            *float64
	Currency         *entity.Currency
	TransactionType  *entity.TransactionType
	PropertyType     *entity.PropertyType
	LandSize         *float64
	ConstructionSize *float64
	Bedrooms         *int
	Bathrooms        *int
	ParkingSpots     *int
	Features         []string
	Location         *entity.Location
}

// Update applies a partial update on behalf of userID. Only the owner may
// mutate a listing; the update timestamp always moves strictly forward.
func (s *PropertyService) Update(ctx context.Context, userID, id string, in UpdateInput) (*entity.Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, ErrNotOwner
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
	if in.TransactionType != nil {
		p.TransactionType = *in.TransactionType
	}
	if in.PropertyType != nil {
		p.PropertyType = *in.PropertyType
	}
	if in.LandSize != nil {
		p.LandSize = *in.LandSize
	}
	if in.ConstructionSize != nil {
		p.ConstructionSize = *in.ConstructionSize
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}
	if in.ParkingSpots != nil {
		p.ParkingSpots = *in.ParkingSpots
	}
	if in.Features != nil {
		p.Features = in.Features
	}
	if in.Location != nil {
		p.Location = *in.Location
	}

	now := time.Now().UTC()
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Millisecond)
	}
	p.UpdatedAt = now

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, p, realtime.ListingUpdated)
	return p, nil
}

// Delete removes a listing on behalf of its owner.
func (s *PropertyService) Delete(ctx context.Context, userID, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.deleteFromIndex(ctx, id)
	if s.Hub != nil {
		s.Hub.Publish(realtime.Event{Type: realtime.ListingDeleted, PropertyID: id})
	}
	return nil
}

// Contact builds the outbound contact links for a listing's owner.
func (s *PropertyService) Contact(ctx context.Context, id string) (entity.ContactLinks, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return entity.ContactLinks{}, err
	}
	owner, err := s.Users.GetByID(ctx, p.OwnerID)
	if err != nil || owner.Phone == "" {
		return entity.ContactLinks{}, ErrNoContactPhone
	}
	return entity.BuildContactLinks(owner.Phone, p.Title), nil
}

// Marker is a map pin for one listing.
type Marker struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Price      float64         `json:"price"`
	PriceLabel string          `json:"priceLabel"`
	Currency   entity.Currency `json:"currency"`
	Color      string          `json:"color"`
	Location   entity.Location `json:"location"`
}

// MarkerSet is the marker payload plus the viewport center the client
// should fly to.
type MarkerSet struct {
	Center  entity.Location `json:"center"`
	Markers []Marker        `json:"markers"`
}

// Markers derives one colored pin per filtered listing. When a city filter
// is set the center is that city's reference point.
func (s *PropertyService) Markers(ctx context.Context, f entity.Filter) (MarkerSet, error) {
	props, err := s.List(ctx, f)
	if err != nil {
		return MarkerSet{}, err
	}
	set := MarkerSet{Center: geo.DefaultCenter, Markers: make([]Marker, 0, len(props))}
	if f.City != nil {
		if center, ok := geo.CenterOf(*f.City); ok {
			set.Center = center
		}
	}
	for i := range props {
		p := &props[i]
		set.Markers = append(set.Markers, Marker{
			ID:         p.ID,
			Title:      p.Title,
			Price:      p.Price,
			PriceLabel: entity.FormatPrice(p.Price, p.Currency),
			Currency:   p.Currency,
			Color:      p.TransactionType.MarkerColor(),
			Location:   p.Location,
		})
	}
	return set, nil
}

// Search runs a full-text query over the listing index. Returns the empty
// set when search is not configured.
func (s *PropertyService) Search(ctx context.Context, q string, size int) ([]entity.Property, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []entity.Property{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "address", "city"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Property `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.Property, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *PropertyService) afterWrite(ctx context.Context, p *entity.Property, ev realtime.EventType) {
	s.invalidateCache(ctx)
	s.index(ctx, p)
	if s.Hub != nil {
		s.Hub.Publish(realtime.Event{Type: ev, PropertyID: p.ID, Property: p})
	}
}

func (s *PropertyService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, listCacheKey); err != nil {
		s.Logger.WithError(err).Warn("listing cache invalidation failed")
	}
}

func (s *PropertyService) index(ctx context.Context, p *entity.Property) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	b, _ := json.Marshal(p)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("property_id", p.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("property_id", p.ID).Warn("es index response error")
	}
}

func (s *PropertyService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("property_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}
