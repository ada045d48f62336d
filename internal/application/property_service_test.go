package application

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/internal/domain/repository"
)

type fakePropertyRepo struct {
	mu    sync.Mutex
	byID  map[string]entity.Property
	order []string
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{byID: map[string]entity.Property{}}
}

func (r *fakePropertyRepo) List(_ context.Context, f entity.Filter) ([]entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.Property, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		all = append(all, r.byID[r.order[i]])
	}
	return entity.ApplyFilter(all, f), nil
}

func (r *fakePropertyRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Property
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.byID[r.order[i]]; p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id string) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUserRepo struct {
	byID map[string]entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = *u
	return nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	uploads []string
}

func (s *fakeImageStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, objectPath)
	return "https://img.test/" + objectPath, nil
}

func newPropertyService(t *testing.T, withRedis bool) (*PropertyService, *fakePropertyRepo, *fakeUserRepo, *fakeImageStore) {
	t.Helper()
	repo := newFakePropertyRepo()
	users := &fakeUserRepo{byID: map[string]entity.User{}}
	images := &fakeImageStore{}
	var rdb *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	svc := NewPropertyService(repo, users, images, rdb, logrus.New(), nil, nil, "")
	return svc, repo, users, images
}

func sampleCreateInput() CreateInput {
	return CreateInput{
		Title:           "Casa en Cala Cala",
		Description:     "Amplia casa con jardín",
		Address:         "Av. América Este 1234",
		City:            "Cochabamba",
		Price:           185000,
		Currency:        entity.CurrencyUSD,
		TransactionType: entity.TransactionSale,
		PropertyType:    entity.PropertyHouse,
		LandSize:        420,
		Location:        entity.Location{Lat: -17.37, Lng: -66.15},
	}
}

func TestCreateAssignsIDOwnerAndTimestamps(t *testing.T) {
	svc, _, _, _ := newPropertyService(t, false)

	p, err := svc.Create(context.Background(), "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)

	_, err = uuid.Parse(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", p.OwnerID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.NotNil(t, p.Features)
}

func TestCreateUploadsImagesInOrder(t *testing.T) {
	svc, _, _, images := newPropertyService(t, false)

	var ups []ImageUpload
	for i := 0; i < 5; i++ {
		ups = append(ups, ImageUpload{
			Filename:    fmt.Sprintf("photo-%d.jpg", i),
			ContentType: "image/jpeg",
			Data:        []byte{byte(i)},
		})
	}

	p, err := svc.Create(context.Background(), "owner-1", sampleCreateInput(), ups)
	require.NoError(t, err)

	require.Len(t, p.Images, 5)
	assert.Len(t, images.uploads, 5)
	seen := map[string]bool{}
	for _, u := range p.Images {
		assert.Contains(t, u, "https://img.test/listings/"+p.ID+"/")
		assert.False(t, seen[u], "duplicate image url")
		seen[u] = true
	}
}

func TestCreateWithoutImageStore(t *testing.T) {
	repo := newFakePropertyRepo()
	users := &fakeUserRepo{byID: map[string]entity.User{}}
	svc := NewPropertyService(repo, users, nil, nil, logrus.New(), nil, nil, "")

	_, err := svc.Create(context.Background(), "owner-1", sampleCreateInput(), []ImageUpload{{Filename: "a.jpg"}})
	assert.ErrorIs(t, err, ErrImagesUnavailable)

	// no photos is still fine
	_, err = svc.Create(context.Background(), "owner-1", sampleCreateInput(), nil)
	assert.NoError(t, err)
}

func TestUpdatePartialPreservesFields(t *testing.T) {
	svc, _, _, _ := newPropertyService(t, false)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)

	newPrice := 190000.0
	got, err := svc.Update(ctx, "owner-1", p.ID, UpdateInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 190000.0, got.Price)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.City, got.City)
	assert.Equal(t, p.Location, got.Location)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))
}

func TestUpdateMovesTimestampStrictlyForward(t *testing.T) {
	svc, _, _, _ := newPropertyService(t, false)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)

	prev := p.UpdatedAt
	for i := 0; i < 3; i++ {
		title := fmt.Sprintf("t%d", i)
		got, err := svc.Update(ctx, "owner-1", p.ID, UpdateInput{Title: &title})
		require.NoError(t, err)
		assert.True(t, got.UpdatedAt.After(prev))
		prev = got.UpdatedAt
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc, _, _, _ := newPropertyService(t, false)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(ctx, "intruder", p.ID, UpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDelete(t *testing.T) {
	svc, _, _, _ := newPropertyService(t, false)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "intruder", p.ID), ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, "owner-1", p.ID))

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestContactLinks(t *testing.T) {
	svc, _, users, _ := newPropertyService(t, false)
	ctx := context.Background()

	users.byID["owner-1"] = entity.User{ID: "owner-1", Phone: "+591 71234567"}
	users.byID["owner-2"] = entity.User{ID: "owner-2"}

	p1, err := svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)
	p2, err := svc.Create(ctx, "owner-2", sampleCreateInput(), nil)
	require.NoError(t, err)

	links, err := svc.Contact(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "tel:+59171234567", links.CallURL)
	assert.Contains(t, links.WhatsAppURL, "wa.me/59171234567")

	_, err = svc.Contact(ctx, p2.ID)
	assert.ErrorIs(t, err, ErrNoContactPhone)
}

func TestMarkersRecenterOnCityFilter(t *testing.T) {
	svc, _, _, _ := newPropertyService(t, false)
	ctx := context.Background()

	in := sampleCreateInput()
	_, err := svc.Create(ctx, "owner-1", in, nil)
	require.NoError(t, err)

	in2 := sampleCreateInput()
	in2.City = "La Paz"
	in2.TransactionType = entity.TransactionRental
	in2.Price = 3500
	in2.Currency = entity.CurrencyBOB
	_, err = svc.Create(ctx, "owner-1", in2, nil)
	require.NoError(t, err)

	set, err := svc.Markers(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Len(t, set.Markers, 2)
	assert.Equal(t, entity.Location{Lat: -17.3895, Lng: -66.1568}, set.Center)

	city := "La Paz"
	set, err = svc.Markers(ctx, entity.Filter{City: &city})
	require.NoError(t, err)
	require.Len(t, set.Markers, 1)
	assert.Equal(t, entity.Location{Lat: -16.5000, Lng: -68.1500}, set.Center)
	assert.Equal(t, "#22C55E", set.Markers[0].Color)
	assert.Equal(t, "Bs 3.500", set.Markers[0].PriceLabel)
}

func TestListCachesUnfilteredSet(t *testing.T) {
	svc, repo, _, _ := newPropertyService(t, true)
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)

	first, err := svc.List(ctx, entity.Filter{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// mutate storage behind the service's back; the cached set still serves
	require.NoError(t, repo.Create(ctx, &entity.Property{
		ID: uuid.NewString(), City: "Sucre", Price: 1,
		TransactionType: entity.TransactionSale, PropertyType: entity.PropertyHouse,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	second, err := svc.List(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Len(t, second, 1)

	// a write through the service invalidates
	_, err = svc.Create(ctx, "owner-1", sampleCreateInput(), nil)
	require.NoError(t, err)
	third, err := svc.List(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Len(t, third, 3)
}
