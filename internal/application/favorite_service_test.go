package application

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
)

type fakeFavoriteRepo struct {
	mu    sync.Mutex
	props *fakePropertyRepo
	// userID -> ordered property ids, newest first
	byUser map[string][]string
}

func newFakeFavoriteRepo(props *fakePropertyRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{props: props, byUser: map[string][]string{}}
}

func (r *fakeFavoriteRepo) Toggle(_ context.Context, userID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.byUser[userID]
	for i, id := range ids {
		if id == propertyID {
			r.byUser[userID] = append(ids[:i], ids[i+1:]...)
			return false, nil
		}
	}
	r.byUser[userID] = append([]string{propertyID}, ids...)
	return true, nil
}

func (r *fakeFavoriteRepo) IsFavorite(_ context.Context, userID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.byUser[userID] {
		if id == propertyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) IDsByUser(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.byUser[userID]...), nil
}

func (r *fakeFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]entity.Property, error) {
	ids, _ := r.IDsByUser(ctx, userID)
	var out []entity.Property
	for _, id := range ids {
		if p, err := r.props.GetByID(ctx, id); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func newFavoriteService(t *testing.T) (*FavoriteService, *fakePropertyRepo) {
	t.Helper()
	props := newFakePropertyRepo()
	return NewFavoriteService(newFakeFavoriteRepo(props), props, logrus.New()), props
}

func seedProperty(t *testing.T, props *fakePropertyRepo, id string) {
	t.Helper()
	require.NoError(t, props.Create(context.Background(), &entity.Property{
		ID: id, Title: "Listing " + id, City: "Cochabamba", Price: 1000,
		TransactionType: entity.TransactionSale, PropertyType: entity.PropertyHouse,
	}))
}

func TestToggleAddsThenRemoves(t *testing.T) {
	svc, props := newFavoriteService(t)
	ctx := context.Background()
	seedProperty(t, props, "p1")

	fav, err := svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, fav)

	is, err := svc.IsFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, is)

	fav, err = svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, fav)

	is, err = svc.IsFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, is)
}

func TestTogglePairReturnsToInitialState(t *testing.T) {
	svc, props := newFavoriteService(t)
	ctx := context.Background()
	seedProperty(t, props, "p1")

	before, err := svc.IDs(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)

	after, err := svc.IDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestToggleUnknownProperty(t *testing.T) {
	svc, _ := newFavoriteService(t)
	_, err := svc.Toggle(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestFavoritesArePerUser(t *testing.T) {
	svc, props := newFavoriteService(t)
	ctx := context.Background()
	seedProperty(t, props, "p1")
	seedProperty(t, props, "p2")

	_, err := svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "u2", "p2")
	require.NoError(t, err)

	ids1, err := svc.IDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids1)

	ids2, err := svc.IDs(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids2)
}

func TestListReturnsFavoritedProperties(t *testing.T) {
	svc, props := newFavoriteService(t)
	ctx := context.Background()
	seedProperty(t, props, "p1")
	seedProperty(t, props, "p2")

	_, err := svc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "u1", "p2")
	require.NoError(t, err)

	got, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// newest favorite first
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p1", got[1].ID)
}

func TestListEmptyIsNotNil(t *testing.T) {
	svc, _ := newFavoriteService(t)
	got, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
