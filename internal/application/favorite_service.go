package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/internal/domain/repository"
)

// FavoriteService manages per-user favorite sets. The toggle is pushed down
// to the repository as a single atomic operation, so two sessions toggling
// the same property never lose each other's writes.
type FavoriteService struct {
	Repo       repository.FavoriteRepository
	Properties repository.PropertyRepository
	Logger     *logrus.Logger
}

func NewFavoriteService(repo repository.FavoriteRepository, props repository.PropertyRepository, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{Repo: repo, Properties: props, Logger: logger}
}

// Toggle flips membership of propertyID in userID's favorite set and
// reports whether the property is now favorited.
func (s *FavoriteService) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	if _, err := s.Properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPropertyNotFound
		}
		return false, err
	}
	return s.Repo.Toggle(ctx, userID, propertyID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	return s.Repo.IsFavorite(ctx, userID, propertyID)
}

// IDs returns the raw favorite set for profile/list rendering.
func (s *FavoriteService) IDs(ctx context.Context, userID string) ([]string, error) {
	return s.Repo.IDsByUser(ctx, userID)
}

// List returns the favorited listings, most recently favorited first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]entity.Property, error) {
	props, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = []entity.Property{}
	}
	return props, nil
}
