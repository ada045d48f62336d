package repository

import (
	"context"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
)

// FavoriteRepository manages a user's favorite set. Toggle flips membership
// atomically server-side and reports the resulting state, so concurrent
// toggles never lose writes.
type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, propertyID string) (favorited bool, err error)
	IsFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	IDsByUser(ctx context.Context, userID string) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Property, error)
}
