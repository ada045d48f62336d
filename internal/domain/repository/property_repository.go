package repository

import (
	"context"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
)

// PropertyRepository defines listing-related database operations.
// List pushes the filter down to the storage layer; results come back in
// creation order (newest first).
type PropertyRepository interface {
	List(ctx context.Context, f entity.Filter) ([]entity.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error)
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	Create(ctx context.Context, p *entity.Property) error
	Update(ctx context.Context, p *entity.Property) error
	Delete(ctx context.Context, id string) error
}
