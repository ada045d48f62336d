package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/internal/domain/repository"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Toggle flips membership in one statement so concurrent toggles from other
// sessions cannot interleave with a read-modify-write.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	var favorited bool
	err := r.pool.QueryRow(ctx, `
		WITH removed AS (
			DELETE FROM favorites
			WHERE user_id = $1 AND property_id = $2
			RETURNING 1
		), added AS (
			INSERT INTO favorites (user_id, property_id)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM removed)
			ON CONFLICT (user_id, property_id) DO NOTHING
			RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM added)
	`, userID, propertyID).Scan(&favorited)
	return favorited, err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2
		)
	`, userID, propertyID).Scan(&ok)
	return ok, err
}

func (r *FavoriteRepository) IDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT property_id FROM favorites WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+ownedPropertyColumns+`
		FROM properties p
		JOIN favorites f ON f.property_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
