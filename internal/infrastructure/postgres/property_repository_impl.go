package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/internal/domain/repository"
)

const propertyColumns = `
	id, title, description, address, city, price, currency, transaction_type,
	property_type, land_size, construction_size, bedrooms, bathrooms,
	parking_spots, features, images, lat, lng, owner_id, created_at, updated_at`

// same column list qualified for joins against the favorites table
const ownedPropertyColumns = `
	p.id, p.title, p.description, p.address, p.city, p.price, p.currency,
	p.transaction_type, p.property_type, p.land_size, p.construction_size,
	p.bedrooms, p.bathrooms, p.parking_spots, p.features, p.images, p.lat,
	p.lng, p.owner_id, p.created_at, p.updated_at`

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

func (r *PropertyRepository) List(ctx context.Context, f entity.Filter) ([]entity.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties`
	where, args := filterClause(f)
	query += where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

// filterClause turns the defined filter fields into an AND-combined WHERE.
func filterClause(f entity.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, cond+"$"+strconv.Itoa(len(args)))
	}
	if f.TransactionType != nil {
		add("transaction_type = ", string(*f.TransactionType))
	}
	if f.PropertyType != nil {
		add("property_type = ", string(*f.PropertyType))
	}
	if f.City != nil {
		add("city = ", *f.City)
	}
	if f.MinPrice != nil {
		add("price >= ", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= ", *f.MaxPrice)
	}
	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+propertyColumns+`
		FROM properties
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+propertyColumns+`
		FROM properties
		WHERE id = $1
	`, id)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO properties (
			id, title, description, address, city, price, currency,
			transaction_type, property_type, land_size, construction_size,
			bedrooms, bathrooms, parking_spots, features, images, lat, lng,
			owner_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`, p.ID, p.Title, p.Description, p.Address, p.City, p.Price, string(p.Currency),
		string(p.TransactionType), string(p.PropertyType), p.LandSize, p.ConstructionSize,
		p.Bedrooms, p.Bathrooms, p.ParkingSpots, p.Features, p.Images,
		p.Location.Lat, p.Location.Lng, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE properties SET
			title = $1, description = $2, address = $3, city = $4, price = $5,
			currency = $6, transaction_type = $7, property_type = $8,
			land_size = $9, construction_size = $10, bedrooms = $11,
			bathrooms = $12, parking_spots = $13, features = $14, images = $15,
			lat = $16, lng = $17, updated_at = $18
		WHERE id = $19
	`, p.Title, p.Description, p.Address, p.City, p.Price, string(p.Currency),
		string(p.TransactionType), string(p.PropertyType), p.LandSize,
		p.ConstructionSize, p.Bedrooms, p.Bathrooms, p.ParkingSpots,
		p.Features, p.Images, p.Location.Lat, p.Location.Lng, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (*entity.Property, error) {
	p := &entity.Property{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address, &p.City,
		&p.Price, &p.Currency, &p.TransactionType, &p.PropertyType,
		&p.LandSize, &p.ConstructionSize, &p.Bedrooms, &p.Bathrooms,
		&p.ParkingSpots, &p.Features, &p.Images, &p.Location.Lat,
		&p.Location.Lng, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProperties(rows pgx.Rows) ([]entity.Property, error) {
	var out []entity.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

var _ repository.PropertyRepository = (*PropertyRepository)(nil)
