package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lodgetrack/timeclock-backend/internal/domain/property"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/database"
)

type propertyRepository struct {
	db *database.DB
}

func NewPropertyRepository(db *database.DB) property.PropertyRepository {
	return &propertyRepository{db: db}
}

// GetByID implements property.PropertyRepository.
func (r *propertyRepository) GetByID(ctx context.Context, id string) (property.Property, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var p property.Property
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return property.Property{}, property.ErrPropertyNotFound
		}
		return property.Property{}, fmt.Errorf("failed to get property: %w", err)
	}

	return p, nil
}

// ListByOwner implements property.PropertyRepository.
func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]property.Property, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM properties
		WHERE owner_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []property.Property
	for rows.Next() {
		var p property.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}

	return properties, nil
}
