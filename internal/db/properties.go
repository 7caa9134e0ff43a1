package db

import (
	"context"
	"fmt"
)

const propertyColumns = `id, title, type, project_id, location, price,
	COALESCE(bedrooms, 0), COALESCE(area_sqft, 0), available, created_at`

// CreateProperty inserts a new property listing.
func (db *DB) CreateProperty(ctx context.Context, p *Property) (*Property, error) {
	created := &Property{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO properties (title, type, project_id, location, price, bedrooms, area_sqft, available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+propertyColumns,
		p.Title, p.Type, p.ProjectID, p.Location, p.Price, p.Bedrooms, p.AreaSqft, p.Available,
	).Scan(&created.ID, &created.Title, &created.Type, &created.ProjectID, &created.Location,
		&created.Price, &created.Bedrooms, &created.AreaSqft, &created.Available, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating property: %w", err)
	}
	return created, nil
}

// ListProperties returns all properties, newest first.
func (db *DB) ListProperties(ctx context.Context) ([]Property, error) {
	rows, err := db.Pool.Query(ctx,
		"SELECT "+propertyColumns+" FROM properties ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	var properties []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.Title, &p.Type, &p.ProjectID, &p.Location,
			&p.Price, &p.Bedrooms, &p.AreaSqft, &p.Available, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// GetPropertyByID retrieves a property by ID.
func (db *DB) GetPropertyByID(ctx context.Context, id string) (*Property, error) {
	p := &Property{}
	err := db.Pool.QueryRow(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id = $1", id,
	).Scan(&p.ID, &p.Title, &p.Type, &p.ProjectID, &p.Location,
		&p.Price, &p.Bedrooms, &p.AreaSqft, &p.Available, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting property by id: %w", err)
	}
	return p, nil
}

// SetPropertyAvailable marks a property as available or sold out.
func (db *DB) SetPropertyAvailable(ctx context.Context, id string, available bool) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE properties SET available = $2 WHERE id = $1", id, available)
	if err != nil {
		return fmt.Errorf("updating property availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %s not found", id)
	}
	return nil
}

// DeleteProperty removes a property listing.
func (db *DB) DeleteProperty(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %s not found", id)
	}
	return nil
}
