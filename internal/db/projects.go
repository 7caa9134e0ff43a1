package db

import (
	"context"
	"fmt"
)

const projectColumns = `id, name, COALESCE(developer, ''), location,
	COALESCE(total_units, 0), COALESCE(price_min, 0), COALESCE(price_max, 0), created_at`

// CreateProject inserts a new housing project.
func (db *DB) CreateProject(ctx context.Context, p *Project) (*Project, error) {
	created := &Project{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO projects (name, developer, location, total_units, price_min, price_max)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+projectColumns,
		p.Name, p.Developer, p.Location, p.TotalUnits, p.PriceMin, p.PriceMax,
	).Scan(&created.ID, &created.Name, &created.Developer, &created.Location,
		&created.TotalUnits, &created.PriceMin, &created.PriceMax, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return created, nil
}

// ListProjects returns all projects, newest first.
func (db *DB) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := db.Pool.Query(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Developer, &p.Location,
			&p.TotalUnits, &p.PriceMin, &p.PriceMax, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectByID retrieves a project by ID.
func (db *DB) GetProjectByID(ctx context.Context, id string) (*Project, error) {
	p := &Project{}
	err := db.Pool.QueryRow(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = $1", id,
	).Scan(&p.ID, &p.Name, &p.Developer, &p.Location,
		&p.TotalUnits, &p.PriceMin, &p.PriceMax, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting project by id: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project. Properties in it keep their row with a
// null project reference.
func (db *DB) DeleteProject(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}
