package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/estatedesk/estatedesk/internal/domain"
)

const visitColumns = `id, lead_id, agent_id, property_id, project_id,
	scheduled_at, status, COALESCE(notes, ''), created_at`

// CreateSiteVisit schedules a new site visit.
func (db *DB) CreateSiteVisit(ctx context.Context, v *SiteVisit) (*SiteVisit, error) {
	created := &SiteVisit{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO site_visits (lead_id, agent_id, property_id, project_id, scheduled_at, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+visitColumns,
		v.LeadID, v.AgentID, v.PropertyID, v.ProjectID, v.ScheduledAt, v.Status, v.Notes,
	).Scan(&created.ID, &created.LeadID, &created.AgentID, &created.PropertyID, &created.ProjectID,
		&created.ScheduledAt, &created.Status, &created.Notes, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating site visit: %w", err)
	}
	return created, nil
}

// VisitFilter narrows ListSiteVisits. Zero values mean "no filter".
type VisitFilter struct {
	AgentID string
	LeadID  string
	Status  domain.VisitStatus
}

// ListSiteVisits returns site visits matching the filter, soonest first.
func (db *DB) ListSiteVisits(ctx context.Context, filter VisitFilter) ([]SiteVisit, error) {
	var conds []string
	var args []any

	if filter.AgentID != "" {
		args = append(args, filter.AgentID)
		conds = append(conds, fmt.Sprintf("agent_id = $%d", len(args)))
	}
	if filter.LeadID != "" {
		args = append(args, filter.LeadID)
		conds = append(conds, fmt.Sprintf("lead_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := "SELECT " + visitColumns + " FROM site_visits"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY scheduled_at ASC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing site visits: %w", err)
	}
	defer rows.Close()

	var visits []SiteVisit
	for rows.Next() {
		var v SiteVisit
		if err := rows.Scan(&v.ID, &v.LeadID, &v.AgentID, &v.PropertyID, &v.ProjectID,
			&v.ScheduledAt, &v.Status, &v.Notes, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning site visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// GetSiteVisitByID retrieves a site visit by ID.
func (db *DB) GetSiteVisitByID(ctx context.Context, id string) (*SiteVisit, error) {
	v := &SiteVisit{}
	err := db.Pool.QueryRow(ctx,
		"SELECT "+visitColumns+" FROM site_visits WHERE id = $1", id,
	).Scan(&v.ID, &v.LeadID, &v.AgentID, &v.PropertyID, &v.ProjectID,
		&v.ScheduledAt, &v.Status, &v.Notes, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting site visit by id: %w", err)
	}
	return v, nil
}

// UpdateVisitStatus moves a site visit through its lifecycle.
func (db *DB) UpdateVisitStatus(ctx context.Context, id string, status domain.VisitStatus) (*SiteVisit, error) {
	v := &SiteVisit{}
	err := db.Pool.QueryRow(ctx,
		`UPDATE site_visits SET status = $2 WHERE id = $1
		 RETURNING `+visitColumns,
		id, status,
	).Scan(&v.ID, &v.LeadID, &v.AgentID, &v.PropertyID, &v.ProjectID,
		&v.ScheduledAt, &v.Status, &v.Notes, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("updating visit status: %w", err)
	}
	return v, nil
}
