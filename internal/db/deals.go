package db

import (
	"context"
	"fmt"
)

const dealColumns = `id, lead_id, agent_id, property_id, project_id,
	amount, COALESCE(token_amount, 0), status, closed_at, created_at`

// CreateDeal opens a new deal for a lead.
func (db *DB) CreateDeal(ctx context.Context, d *Deal) (*Deal, error) {
	created := &Deal{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO deals (lead_id, agent_id, property_id, project_id, amount, token_amount, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+dealColumns,
		d.LeadID, d.AgentID, d.PropertyID, d.ProjectID, d.Amount, d.TokenAmount, d.Status,
	).Scan(&created.ID, &created.LeadID, &created.AgentID, &created.PropertyID, &created.ProjectID,
		&created.Amount, &created.TokenAmount, &created.Status, &created.ClosedAt, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}
	return created, nil
}

// ListDeals returns deals, optionally scoped to an agent, newest first.
func (db *DB) ListDeals(ctx context.Context, agentID string) ([]Deal, error) {
	query := "SELECT " + dealColumns + " FROM deals"
	var args []any
	if agentID != "" {
		args = append(args, agentID)
		query += " WHERE agent_id = $1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []Deal
	for rows.Next() {
		var d Deal
		if err := rows.Scan(&d.ID, &d.LeadID, &d.AgentID, &d.PropertyID, &d.ProjectID,
			&d.Amount, &d.TokenAmount, &d.Status, &d.ClosedAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// GetDealByID retrieves a deal by ID.
func (db *DB) GetDealByID(ctx context.Context, id string) (*Deal, error) {
	d := &Deal{}
	err := db.Pool.QueryRow(ctx,
		"SELECT "+dealColumns+" FROM deals WHERE id = $1", id,
	).Scan(&d.ID, &d.LeadID, &d.AgentID, &d.PropertyID, &d.ProjectID,
		&d.Amount, &d.TokenAmount, &d.Status, &d.ClosedAt, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting deal by id: %w", err)
	}
	return d, nil
}

// CloseDeal marks a deal closed at the current time and records the final
// amount.
func (db *DB) CloseDeal(ctx context.Context, id string, amount float64) (*Deal, error) {
	d := &Deal{}
	err := db.Pool.QueryRow(ctx,
		`UPDATE deals SET status = 'closed', amount = $2, closed_at = now()
		 WHERE id = $1
		 RETURNING `+dealColumns,
		id, amount,
	).Scan(&d.ID, &d.LeadID, &d.AgentID, &d.PropertyID, &d.ProjectID,
		&d.Amount, &d.TokenAmount, &d.Status, &d.ClosedAt, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("closing deal: %w", err)
	}
	return d, nil
}

// CancelDeal marks a deal cancelled.
func (db *DB) CancelDeal(ctx context.Context, id string) (*Deal, error) {
	d := &Deal{}
	err := db.Pool.QueryRow(ctx,
		`UPDATE deals SET status = 'cancelled' WHERE id = $1
		 RETURNING `+dealColumns,
		id,
	).Scan(&d.ID, &d.LeadID, &d.AgentID, &d.PropertyID, &d.ProjectID,
		&d.Amount, &d.TokenAmount, &d.Status, &d.ClosedAt, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cancelling deal: %w", err)
	}
	return d, nil
}
