package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/estatedesk/estatedesk/internal/domain"
)

const leadColumns = `id, name, phone, COALESCE(email, ''), COALESCE(source, ''),
	temperature, stage, COALESCE(budget, 0), assigned_to, next_followup_at,
	COALESCE(notes, ''), created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*Lead, error) {
	lead := &Lead{}
	err := row.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Source,
		&lead.Temperature, &lead.Stage, &lead.Budget, &lead.AssignedTo,
		&lead.NextFollowupAt, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// CreateLead inserts a new lead.
func (db *DB) CreateLead(ctx context.Context, lead *Lead) (*Lead, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO leads (name, phone, email, source, temperature, stage, budget, assigned_to, next_followup_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+leadColumns,
		lead.Name, lead.Phone, lead.Email, lead.Source, lead.Temperature,
		lead.Stage, lead.Budget, lead.AssignedTo, lead.NextFollowupAt, lead.Notes,
	)
	created, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("creating lead: %w", err)
	}
	return created, nil
}

// LeadFilter narrows ListLeads. Zero values mean "no filter".
type LeadFilter struct {
	NeedsFollowup bool
	Stage         domain.Stage
	AssignedTo    string
	Limit         int
}

// ListLeads returns leads matching the filter, newest first.
func (db *DB) ListLeads(ctx context.Context, filter LeadFilter) ([]Lead, error) {
	var conds []string
	var args []any

	if filter.NeedsFollowup {
		conds = append(conds, "next_followup_at IS NOT NULL AND stage NOT IN ('closed', 'lost')")
	}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		conds = append(conds, fmt.Sprintf("stage = $%d", len(args)))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		conds = append(conds, fmt.Sprintf("assigned_to = $%d", len(args)))
	}

	query := "SELECT " + leadColumns + " FROM leads"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// GetLeadByID retrieves a lead by ID.
func (db *DB) GetLeadByID(ctx context.Context, id string) (*Lead, error) {
	row := db.Pool.QueryRow(ctx,
		"SELECT "+leadColumns+" FROM leads WHERE id = $1", id)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("getting lead by id: %w", err)
	}
	return lead, nil
}

// UpdateLeadStage moves a lead to a new funnel stage.
func (db *DB) UpdateLeadStage(ctx context.Context, id string, stage domain.Stage) (*Lead, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE leads SET stage = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+leadColumns,
		id, stage)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("updating lead stage: %w", err)
	}
	return lead, nil
}

// SetLeadFollowup sets or clears a lead's next follow-up time.
func (db *DB) SetLeadFollowup(ctx context.Context, id string, at *time.Time) (*Lead, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE leads SET next_followup_at = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+leadColumns,
		id, at)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("setting lead followup: %w", err)
	}
	return lead, nil
}

// UpdateLeadTemperature reclassifies a lead's interest level.
func (db *DB) UpdateLeadTemperature(ctx context.Context, id string, temp domain.Temperature) (*Lead, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE leads SET temperature = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+leadColumns,
		id, temp)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("updating lead temperature: %w", err)
	}
	return lead, nil
}

// AssignLead assigns a lead to an agent, or unassigns it when agentID is nil.
func (db *DB) AssignLead(ctx context.Context, id string, agentID *string) (*Lead, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE leads SET assigned_to = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+leadColumns,
		id, agentID)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("assigning lead: %w", err)
	}
	return lead, nil
}

// DeleteLead removes a lead and its dependent records via FK cascade.
func (db *DB) DeleteLead(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM leads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s not found", id)
	}
	return nil
}
