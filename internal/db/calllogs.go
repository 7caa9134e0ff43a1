package db

import (
	"context"
	"fmt"
)

const callColumns = `id, lead_id, agent_id, outcome,
	COALESCE(duration_secs, 0), COALESCE(notes, ''), created_at`

// CreateCallLog records a call against a lead.
func (db *DB) CreateCallLog(ctx context.Context, c *CallLog) (*CallLog, error) {
	created := &CallLog{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO call_logs (lead_id, agent_id, outcome, duration_secs, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+callColumns,
		c.LeadID, c.AgentID, c.Outcome, c.DurationSecs, c.Notes,
	).Scan(&created.ID, &created.LeadID, &created.AgentID, &created.Outcome,
		&created.DurationSecs, &created.Notes, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating call log: %w", err)
	}
	return created, nil
}

// ListCallLogs returns the most recent call logs, optionally scoped to an
// agent. limit <= 0 means no cap.
func (db *DB) ListCallLogs(ctx context.Context, agentID string, limit int) ([]CallLog, error) {
	query := "SELECT " + callColumns + " FROM call_logs"
	var args []any
	if agentID != "" {
		args = append(args, agentID)
		query += " WHERE agent_id = $1"
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing call logs: %w", err)
	}
	defer rows.Close()

	var calls []CallLog
	for rows.Next() {
		var c CallLog
		if err := rows.Scan(&c.ID, &c.LeadID, &c.AgentID, &c.Outcome,
			&c.DurationSecs, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning call log: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// ListCallLogsForLead returns all calls logged against one lead, newest first.
func (db *DB) ListCallLogsForLead(ctx context.Context, leadID string) ([]CallLog, error) {
	rows, err := db.Pool.Query(ctx,
		"SELECT "+callColumns+" FROM call_logs WHERE lead_id = $1 ORDER BY created_at DESC",
		leadID)
	if err != nil {
		return nil, fmt.Errorf("listing call logs for lead: %w", err)
	}
	defer rows.Close()

	var calls []CallLog
	for rows.Next() {
		var c CallLog
		if err := rows.Scan(&c.ID, &c.LeadID, &c.AgentID, &c.Outcome,
			&c.DurationSecs, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning call log: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}
