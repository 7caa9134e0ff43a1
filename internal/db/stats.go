package db

import (
	"context"
	"fmt"
)

// AgentStats holds per-agent aggregates for the agent dashboard. The monthly
// target is filled in from the targets config by the stats handler, not here.
type AgentStats struct {
	UserID           string  `json:"user_id"`
	TotalLeads       int64   `json:"total_leads"`
	HotLeads         int64   `json:"hot_leads"`
	LeadsThisMonth   int64   `json:"leads_this_month"`
	CallsThisMonth   int64   `json:"calls_this_month"`
	VisitsScheduled  int64   `json:"visits_scheduled"`
	ClosedDealsMonth int64   `json:"closed_deals_month"`
	RevenueMonth     float64 `json:"revenue_month"`
	MonthlyAchieved  float64 `json:"monthly_achieved"`
	MonthlyTarget    float64 `json:"monthly_target,omitempty"`
}

// GetAgentStats queries per-agent aggregates. "This month" is the current
// calendar month in the database's time zone.
func (db *DB) GetAgentStats(ctx context.Context, agentID string) (*AgentStats, error) {
	stats := &AgentStats{UserID: agentID}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE assigned_to = $1`, agentID,
	).Scan(&stats.TotalLeads)
	if err != nil {
		return nil, fmt.Errorf("counting leads: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE assigned_to = $1 AND temperature = 'hot' AND stage NOT IN ('closed', 'lost')`,
		agentID,
	).Scan(&stats.HotLeads)
	if err != nil {
		return nil, fmt.Errorf("counting hot leads: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE assigned_to = $1 AND created_at >= date_trunc('month', now())`,
		agentID,
	).Scan(&stats.LeadsThisMonth)
	if err != nil {
		return nil, fmt.Errorf("counting monthly leads: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM call_logs WHERE agent_id = $1 AND created_at >= date_trunc('month', now())`,
		agentID,
	).Scan(&stats.CallsThisMonth)
	if err != nil {
		return nil, fmt.Errorf("counting monthly calls: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM site_visits WHERE agent_id = $1 AND status = 'scheduled'`,
		agentID,
	).Scan(&stats.VisitsScheduled)
	if err != nil {
		return nil, fmt.Errorf("counting scheduled visits: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)
		 FROM deals
		 WHERE agent_id = $1 AND status = 'closed' AND closed_at >= date_trunc('month', now())`,
		agentID,
	).Scan(&stats.ClosedDealsMonth, &stats.RevenueMonth)
	if err != nil {
		return nil, fmt.Errorf("summing monthly deals: %w", err)
	}

	stats.MonthlyAchieved = stats.RevenueMonth
	return stats, nil
}

// DashboardStats holds the org-wide rollup shown to admins and managers.
type DashboardStats struct {
	TotalLeads       int64   `json:"total_leads"`
	HotLeads         int64   `json:"hot_leads"`
	TotalProperties  int64   `json:"total_properties"`
	TotalProjects    int64   `json:"total_projects"`
	VisitsToday      int64   `json:"visits_today"`
	OpenDeals        int64   `json:"open_deals"`
	ClosedDealsMonth int64   `json:"closed_deals_month"`
	RevenueMonth     float64 `json:"revenue_month"`
}

// GetDashboardStats queries org-wide aggregate counts.
func (db *DB) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads`,
	).Scan(&stats.TotalLeads)
	if err != nil {
		return nil, fmt.Errorf("counting leads: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE temperature = 'hot' AND stage NOT IN ('closed', 'lost')`,
	).Scan(&stats.HotLeads)
	if err != nil {
		return nil, fmt.Errorf("counting hot leads: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM properties`,
	).Scan(&stats.TotalProperties)
	if err != nil {
		return nil, fmt.Errorf("counting properties: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects`,
	).Scan(&stats.TotalProjects)
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM site_visits
		 WHERE scheduled_at >= date_trunc('day', now())
		   AND scheduled_at < date_trunc('day', now()) + interval '1 day'`,
	).Scan(&stats.VisitsToday)
	if err != nil {
		return nil, fmt.Errorf("counting today's visits: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM deals WHERE status = 'open'`,
	).Scan(&stats.OpenDeals)
	if err != nil {
		return nil, fmt.Errorf("counting open deals: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)
		 FROM deals
		 WHERE status = 'closed' AND closed_at >= date_trunc('month', now())`,
	).Scan(&stats.ClosedDealsMonth, &stats.RevenueMonth)
	if err != nil {
		return nil, fmt.Errorf("summing monthly deals: %w", err)
	}

	return stats, nil
}
