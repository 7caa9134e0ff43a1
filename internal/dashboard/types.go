// Package dashboard builds the agent dashboard view model: it fetches the
// agent's site visits, follow-up leads, stats, and recent calls concurrently,
// then derives overdue/today/upcoming partitions, a unified task list, and
// chart-ready rollups. Everything is recomputed from scratch on each load;
// nothing here caches between refreshes.
package dashboard

import (
	"time"

	"github.com/estatedesk/estatedesk/internal/domain"
)

// Lead is the wire shape of a lead as served by the API.
type Lead struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	Email          string             `json:"email,omitempty"`
	Source         string             `json:"source,omitempty"`
	Temperature    domain.Temperature `json:"temperature"`
	Stage          domain.Stage       `json:"stage"`
	Budget         float64            `json:"budget,omitempty"`
	NextFollowupAt *time.Time         `json:"next_followup_at,omitempty"`
}

// SiteVisit is the wire shape of a site visit as served by the API.
type SiteVisit struct {
	ID          string             `json:"id"`
	LeadID      string             `json:"lead_id"`
	PropertyID  *string            `json:"property_id,omitempty"`
	ProjectID   *string            `json:"project_id,omitempty"`
	ScheduledAt time.Time          `json:"scheduled_at"`
	Status      domain.VisitStatus `json:"status"`
	Notes       string             `json:"notes,omitempty"`
}

// CallLog is the wire shape of a call log as served by the API.
type CallLog struct {
	ID           string             `json:"id"`
	LeadID       string             `json:"lead_id"`
	Outcome      domain.CallOutcome `json:"outcome"`
	DurationSecs int                `json:"duration_secs,omitempty"`
	Notes        string             `json:"notes,omitempty"`
}

// AgentStats is the per-agent stats payload. MonthlyTarget is zero when no
// target is configured for the agent; FallbackClosedDeals then drives the
// target heuristic (the server defaults it to 5).
type AgentStats struct {
	UserID              string  `json:"user_id"`
	TotalLeads          int64   `json:"total_leads"`
	HotLeads            int64   `json:"hot_leads"`
	LeadsThisMonth      int64   `json:"leads_this_month"`
	CallsThisMonth      int64   `json:"calls_this_month"`
	VisitsScheduled     int64   `json:"visits_scheduled"`
	ClosedDealsMonth    int64   `json:"closed_deals_month"`
	RevenueMonth        float64 `json:"revenue_month"`
	MonthlyAchieved     float64 `json:"monthly_achieved"`
	MonthlyTarget       float64 `json:"monthly_target,omitempty"`
	FallbackClosedDeals int     `json:"fallback_closed_deals,omitempty"`
}

// Task is a synthesized to-do entry. Tasks are derived, never persisted: the
// Done flag lives only in this session's view model and is lost on the next
// refresh.
type Task struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Type     domain.TaskType     `json:"type"`
	LeadID   string              `json:"lead_id"`
	DueAt    time.Time           `json:"due_at"`
	Priority domain.TaskPriority `json:"priority"`
	Done     bool                `json:"done"`
}
