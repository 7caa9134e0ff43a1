package db

import (
	"time"

	"github.com/estatedesk/estatedesk/internal/domain"
)

// User represents a team member account.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // Never expose in JSON
	Name         string      `json:"name"`
	Phone        string      `json:"phone,omitempty"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Lead represents a sales lead.
type Lead struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	Email          string             `json:"email,omitempty"`
	Source         string             `json:"source,omitempty"`
	Temperature    domain.Temperature `json:"temperature"`
	Stage          domain.Stage       `json:"stage"`
	Budget         float64            `json:"budget,omitempty"`
	AssignedTo     *string            `json:"assigned_to,omitempty"`
	NextFollowupAt *time.Time         `json:"next_followup_at,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Property represents a sellable unit, optionally part of a project.
type Property struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"` // flat, villa, plot, commercial
	ProjectID *string   `json:"project_id,omitempty"`
	Location  string    `json:"location"`
	Price     float64   `json:"price"`
	Bedrooms  int       `json:"bedrooms,omitempty"`
	AreaSqft  float64   `json:"area_sqft,omitempty"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// Project represents a housing development with multiple units.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Developer  string    `json:"developer,omitempty"`
	Location   string    `json:"location"`
	TotalUnits int       `json:"total_units,omitempty"`
	PriceMin   float64   `json:"price_min,omitempty"`
	PriceMax   float64   `json:"price_max,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SiteVisit represents a scheduled in-person viewing tied to a lead and
// optionally a property or a project (not both in practice).
type SiteVisit struct {
	ID          string             `json:"id"`
	LeadID      string             `json:"lead_id"`
	AgentID     string             `json:"agent_id"`
	PropertyID  *string            `json:"property_id,omitempty"`
	ProjectID   *string            `json:"project_id,omitempty"`
	ScheduledAt time.Time          `json:"scheduled_at"`
	Status      domain.VisitStatus `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CallLog represents a single logged call against a lead.
type CallLog struct {
	ID           string             `json:"id"`
	LeadID       string             `json:"lead_id"`
	AgentID      string             `json:"agent_id"`
	Outcome      domain.CallOutcome `json:"outcome"`
	DurationSecs int                `json:"duration_secs,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Deal represents a sale in progress or completed.
type Deal struct {
	ID          string     `json:"id"`
	LeadID      string     `json:"lead_id"`
	AgentID     string     `json:"agent_id"`
	PropertyID  *string    `json:"property_id,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty"`
	Amount      float64    `json:"amount"`
	TokenAmount float64    `json:"token_amount,omitempty"`
	Status      string     `json:"status"` // open, closed, cancelled
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Document represents an uploaded file attached to a lead or a deal.
// Content is stored in the database and served separately from metadata.
type Document struct {
	ID          string    `json:"id"`
	LeadID      *string   `json:"lead_id,omitempty"`
	DealID      *string   `json:"deal_id,omitempty"`
	Name        string    `json:"name"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Content     []byte    `json:"-"` // Never inline in list/metadata JSON
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
