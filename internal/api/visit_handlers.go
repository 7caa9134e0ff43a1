package api

import (
	"net/http"
	"time"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

type createVisitRequest struct {
	LeadID      string    `json:"lead_id"`
	PropertyID  *string   `json:"property_id"`
	ProjectID   *string   `json:"project_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

func (s *Server) handleCreateSiteVisit(w http.ResponseWriter, r *http.Request) {
	var req createVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LeadID == "" || req.ScheduledAt.IsZero() {
		writeError(w, http.StatusBadRequest, "lead_id and scheduled_at are required")
		return
	}
	if req.PropertyID != nil && req.ProjectID != nil {
		writeError(w, http.StatusBadRequest, "a visit targets a property or a project, not both")
		return
	}

	claims := getUserClaims(r.Context())
	visit, err := s.db.CreateSiteVisit(r.Context(), &db.SiteVisit{
		LeadID:      req.LeadID,
		AgentID:     claims.UserID,
		PropertyID:  req.PropertyID,
		ProjectID:   req.ProjectID,
		ScheduledAt: req.ScheduledAt,
		Status:      domain.VisitScheduled,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create site visit")
		return
	}

	writeJSON(w, http.StatusCreated, visit)
}

func (s *Server) handleListSiteVisits(w http.ResponseWriter, r *http.Request) {
	filter := db.VisitFilter{
		LeadID: r.URL.Query().Get("lead_id"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseVisitStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = status
	}

	claims := getUserClaims(r.Context())
	switch claims.Role {
	case domain.RoleAgent:
		filter.AgentID = claims.UserID
	case domain.RoleAdmin, domain.RoleManager:
		filter.AgentID = r.URL.Query().Get("agent_id")
	}

	visits, err := s.db.ListSiteVisits(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list site visits")
		return
	}
	if visits == nil {
		visits = []db.SiteVisit{}
	}

	writeJSON(w, http.StatusOK, visits)
}

type patchVisitRequest struct {
	Status string `json:"status"`
}

func (s *Server) handlePatchSiteVisit(w http.ResponseWriter, r *http.Request) {
	var req patchVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := domain.ParseVisitStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	visit, err := s.db.UpdateVisitStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		writeError(w, http.StatusNotFound, "site visit not found")
		return
	}

	writeJSON(w, http.StatusOK, visit)
}
