package api

import (
	"net/http"
	"time"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

type createLeadRequest struct {
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Source         string     `json:"source"`
	Temperature    string     `json:"temperature"`
	Budget         float64    `json:"budget"`
	AssignedTo     *string    `json:"assigned_to"`
	NextFollowupAt *time.Time `json:"next_followup_at"`
	Notes          string     `json:"notes"`
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "name and phone are required")
		return
	}

	temp := domain.TempWarm
	if req.Temperature != "" {
		var err error
		if temp, err = domain.ParseTemperature(req.Temperature); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	lead, err := s.db.CreateLead(r.Context(), &db.Lead{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Source:         req.Source,
		Temperature:    temp,
		Stage:          domain.StageNew,
		Budget:         req.Budget,
		AssignedTo:     req.AssignedTo,
		NextFollowupAt: req.NextFollowupAt,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	filter := db.LeadFilter{
		NeedsFollowup: queryBool(r, "needs_followup"),
		AssignedTo:    r.URL.Query().Get("assigned_to"),
		Limit:         queryInt(r, "limit", 0),
	}
	if raw := r.URL.Query().Get("stage"); raw != "" {
		stage, err := domain.ParseStage(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Stage = stage
	}

	// Agents see their own book; managers and admins see everything unless
	// they ask for a specific agent.
	claims := getUserClaims(r.Context())
	if claims.Role == domain.RoleAgent {
		filter.AssignedTo = claims.UserID
	}

	leads, err := s.db.ListLeads(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []db.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.db.GetLeadByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// patchLeadRequest carries the mutable lead fields. Only the fields present
// in the request are applied.
type patchLeadRequest struct {
	Stage          *string    `json:"stage"`
	Temperature    *string    `json:"temperature"`
	AssignedTo     *string    `json:"assigned_to"`
	NextFollowupAt *time.Time `json:"next_followup_at"`
	ClearFollowup  bool       `json:"clear_followup"`
}

func (s *Server) handlePatchLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req patchLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := s.db.GetLeadByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	if req.Stage != nil {
		stage, err := domain.ParseStage(*req.Stage)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if lead, err = s.db.UpdateLeadStage(r.Context(), id, stage); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update stage")
			return
		}
	}

	if req.Temperature != nil {
		temp, err := domain.ParseTemperature(*req.Temperature)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if lead, err = s.db.UpdateLeadTemperature(r.Context(), id, temp); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update temperature")
			return
		}
	}

	if req.AssignedTo != nil {
		assignee := req.AssignedTo
		if *assignee == "" {
			assignee = nil
		}
		if lead, err = s.db.AssignLead(r.Context(), id, assignee); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to assign lead")
			return
		}
	}

	if req.NextFollowupAt != nil || req.ClearFollowup {
		at := req.NextFollowupAt
		if req.ClearFollowup {
			at = nil
		}
		if lead, err = s.db.SetLeadFollowup(r.Context(), id, at); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to set follow-up")
			return
		}
	}

	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteLead(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListLeadCalls(w http.ResponseWriter, r *http.Request) {
	calls, err := s.db.ListCallLogsForLead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list calls")
		return
	}
	if calls == nil {
		calls = []db.CallLog{}
	}
	writeJSON(w, http.StatusOK, calls)
}
