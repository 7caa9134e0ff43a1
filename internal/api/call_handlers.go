package api

import (
	"net/http"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

type createCallLogRequest struct {
	LeadID       string `json:"lead_id"`
	Outcome      string `json:"outcome"`
	DurationSecs int    `json:"duration_secs"`
	Notes        string `json:"notes"`
}

func (s *Server) handleCreateCallLog(w http.ResponseWriter, r *http.Request) {
	var req createCallLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LeadID == "" {
		writeError(w, http.StatusBadRequest, "lead_id is required")
		return
	}
	outcome, err := domain.ParseCallOutcome(req.Outcome)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := getUserClaims(r.Context())
	call, err := s.db.CreateCallLog(r.Context(), &db.CallLog{
		LeadID:       req.LeadID,
		AgentID:      claims.UserID,
		Outcome:      outcome,
		DurationSecs: req.DurationSecs,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log call")
		return
	}

	writeJSON(w, http.StatusCreated, call)
}

func (s *Server) handleListCallLogs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	claims := getUserClaims(r.Context())
	agentID := ""
	switch claims.Role {
	case domain.RoleAgent:
		agentID = claims.UserID
	case domain.RoleAdmin, domain.RoleManager:
		agentID = r.URL.Query().Get("agent_id")
	}

	calls, err := s.db.ListCallLogs(r.Context(), agentID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list call logs")
		return
	}
	if calls == nil {
		calls = []db.CallLog{}
	}

	writeJSON(w, http.StatusOK, calls)
}
