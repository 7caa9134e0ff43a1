package api

import (
	"io"
	"net/http"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

type createDealRequest struct {
	LeadID      string  `json:"lead_id"`
	PropertyID  *string `json:"property_id"`
	ProjectID   *string `json:"project_id"`
	Amount      float64 `json:"amount"`
	TokenAmount float64 `json:"token_amount"`
}

func (s *Server) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	var req createDealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LeadID == "" || req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "lead_id and a positive amount are required")
		return
	}

	claims := getUserClaims(r.Context())
	deal, err := s.db.CreateDeal(r.Context(), &db.Deal{
		LeadID:      req.LeadID,
		AgentID:     claims.UserID,
		PropertyID:  req.PropertyID,
		ProjectID:   req.ProjectID,
		Amount:      req.Amount,
		TokenAmount: req.TokenAmount,
		Status:      "open",
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create deal")
		return
	}

	writeJSON(w, http.StatusCreated, deal)
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	claims := getUserClaims(r.Context())
	agentID := ""
	switch claims.Role {
	case domain.RoleAgent:
		agentID = claims.UserID
	case domain.RoleAdmin, domain.RoleManager:
		agentID = r.URL.Query().Get("agent_id")
	}

	deals, err := s.db.ListDeals(r.Context(), agentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list deals")
		return
	}
	if deals == nil {
		deals = []db.Deal{}
	}
	writeJSON(w, http.StatusOK, deals)
}

func (s *Server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := s.db.GetDealByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "deal not found")
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

type closeDealRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleCloseDeal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Body is optional; an empty close keeps the deal's original amount.
	var req closeDealRequest
	if err := decodeJSON(r, &req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := s.db.GetDealByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "deal not found")
		return
	}
	if existing.Status != "open" {
		writeError(w, http.StatusConflict, "deal is not open")
		return
	}

	amount := req.Amount
	if amount <= 0 {
		amount = existing.Amount
	}

	deal, err := s.db.CloseDeal(r.Context(), id, amount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to close deal")
		return
	}

	// Closing a deal also closes its lead in the funnel.
	if _, err := s.db.UpdateLeadStage(r.Context(), deal.LeadID, domain.StageClosed); err != nil {
		writeError(w, http.StatusInternalServerError, "deal closed but lead stage update failed")
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

func (s *Server) handleCancelDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := s.db.CancelDeal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "deal not found")
		return
	}
	writeJSON(w, http.StatusOK, deal)
}
