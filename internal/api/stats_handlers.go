package api

import (
	"net/http"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

// agentStatsResponse augments the stored aggregates with the target config
// the client-side heuristic needs.
type agentStatsResponse struct {
	db.AgentStats
	FallbackClosedDeals int `json:"fallback_closed_deals"`
}

// handleAgentStats returns the per-agent stats payload the dashboard is
// built from. Agents may only read their own; managers and admins any.
func (s *Server) handleAgentStats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	claims := getUserClaims(r.Context())
	if claims.Role == domain.RoleAgent && claims.UserID != id {
		writeError(w, http.StatusForbidden, "agents may only view their own stats")
		return
	}

	user, err := s.db.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	stats, err := s.db.GetAgentStats(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get agent stats")
		return
	}

	// Targets are configured per agent email; zero means "no target set" and
	// the client falls back to the closed-deals heuristic.
	stats.MonthlyTarget = s.targets.MonthlyFor(user.Email)

	writeJSON(w, http.StatusOK, agentStatsResponse{
		AgentStats:          *stats,
		FallbackClosedDeals: s.targets.FallbackClosedDeals,
	})
}

// handleDashboardStats returns the org-wide rollup for managers and admins.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDashboardStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
