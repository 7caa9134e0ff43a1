// Package api exposes the CRM over HTTP: CRUD for the core entities, auth,
// per-agent stats, and the admin dashboard rollup.
package api

import (
	"net/http"

	"github.com/estatedesk/estatedesk/internal/auth"
	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
	"github.com/estatedesk/estatedesk/internal/targets"
)

// Server holds all dependencies for the HTTP API.
type Server struct {
	db      *db.DB
	auth    *auth.Auth
	targets *targets.Config
	mux     *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(database *db.DB, authSvc *auth.Auth, targetsCfg *targets.Config) *Server {
	if targetsCfg == nil {
		targetsCfg = targets.Default()
	}
	s := &Server{
		db:      database,
		auth:    authSvc,
		targets: targetsCfg,
		mux:     http.NewServeMux(),
	}

	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	rl := newRateLimiter(20, 40)
	var h http.Handler = s.mux
	h = s.loggingMiddleware(h)
	h = rateLimitMiddleware(rl)(h)
	h = requestIDMiddleware(h)
	h = corsMiddleware(h)
	h = securityHeadersMiddleware(h)
	return h
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Auth endpoints (no auth required)
	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Auth-required endpoints
	s.mux.Handle("GET /api/v1/auth/me", s.authMiddleware(http.HandlerFunc(s.handleMe)))

	// Leads
	s.mux.Handle("POST /api/v1/leads", s.authMiddleware(http.HandlerFunc(s.handleCreateLead)))
	s.mux.Handle("GET /api/v1/leads", s.authMiddleware(http.HandlerFunc(s.handleListLeads)))
	s.mux.Handle("GET /api/v1/leads/{id}", s.authMiddleware(http.HandlerFunc(s.handleGetLead)))
	s.mux.Handle("PATCH /api/v1/leads/{id}", s.authMiddleware(http.HandlerFunc(s.handlePatchLead)))
	s.mux.Handle("DELETE /api/v1/leads/{id}", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleDeleteLead))))
	s.mux.Handle("GET /api/v1/leads/{id}/calls", s.authMiddleware(http.HandlerFunc(s.handleListLeadCalls)))

	// Properties
	s.mux.Handle("POST /api/v1/properties", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleCreateProperty))))
	s.mux.Handle("GET /api/v1/properties", s.authMiddleware(http.HandlerFunc(s.handleListProperties)))
	s.mux.Handle("GET /api/v1/properties/{id}", s.authMiddleware(http.HandlerFunc(s.handleGetProperty)))
	s.mux.Handle("PATCH /api/v1/properties/{id}", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handlePatchProperty))))
	s.mux.Handle("DELETE /api/v1/properties/{id}", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleDeleteProperty))))

	// Projects
	s.mux.Handle("POST /api/v1/projects", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleCreateProject))))
	s.mux.Handle("GET /api/v1/projects", s.authMiddleware(http.HandlerFunc(s.handleListProjects)))
	s.mux.Handle("GET /api/v1/projects/{id}", s.authMiddleware(http.HandlerFunc(s.handleGetProject)))
	s.mux.Handle("DELETE /api/v1/projects/{id}", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleDeleteProject))))

	// Site visits
	s.mux.Handle("POST /api/v1/site-visits", s.authMiddleware(http.HandlerFunc(s.handleCreateSiteVisit)))
	s.mux.Handle("GET /api/v1/site-visits", s.authMiddleware(http.HandlerFunc(s.handleListSiteVisits)))
	s.mux.Handle("PATCH /api/v1/site-visits/{id}", s.authMiddleware(http.HandlerFunc(s.handlePatchSiteVisit)))

	// Call logs
	s.mux.Handle("POST /api/v1/call-logs", s.authMiddleware(http.HandlerFunc(s.handleCreateCallLog)))
	s.mux.Handle("GET /api/v1/call-logs", s.authMiddleware(http.HandlerFunc(s.handleListCallLogs)))

	// Deals
	s.mux.Handle("POST /api/v1/deals", s.authMiddleware(http.HandlerFunc(s.handleCreateDeal)))
	s.mux.Handle("GET /api/v1/deals", s.authMiddleware(http.HandlerFunc(s.handleListDeals)))
	s.mux.Handle("GET /api/v1/deals/{id}", s.authMiddleware(http.HandlerFunc(s.handleGetDeal)))
	s.mux.Handle("POST /api/v1/deals/{id}/close", s.authMiddleware(http.HandlerFunc(s.handleCloseDeal)))
	s.mux.Handle("POST /api/v1/deals/{id}/cancel", s.authMiddleware(http.HandlerFunc(s.handleCancelDeal)))

	// Documents
	s.mux.Handle("POST /api/v1/documents", s.authMiddleware(http.HandlerFunc(s.handleCreateDocument)))
	s.mux.Handle("GET /api/v1/documents", s.authMiddleware(http.HandlerFunc(s.handleListDocuments)))
	s.mux.Handle("GET /api/v1/documents/{id}/download", s.authMiddleware(http.HandlerFunc(s.handleDownloadDocument)))
	s.mux.Handle("DELETE /api/v1/documents/{id}", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleDeleteDocument))))

	// Team management (admin only)
	s.mux.Handle("POST /api/v1/users", s.authMiddleware(s.requireRole(domain.RoleAdmin, http.HandlerFunc(s.handleCreateUser))))
	s.mux.Handle("GET /api/v1/users", s.authMiddleware(http.HandlerFunc(s.handleListUsers)))
	s.mux.Handle("PATCH /api/v1/users/{id}", s.authMiddleware(s.requireRole(domain.RoleAdmin, http.HandlerFunc(s.handlePatchUser))))
	s.mux.Handle("DELETE /api/v1/users/{id}", s.authMiddleware(s.requireRole(domain.RoleAdmin, http.HandlerFunc(s.handleDeleteUser))))

	// Stats
	s.mux.Handle("GET /api/v1/users/{id}/stats", s.authMiddleware(http.HandlerFunc(s.handleAgentStats)))
	s.mux.Handle("GET /api/v1/dashboard/stats", s.authMiddleware(s.requireRole(domain.RoleManager, http.HandlerFunc(s.handleDashboardStats))))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
