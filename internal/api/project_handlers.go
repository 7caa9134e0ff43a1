package api

import (
	"net/http"

	"github.com/estatedesk/estatedesk/internal/db"
)

type createProjectRequest struct {
	Name       string  `json:"name"`
	Developer  string  `json:"developer"`
	Location   string  `json:"location"`
	TotalUnits int     `json:"total_units"`
	PriceMin   float64 `json:"price_min"`
	PriceMax   float64 `json:"price_max"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "name and location are required")
		return
	}

	project, err := s.db.CreateProject(r.Context(), &db.Project{
		Name:       req.Name,
		Developer:  req.Developer,
		Location:   req.Location,
		TotalUnits: req.TotalUnits,
		PriceMin:   req.PriceMin,
		PriceMax:   req.PriceMax,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.db.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []db.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.db.GetProjectByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
