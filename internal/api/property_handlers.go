package api

import (
	"net/http"

	"github.com/estatedesk/estatedesk/internal/db"
)

type createPropertyRequest struct {
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	ProjectID *string `json:"project_id"`
	Location  string  `json:"location"`
	Price     float64 `json:"price"`
	Bedrooms  int     `json:"bedrooms"`
	AreaSqft  float64 `json:"area_sqft"`
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" || req.Location == "" || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "title, location, and a positive price are required")
		return
	}
	if req.Type == "" {
		req.Type = "flat"
	}

	property, err := s.db.CreateProperty(r.Context(), &db.Property{
		Title:     req.Title,
		Type:      req.Type,
		ProjectID: req.ProjectID,
		Location:  req.Location,
		Price:     req.Price,
		Bedrooms:  req.Bedrooms,
		AreaSqft:  req.AreaSqft,
		Available: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create property")
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := s.db.ListProperties(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	if properties == nil {
		properties = []db.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := s.db.GetPropertyByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

type patchPropertyRequest struct {
	Available *bool `json:"available"`
}

func (s *Server) handlePatchProperty(w http.ResponseWriter, r *http.Request) {
	var req patchPropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}

	id := r.PathValue("id")
	if err := s.db.SetPropertyAvailable(r.Context(), id, *req.Available); err != nil {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}

	property, err := s.db.GetPropertyByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reload property")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteProperty(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
