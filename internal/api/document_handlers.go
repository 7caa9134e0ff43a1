package api

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/estatedesk/estatedesk/internal/db"
)

// maxDocumentBytes caps uploads at 10 MiB; documents live in the database.
const maxDocumentBytes = 10 << 20

type createDocumentRequest struct {
	LeadID      *string `json:"lead_id"`
	DealID      *string `json:"deal_id"`
	Name        string  `json:"name"`
	FileName    string  `json:"file_name"`
	ContentType string  `json:"content_type"`
	Content     string  `json:"content"` // base64
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.FileName == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "name, file_name, and content are required")
		return
	}
	if req.LeadID == nil && req.DealID == nil {
		writeError(w, http.StatusBadRequest, "a document must attach to a lead or a deal")
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, "content must be base64")
		return
	}
	if len(content) > maxDocumentBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "document exceeds 10 MiB")
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	claims := getUserClaims(r.Context())
	doc, err := s.db.CreateDocument(r.Context(), &db.Document{
		LeadID:      req.LeadID,
		DealID:      req.DealID,
		Name:        req.Name,
		FileName:    req.FileName,
		ContentType: contentType,
		Content:     content,
		UploadedBy:  claims.UserID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store document")
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.db.ListDocuments(r.Context(), r.URL.Query().Get("lead_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []db.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.db.GetDocumentContent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
