package db

import (
	"context"
	"fmt"
)

const documentMetaColumns = `id, lead_id, deal_id, name, file_name,
	content_type, size_bytes, uploaded_by, created_at`

// CreateDocument stores an uploaded document with its content.
func (db *DB) CreateDocument(ctx context.Context, d *Document) (*Document, error) {
	created := &Document{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO documents (lead_id, deal_id, name, file_name, content_type, size_bytes, content, uploaded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+documentMetaColumns,
		d.LeadID, d.DealID, d.Name, d.FileName, d.ContentType, int64(len(d.Content)), d.Content, d.UploadedBy,
	).Scan(&created.ID, &created.LeadID, &created.DealID, &created.Name, &created.FileName,
		&created.ContentType, &created.SizeBytes, &created.UploadedBy, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	return created, nil
}

// ListDocuments returns document metadata, optionally scoped to a lead.
// Content is never loaded here; use GetDocumentContent for downloads.
func (db *DB) ListDocuments(ctx context.Context, leadID string) ([]Document, error) {
	query := "SELECT " + documentMetaColumns + " FROM documents"
	var args []any
	if leadID != "" {
		args = append(args, leadID)
		query += " WHERE lead_id = $1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.LeadID, &d.DealID, &d.Name, &d.FileName,
			&d.ContentType, &d.SizeBytes, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocumentContent retrieves a document including its content bytes.
func (db *DB) GetDocumentContent(ctx context.Context, id string) (*Document, error) {
	d := &Document{}
	err := db.Pool.QueryRow(ctx,
		`SELECT id, lead_id, deal_id, name, file_name, content_type, size_bytes, content, uploaded_by, created_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.LeadID, &d.DealID, &d.Name, &d.FileName,
		&d.ContentType, &d.SizeBytes, &d.Content, &d.UploadedBy, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}
	return d, nil
}

// DeleteDocument removes a document and its content.
func (db *DB) DeleteDocument(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s not found", id)
	}
	return nil
}
