package postgres

import (
	"context"
	"database/sql"

	"clinicdocs/internal/model"
	"clinicdocs/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, clinic_id, file_name, content_type, s3_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, clinic_id, file_name, content_type, s3_url, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.ClinicID,
		doc.FileName,
		doc.ContentType,
		doc.S3URL,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.ClinicID,
		&out.FileName,
		&out.ContentType,
		&out.S3URL,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, clinic_id, file_name, content_type, s3_url, created_at
		FROM documents
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.ClinicID,
		&d.FileName,
		&d.ContentType,
		&d.S3URL,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByClinic returns one clinic's documents using LIMIT/OFFSET pagination
// and a total count.
func (r *DocumentPostgres) ListByClinic(ctx context.Context, clinicID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE clinic_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, clinicID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, clinic_id, file_name, content_type, s3_url, created_at
		FROM documents
		WHERE clinic_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, clinicID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.ClinicID,
			&d.FileName,
			&d.ContentType,
			&d.S3URL,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}
