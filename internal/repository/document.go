package repository

import (
	"context"

	"clinicdocs/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record as a single atomic insert.
	// The caller provides all fields (ID, CreatedAt included); the row is
	// never mutated afterwards. Returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByClinic returns a paginated list of one clinic's documents,
	// newest first, together with the total row count for that clinic.
	ListByClinic(ctx context.Context, clinicID string, pq PageQuery) (*PageResult[model.Document], error)
}
