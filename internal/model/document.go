package model

import "time"

// Document represents one uploaded binary artifact owned by a clinic.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// S3URL is the canonical object reference of the stored binary and always has
// the shape documents/<clinic_id>/<object_id>/<file_name>. A Document is
// created exactly once per successful registration and never mutated.
type Document struct {
	ID          string    `json:"id"`
	ClinicID    string    `json:"clinic_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type,omitempty"`
	S3URL       string    `json:"s3_url"`
	CreatedAt   time.Time `json:"created_at"`
}
