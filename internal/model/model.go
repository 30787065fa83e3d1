package model

import "time"

// Package model contains domain models/data structures.
// Keep it minimal; no business logic here.

// AccessLog persists one attempt to read a clinic's document history,
// whether access was granted by the authorization service or not.
type AccessLog struct {
	ID             int64     `json:"id"`
	ClinicID       string    `json:"clinic_id"`
	RequestedBy    string    `json:"requested_by"`
	Allowed        bool      `json:"allowed"`
	DecisionReason string    `json:"decision_reason,omitempty"`
	RequestedAt    time.Time `json:"requested_at"`
}
