package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MissingFieldError is returned before any external call when the request is incomplete.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// VerificationError means the authority rejected the token or could not be reached.
// Status is the authority's HTTP status, or 0 if none was received.
type VerificationError struct {
	Status  int
	Message string
	Details json.RawMessage
	Err     error
}

func (e *VerificationError) Error() string {
	if e.Status == 0 {
		return "purchase verification failed: " + e.Message
	}
	return fmt.Sprintf("purchase verification failed (status %d): %s", e.Status, e.Message)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// NormalizationError is handed back to API consumers as a payload, not as an HTTP failure.
type NormalizationError struct {
	Message   string    `json:"message"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *NormalizationError) Error() string {
	return e.Message + ": " + e.Details
}

// GrantError is a failed entitlement write. It never changes the verification outcome.
type GrantError struct {
	ProfileID string
	Err       error
}

func (e *GrantError) Error() string {
	return fmt.Sprintf("grant premium access for profile %s: %v", e.ProfileID, e.Err)
}

func (e *GrantError) Unwrap() error { return e.Err }
