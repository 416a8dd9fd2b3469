package models

import (
	"encoding/json"
	"fmt"
)

// PurchaseRecord is the authority's answer to a product purchase lookup.
// Payload is kept verbatim.
type PurchaseRecord struct {
	StatusCode int
	Payload    json.RawMessage
}

// AuthorityError is a failed call to the purchase authority, detached from the SDK error type.
// StatusCode is 0 when the request never got an HTTP response.
type AuthorityError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *AuthorityError) Error() string {
	if e.StatusCode == 0 {
		return "authority unreachable: " + e.Message
	}
	return fmt.Sprintf("authority returned %d: %s", e.StatusCode, e.Message)
}
