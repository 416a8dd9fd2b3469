package playstore

import (
	"encoding/json"
	"errors"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"google.golang.org/api/googleapi"
)

// toAuthorityError converts SDK and transport errors into *models.AuthorityError.
// status is used when err carries no HTTP status of its own.
func toAuthorityError(err error, status int) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = err.Error()
		}
		return &models.AuthorityError{
			StatusCode: gerr.Code,
			Message:    msg,
			Details:    errorDetails(gerr.Body),
		}
	}
	return &models.AuthorityError{StatusCode: status, Message: err.Error()}
}

// errorDetails returns the "error" member of a Google API error body, or the whole
// body when it is JSON without that member.
func errorDetails(body string) json.RawMessage {
	if body == "" || !json.Valid([]byte(body)) {
		return nil
	}
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err == nil && len(envelope.Error) > 0 {
		return envelope.Error
	}
	return json.RawMessage(body)
}
