package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
)

// PurchaseAuthority looks up a one-time product purchase by token.
type PurchaseAuthority interface {
	GetProductPurchase(ctx context.Context, packageName, productID, token string) (*models.PurchaseRecord, error)
}

// Granter is satisfied by *EntitlementService.
type Granter interface {
	Grant(ctx context.Context, profileID string, purchaseInfo json.RawMessage) error
}

type WorkflowState string

const (
	StateReceived     WorkflowState = "received"
	StateValidated    WorkflowState = "validated"
	StateVerifying    WorkflowState = "verifying"
	StateVerified     WorkflowState = "verified"
	StateGranting     WorkflowState = "granting"
	StateCompleted    WorkflowState = "completed"
	StateRejected     WorkflowState = "rejected"
	StateVerifyFailed WorkflowState = "verify_failed"
)

// VerificationResult is the outcome of a workflow run that reached the authority.
// GrantErr is set when the entitlement write failed; State is still StateCompleted.
type VerificationResult struct {
	State    WorkflowState
	Purchase *models.PurchaseRecord
	GrantErr error
}

type PurchaseVerifier struct {
	authority PurchaseAuthority
}

func NewPurchaseVerifier(authority PurchaseAuthority) *PurchaseVerifier {
	return &PurchaseVerifier{authority: authority}
}

// Verify makes exactly one lookup. Anything other than a 200 with a payload is a *VerificationError.
func (v *PurchaseVerifier) Verify(ctx context.Context, packageName, productID, token string) (*models.PurchaseRecord, error) {
	record, err := v.authority.GetProductPurchase(ctx, packageName, productID, token)
	if err != nil {
		verr := &VerificationError{Message: err.Error(), Err: err}
		var authErr *models.AuthorityError
		if errors.As(err, &authErr) {
			verr.Status = authErr.StatusCode
			verr.Message = authErr.Message
			verr.Details = authErr.Details
		}
		return nil, verr
	}

	if record == nil {
		return nil, &VerificationError{Message: "empty response from purchase authority"}
	}
	if record.StatusCode != http.StatusOK || len(record.Payload) == 0 {
		return nil, &VerificationError{
			Status:  record.StatusCode,
			Message: "Failed to verify purchase",
			Details: record.Payload,
		}
	}
	return record, nil
}

type VerificationService struct {
	verifier *PurchaseVerifier
	granter  Granter
}

func NewVerificationService(verifier *PurchaseVerifier, granter Granter) *VerificationService {
	return &VerificationService{verifier: verifier, granter: granter}
}

// VerifyPurchase validates the request, verifies the token, then grants premium access.
// It returns *MissingFieldError or *VerificationError on failure; a failed grant is
// reported on the result only.
func (s *VerificationService) VerifyPurchase(ctx context.Context, req dto.VerifyPurchaseRequest) (*VerificationResult, error) {
	result := &VerificationResult{State: StateReceived}

	if err := validateVerifyRequest(req); err != nil {
		result.State = StateRejected
		slog.Warn("purchase verification rejected",
			"operation", "verify_purchase",
			"package_name", req.PackageName,
			"product_id", req.ProductID,
			"profile_id", req.ProfileID,
			"error", err,
		)
		return result, err
	}
	result.State = StateValidated

	logger := slog.With(
		"operation", "verify_purchase",
		"package_name", req.PackageName,
		"product_id", req.ProductID,
		"profile_id", req.ProfileID,
	)

	result.State = StateVerifying
	purchase, err := s.verifier.Verify(ctx, req.PackageName, req.ProductID, req.Token)
	if err != nil {
		result.State = StateVerifyFailed
		logger.Error("error verifying purchase", "error", err)
		return result, err
	}
	result.State = StateVerified
	result.Purchase = purchase
	logger.Info("purchase verified successfully")

	result.State = StateGranting
	if err := s.granter.Grant(ctx, req.ProfileID, purchase.Payload); err != nil {
		result.GrantErr = err
		logger.Warn("purchase verified but premium grant failed", "error", err)
	}
	result.State = StateCompleted

	return result, nil
}

func validateVerifyRequest(req dto.VerifyPurchaseRequest) error {
	var missing []string
	if strings.TrimSpace(req.PackageName) == "" {
		missing = append(missing, "packageName")
	}
	if strings.TrimSpace(req.ProductID) == "" {
		missing = append(missing, "productId")
	}
	if strings.TrimSpace(req.Token) == "" {
		missing = append(missing, "token")
	}
	if strings.TrimSpace(req.ProfileID) == "" {
		missing = append(missing, "profileId")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}
