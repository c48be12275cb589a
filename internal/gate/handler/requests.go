package handler

import (
	"vorsorge/internal/gate"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /v1/gate/evaluate.
type EvaluateRequest struct {
	Paid     bool     `json:"paid"`
	Consents []string `json:"consents"`

	// Parsed values (populated by Validate)
	parsedCapability gate.Capability
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !r.Paid && len(r.Consents) == 0 {
		return dErrors.New(dErrors.CodeValidation, "capability must require paid access or consents")
	}

	categories := make([]id.ConsentCategory, 0, len(r.Consents))
	for _, raw := range r.Consents {
		category, err := id.ParseConsentCategory(raw)
		if err != nil {
			return err
		}
		categories = append(categories, category)
	}

	r.parsedCapability = gate.Capability{Paid: r.Paid, Consents: categories}
	return nil
}

// ParsedCapability returns the validated capability.
func (r *EvaluateRequest) ParsedCapability() gate.Capability {
	return r.parsedCapability
}
