package handler

import (
	consentModel "vorsorge/internal/consent/models"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
)

// maxBatchSize bounds one recording request; the consent dialog never asks
// for more than the known categories at once.
const maxBatchSize = 16

// RecordConsentsRequest is the HTTP request body for POST /v1/consents.
type RecordConsentsRequest struct {
	Consents []ConsentItem `json:"consents"`

	// Parsed values (populated by Validate)
	parsedAcceptances []consentModel.Acceptance
}

// ConsentItem is one accepted (category, document version) pair.
type ConsentItem struct {
	Category        string `json:"category"`
	DocumentVersion string `json:"document_version"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RecordConsentsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Consents) == 0 {
		return dErrors.New(dErrors.CodeValidation, "consents array must not be empty")
	}
	if len(r.Consents) > maxBatchSize {
		return dErrors.New(dErrors.CodeValidation, "too many consents in one request")
	}

	r.parsedAcceptances = make([]consentModel.Acceptance, 0, len(r.Consents))
	for _, item := range r.Consents {
		category, err := id.ParseConsentCategory(item.Category)
		if err != nil {
			return err
		}
		version, err := id.ParseDocumentVersion(item.DocumentVersion)
		if err != nil {
			return err
		}
		r.parsedAcceptances = append(r.parsedAcceptances, consentModel.Acceptance{
			Category:        category,
			DocumentVersion: version,
		})
	}
	return nil
}

// ParsedAcceptances returns the validated acceptances.
func (r *RecordConsentsRequest) ParsedAcceptances() []consentModel.Acceptance {
	return r.parsedAcceptances
}
