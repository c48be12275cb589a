package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator clients
// return these (optionally wrapped) so services can translate them into
// domain errors without inspecting driver-specific types.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist (user, billing customer, record)
// - ErrConflict: a concurrent operation already holds the resource
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: collaborator or store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
