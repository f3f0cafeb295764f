package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCriteria signals a malformed caller-supplied filter value.
	ErrInvalidCriteria = errors.New("invalid criteria")
	// ErrUnknownDomain signals an unrecognized listing domain.
	ErrUnknownDomain = errors.New("unknown listing domain")
	// ErrDataIntegrity signals a listing record missing a domain-required field.
	// Attributable to the external data source, never masked as "no results".
	ErrDataIntegrity = errors.New("data integrity fault")
	// ErrSourceUnavailable signals that the listing source cannot be reached.
	ErrSourceUnavailable = errors.New("listing source unavailable")
)

// IntegrityError wraps ErrDataIntegrity with the offending listing identity.
type IntegrityError struct {
	ListingID string
	Reason    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: listing %q: %s", ErrDataIntegrity.Error(), e.ListingID, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewIntegrityError creates a data-integrity error for a listing.
func NewIntegrityError(listingID, reason string) error {
	return &IntegrityError{ListingID: listingID, Reason: reason}
}
