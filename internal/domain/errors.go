package domain

import "errors"

var (
	// ErrUnparseablePackSize is returned when a pack-size string matches no known notation
	ErrUnparseablePackSize = errors.New("pack size matches no known notation")

	// ErrZeroQuantity is returned when a per-unit price is requested for a zero-quantity pack
	ErrZeroQuantity = errors.New("pack resolves to zero quantity")

	// ErrIncompatibleUnits is returned when a conversion crosses incompatible domains
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrUnknownUnit is returned when a unit token is not recognized
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrBelowThreshold marks a candidate pair scoring below the matching threshold.
	// A classification, not a failure: the pair stays reported as unmatched.
	ErrBelowThreshold = errors.New("match confidence below threshold")

	// ErrIngredientNotFound is returned when an ingredient id/name/alias resolves to nothing
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrInvalidIngredient is returned when an ingredient fails validation
	ErrInvalidIngredient = errors.New("invalid ingredient")

	// ErrUnknownVendor is returned when no catalog exists for a vendor
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrMatchNotFound is returned when a match key does not exist in the store
	ErrMatchNotFound = errors.New("match not found")

	// ErrNoSnapshot is returned when a recipe has no cost history yet
	ErrNoSnapshot = errors.New("no cost snapshot recorded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
