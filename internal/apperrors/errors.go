package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrVehicleNotFound indicates that a vehicle with the given ID does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// Request validation errors represent malformed input from the caller.
// The HTTP layer maps these to 400 responses.
var (
	// ErrUnknownTaxonomy indicates that the taxonomy selector does not name
	// one of the four classification dimensions.
	ErrUnknownTaxonomy = errors.New("unknown taxonomy")

	// ErrUnknownCategoryField indicates that the category taxonomy was asked
	// to group by a metadata field other than stack, tag or sub_tag.
	ErrUnknownCategoryField = errors.New("unknown category field")

	// ErrInvalidDate indicates that a date parameter could not be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDateRange indicates that the cost cutoff date lies after
	// the portfolio date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingPortfolioDate indicates that the required portfolio_date
	// parameter was not supplied.
	ErrMissingPortfolioDate = errors.New("portfolio_date is required")

	// ErrEmptyLabel indicates that a drill-down was requested without a label.
	ErrEmptyLabel = errors.New("label cannot be empty")
)
