package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundsight/Fund-Monitor-Backend/internal/apperrors"
)

// ValidateUUID checks that the given ID is a non-empty, valid UUID.
func ValidateUUID(id string) error {
	if id == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrInvalidUUID
	}
	return nil
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
