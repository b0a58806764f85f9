package repository

import (
	"fmt"
	"time"
)

// ParseTime turns a stored date column back into a UTC time.Time. Columns
// are written as "2006-01-02" but imported rows may carry full RFC3339
// timestamps. Kept local so the repository layer does not import validation.
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
