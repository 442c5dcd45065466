package validator

import "fmt"

// RatingMin and RatingMax bound the review rating scale
const (
	RatingMin = 1
	RatingMax = 5
)

// RangeError describes an out-of-range numeric input
type RangeError struct {
	Field string `json:"field"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d", e.Field, e.Min, e.Max)
}

// ValidateRating checks that a review rating is an integer between 1 and 5
func ValidateRating(rating int) *RangeError {
	if rating < RatingMin || rating > RatingMax {
		return &RangeError{Field: "rating", Min: RatingMin, Max: RatingMax}
	}
	return nil
}
