package review

import "fmt"

// AverageRating returns the mean rating as a float. With no reviews the
// divisor is clamped to one, yielding 0. Used on trainer detail responses.
func AverageRating(reviews []Review) float64 {
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	n := len(reviews)
	if n == 0 {
		n = 1
	}
	return float64(sum) / float64(n)
}

// AverageRatingLabel formats the mean rating to one decimal place for
// listings. With no reviews it returns the literal "0.0" rather than
// formatting a computed zero.
//
// Note: AverageRating and AverageRatingLabel encode two different historical
// zero-review conventions on purpose. Callers must not consolidate them
// without a product decision on which is canonical.
func AverageRatingLabel(reviews []Review) string {
	if len(reviews) == 0 {
		return "0.0"
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(reviews)))
}
