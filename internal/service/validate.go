// Package service contains the business logic for the recipe backend.
// Services validate inputs, enforce uniqueness rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations. Every validator runs before any write, so a failed check
// never leaves a partial record.
package service

import (
	"fmt"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// validateUnique scans items once and fails fast on the first repeated
// element. Used for the tag set and the ingredient-reference set of a recipe
// submission.
func validateUnique[T comparable](label string, items []T) error {
	seen := make(map[T]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			return fmt.Errorf("%w: field %s contains repeated element %v", domain.ErrDuplicateInSubmission, label, item)
		}
		seen[item] = struct{}{}
	}
	return nil
}
