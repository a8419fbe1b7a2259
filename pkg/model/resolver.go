package model

import "github.com/samber/lo"

type Resolver interface {
	// Computes the eligibility groups a student with the given completed courses may take
	Resolve(
		catalog *Catalog,
		completed CompletedSet,
	) ([]EligibilityGroup, error)

	// Checks whether groups honor the resolver's output contract for catalog and completed
	Verify(
		groups []EligibilityGroup,
		catalog *Catalog,
		completed CompletedSet,
	) bool
}

var defaultResolver = NewTwoPhaseResolver()

// ResolveEligibility resolves with the default resolver
func ResolveEligibility(catalog *Catalog, completed CompletedSet) ([]EligibilityGroup, error) {
	return defaultResolver.Resolve(catalog, completed)
}

// EligibilityResponse is the payload handed back to API callers
type EligibilityResponse struct {
	EligibleCourses [][]string `json:"eligibleCourses" yaml:"eligibleCourses"`
}

func NewEligibilityResponse(groups []EligibilityGroup) EligibilityResponse {
	return EligibilityResponse{
		EligibleCourses: lo.Map(groups, func(group EligibilityGroup, _ int) []string {
			return append([]string{}, group.Courses...)
		}),
	}
}
