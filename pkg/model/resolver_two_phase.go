package model

import (
	"github.com/samber/lo"
)

// deferredCourse is a course that passed its prerequisite gate but still has to be bundled with its dependencies
type deferredCourse struct {
	course       string
	dependencies []string
}

type twoPhaseResolver struct{}

func NewTwoPhaseResolver() Resolver {
	return &twoPhaseResolver{}
}

func (resolver *twoPhaseResolver) Resolve(catalog *Catalog, completed CompletedSet) ([]EligibilityGroup, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	//** Initialize working set
	satisfied := completed.Clone()
	deferred := make([]deferredCourse, 0)
	groups := make([]EligibilityGroup, 0)

	//** Phase 1: direct scan in catalog order
	catalog.each(func(course string, rule CourseRule) {
		// Strict prerequisites are a hard gate: they must have been completed, bundling never satisfies them
		if !completed.HasAll(rule.Prerequisites...) {
			return
		}

		switch {
		case len(rule.EitherOf) > 0 && !satisfied.HasAny(rule.EitherOf...):
			// Unmet either-of members become dependencies of the group, just like corequisites
			dependencies := lo.Uniq(append(append([]string{}, rule.Corequisites...), rule.EitherOf...))
			deferred = append(deferred, deferredCourse{course: course, dependencies: dependencies})
		case len(rule.Corequisites) > 0:
			deferred = append(deferred, deferredCourse{course: course, dependencies: lo.Uniq(rule.Corequisites)})
		default:
			groups = append(groups, newEligibilityGroup(course))
		}

		// The course passed the gate: later corequisite checks can see it
		satisfied.Insert(course)
	})

	//** Phase 2: deferred reconciliation against the widened working set
	for _, entry := range deferred {
		if satisfied.HasAll(entry.dependencies...) {
			groups = append(groups, newEligibilityGroup(entry.course, entry.dependencies...))
		}
	}

	//** Phase 3: de-duplication by sorted member identity
	return deduplicateGroups(groups), nil
}

func (resolver *twoPhaseResolver) Verify(groups []EligibilityGroup, catalog *Catalog, completed CompletedSet) bool {
	return verify(groups, catalog, completed)
}
