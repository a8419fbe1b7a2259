package model

import "github.com/samber/lo"

func verify(groups []EligibilityGroup, catalog *Catalog, completed CompletedSet) bool {
	if catalog == nil {
		return false
	}

	index := newGroupIndex(len(groups))
	for _, group := range groups {
		// Check that:
		// - The group is not empty
		// - The group has no repeated member
		// - The group has not been emitted before (sorted member identity)
		// - Every member's strict prerequisites were completed
		if len(group.Courses) == 0 ||
			len(lo.Uniq(group.Courses)) != len(group.Courses) ||
			!index.add(group.Key()) ||
			lo.SomeBy(group.Courses, func(course string) bool { return !prerequisitesMet(catalog, completed, course) }) {
			return false
		}
	}
	return true
}

// prerequisitesMet reports whether course may appear in a group. A course already completed is accepted as is, whatever its recorded rule says
func prerequisitesMet(catalog *Catalog, completed CompletedSet, course string) bool {
	if completed.Has(course) {
		return true
	}
	rule, ok := catalog.Lookup(course)
	if !ok {
		return true
	}
	return completed.HasAll(rule.Prerequisites...)
}
