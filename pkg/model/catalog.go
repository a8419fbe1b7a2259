package model

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// CourseRule holds the dependency rule recorded for a single course
type CourseRule struct {
	// Courses that must all be completed before the course can be taken
	Prerequisites []string `json:"prereqs" yaml:"prereqs"`
	// Courses that must be taken in the same group as the course
	Corequisites []string `json:"coreqs" yaml:"coreqs"`
	// Courses where completing any single one satisfies the requirement. If none is satisfied every member becomes a corequisite-like dependency
	EitherOf []string `json:"either" yaml:"either"`
}

// IsEmpty reports whether the rule carries no constraint at all
func (rule CourseRule) IsEmpty() bool {
	return len(rule.Prerequisites) == 0 && len(rule.Corequisites) == 0 && len(rule.EitherOf) == 0
}

// References returns every identifier mentioned by the rule, in field order and without duplicates
func (rule CourseRule) References() []string {
	references := make([]string, 0, len(rule.Prerequisites)+len(rule.Corequisites)+len(rule.EitherOf))
	references = append(references, rule.Prerequisites...)
	references = append(references, rule.Corequisites...)
	references = append(references, rule.EitherOf...)
	return lo.Uniq(references)
}

func (rule CourseRule) clone() CourseRule {
	return CourseRule{
		Prerequisites: slices.Clone(rule.Prerequisites),
		Corequisites:  slices.Clone(rule.Corequisites),
		EitherOf:      slices.Clone(rule.EitherOf),
	}
}

type CatalogEntry struct {
	Course string     `json:"course" yaml:"course"`
	Rule   CourseRule `json:"rule" yaml:"rule"`
}

// Catalog is the ordered, read-only table of course identifiers to dependency rules. Once built it is never mutated, hence it can be shared between goroutines without synchronization
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

// NewCatalog builds a catalog preserving the order of entries. Identifiers must be unique and non-blank
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	catalog := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		if entry.Course == "" {
			return nil, &InputError{Err: ErrEmptyInput, Fields: []FieldError{{Field: "course", Error: "course identifier cannot be blank"}}}
		}
		if _, ok := catalog.index[entry.Course]; ok {
			return nil, errors.Wrapf(ErrDuplicateCourse, "course %q", entry.Course)
		}

		catalog.index[entry.Course] = len(catalog.entries)
		catalog.entries = append(catalog.entries, CatalogEntry{
			Course: entry.Course,
			Rule:   entry.Rule.clone(),
		})
	}

	return catalog, nil
}

// Lookup returns the rule recorded for course. A missing course is not an error: it simply has no constraints beyond what's explicit
func (catalog *Catalog) Lookup(course string) (CourseRule, bool) {
	position, ok := catalog.index[course]
	if !ok {
		return CourseRule{}, false
	}
	return catalog.entries[position].Rule.clone(), true
}

// Contains reports whether course has a rule in the catalog
func (catalog *Catalog) Contains(course string) bool {
	_, ok := catalog.index[course]
	return ok
}

// Courses returns the catalog identifiers in catalog order
func (catalog *Catalog) Courses() []string {
	return lo.Map(catalog.entries, func(entry CatalogEntry, _ int) string { return entry.Course })
}

// Entries returns a copy of the catalog entries in catalog order
func (catalog *Catalog) Entries() []CatalogEntry {
	return lo.Map(catalog.entries, func(entry CatalogEntry, _ int) CatalogEntry {
		return CatalogEntry{Course: entry.Course, Rule: entry.Rule.clone()}
	})
}

func (catalog *Catalog) Len() int {
	return len(catalog.entries)
}

// each walks the catalog in order without copying rules. Callers must not modify the rule
func (catalog *Catalog) each(visit func(course string, rule CourseRule)) {
	for _, entry := range catalog.entries {
		visit(entry.Course, entry.Rule)
	}
}
