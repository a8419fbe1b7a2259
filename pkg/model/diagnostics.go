package model

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
)

// Minimum similarity for an existing identifier to be offered as a suggestion for an unknown one
const suggestionRatio = 0.8

type UnknownReference struct {
	Course     string `json:"course" yaml:"course"`
	Field      string `json:"field" yaml:"field"`
	Reference  string `json:"reference" yaml:"reference"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

type SelfReference struct {
	Course string `json:"course" yaml:"course"`
	Field  string `json:"field" yaml:"field"`
}

// Diagnostics are catalog findings that do not prevent resolution but usually point at a data entry mistake
type Diagnostics struct {
	UnknownReferences  []UnknownReference `json:"unknownReferences,omitempty" yaml:"unknownReferences,omitempty"`
	SelfReferences     []SelfReference    `json:"selfReferences,omitempty" yaml:"selfReferences,omitempty"`
	PrerequisiteCycles [][]string         `json:"prerequisiteCycles,omitempty" yaml:"prerequisiteCycles,omitempty"`
	// Courses that depend, through prerequisites, on a course caught in a cycle
	Unreachable []string `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
}

func (diagnostics Diagnostics) IsEmpty() bool {
	return len(diagnostics.UnknownReferences) == 0 &&
		len(diagnostics.SelfReferences) == 0 &&
		len(diagnostics.PrerequisiteCycles) == 0 &&
		len(diagnostics.Unreachable) == 0
}

func (diagnostics Diagnostics) Count() int {
	return len(diagnostics.UnknownReferences) +
		len(diagnostics.SelfReferences) +
		len(diagnostics.PrerequisiteCycles) +
		len(diagnostics.Unreachable)
}

// Diagnose inspects catalog. Unknown references are legal (they may be satisfied by a transcript) and so is a cycle, hence nothing here is an error
func Diagnose(catalog *Catalog) Diagnostics {
	var diagnostics Diagnostics
	if catalog == nil {
		return diagnostics
	}

	courses := catalog.Courses()
	catalog.each(func(course string, rule CourseRule) {
		for _, field := range ruleFields(rule) {
			for _, reference := range field.members {
				if reference == course {
					diagnostics.SelfReferences = append(diagnostics.SelfReferences, SelfReference{Course: course, Field: field.name})
					continue
				}
				if !catalog.Contains(reference) {
					diagnostics.UnknownReferences = append(diagnostics.UnknownReferences, UnknownReference{
						Course:     course,
						Field:      field.name,
						Reference:  reference,
						Suggestion: suggest(reference, courses),
					})
				}
			}
		}
	})

	diagnostics.PrerequisiteCycles = prerequisiteCycles(catalog)
	diagnostics.Unreachable = unreachableCourses(catalog, diagnostics.PrerequisiteCycles)
	return diagnostics
}

type ruleField struct {
	name    string
	members []string
}

func ruleFields(rule CourseRule) []ruleField {
	return []ruleField{
		{name: "prereqs", members: rule.Prerequisites},
		{name: "coreqs", members: rule.Corequisites},
		{name: "either", members: rule.EitherOf},
	}
}

// suggest returns the most similar catalog identifier to reference, or an empty string when none is close enough
func suggest(reference string, courses []string) string {
	best, bestRatio := "", suggestionRatio
	for _, course := range courses {
		ratio := difflib.NewMatcher(strings.Split(reference, ""), strings.Split(course, "")).Ratio()
		if ratio >= bestRatio {
			best, bestRatio = course, ratio
		}
	}
	return best
}

// prerequisiteCycles returns the strongly connected components with more than one course of the prerequisite graph (course -> prerequisite), each sorted, in catalog order of their first member
func prerequisiteCycles(catalog *Catalog) [][]string {
	finder := &componentFinder{
		catalog: catalog,
		index:   make(map[string]int, catalog.Len()),
		lowLink: make(map[string]int, catalog.Len()),
		onStack: make(map[string]bool, catalog.Len()),
	}
	for _, course := range catalog.Courses() {
		if _, visited := finder.index[course]; !visited {
			finder.connect(course)
		}
	}

	cycles := lo.Filter(finder.components, func(component []string, _ int) bool { return len(component) > 1 })
	first := func(component []string) int {
		return lo.Min(lo.Map(component, func(course string, _ int) int { return catalog.index[course] }))
	}
	slices.SortStableFunc(cycles, func(a, b []string) int { return first(a) - first(b) })
	return cycles
}

// componentFinder runs Tarjan's algorithm over the catalog prerequisites. Unknown identifiers are leaves and never part of a component
type componentFinder struct {
	catalog    *Catalog
	counter    int
	index      map[string]int
	lowLink    map[string]int
	onStack    map[string]bool
	stack      []string
	components [][]string
}

func (finder *componentFinder) connect(course string) {
	finder.index[course] = finder.counter
	finder.lowLink[course] = finder.counter
	finder.counter++
	finder.stack = append(finder.stack, course)
	finder.onStack[course] = true

	rule, _ := finder.catalog.Lookup(course)
	for _, prerequisite := range rule.Prerequisites {
		if !finder.catalog.Contains(prerequisite) {
			continue
		}
		if _, visited := finder.index[prerequisite]; !visited {
			finder.connect(prerequisite)
			finder.lowLink[course] = min(finder.lowLink[course], finder.lowLink[prerequisite])
		} else if finder.onStack[prerequisite] {
			finder.lowLink[course] = min(finder.lowLink[course], finder.index[prerequisite])
		}
	}

	if finder.lowLink[course] != finder.index[course] {
		return
	}

	component := make([]string, 0)
	for {
		last := finder.stack[len(finder.stack)-1]
		finder.stack = finder.stack[:len(finder.stack)-1]
		finder.onStack[last] = false
		component = append(component, last)
		if last == course {
			break
		}
	}
	slices.Sort(component)
	finder.components = append(finder.components, component)
}

// unreachableCourses returns, in catalog order, the courses outside any cycle whose prerequisite chain leads into one
func unreachableCourses(catalog *Catalog, cycles [][]string) []string {
	blocked := make(map[string]bool)
	for _, cycle := range cycles {
		for _, course := range cycle {
			blocked[course] = true
		}
	}
	if len(blocked) == 0 {
		return nil
	}

	inCycle := lo.Flatten(cycles)
	// Propagate until no new course gets blocked. Each pass blocks at least one course or stops
	for changed := true; changed; {
		changed = false
		catalog.each(func(course string, rule CourseRule) {
			if blocked[course] {
				return
			}
			if lo.SomeBy(rule.Prerequisites, func(prerequisite string) bool { return blocked[prerequisite] }) {
				blocked[course] = true
				changed = true
			}
		})
	}

	return lo.Filter(catalog.Courses(), func(course string, _ int) bool {
		return blocked[course] && !slices.Contains(inCycle, course)
	})
}
