package model

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogTestDirectory = "testdata/catalogs/"

func TestTwoPhaseResolver(t *testing.T) {
	resolver := NewTwoPhaseResolver()

	t.Run("Scenarios", func(t *testing.T) {
		scenarioExecution(t, resolver)
	})

	t.Run("Catalog files", func(t *testing.T) {
		catalogFilesExecution(t, resolver)
	})

	t.Run("Random catalogs", func(t *testing.T) {
		randomCatalogsExecution(t, resolver)
	})
}

func scenarioExecution(t *testing.T, resolver Resolver) {
	singlePrerequisite := []CatalogEntry{
		{Course: "MATH21200", Rule: CourseRule{Prerequisites: []string{"MATH20100"}}},
	}
	mutualCorequisites := []CatalogEntry{
		{Course: "CSC34200", Rule: CourseRule{Prerequisites: []string{"CSC21100"}, Corequisites: []string{"CSC34300"}}},
		{Course: "CSC34300", Rule: CourseRule{Corequisites: []string{"CSC34200"}}},
	}
	eitherOf := []CatalogEntry{
		{Course: "CSC10300", Rule: CourseRule{EitherOf: []string{"MATH20100"}}},
	}

	tests := []struct {
		name      string
		entries   []CatalogEntry
		completed []string
		expected  [][]string
	}{
		{name: "empty catalog", entries: nil, completed: nil, expected: [][]string{}},
		{name: "prerequisite not met", entries: singlePrerequisite, completed: nil, expected: [][]string{}},
		{name: "prerequisite met", entries: singlePrerequisite, completed: []string{"MATH20100"}, expected: [][]string{{"MATH21200"}}},
		{name: "mutual corequisites bundle once", entries: mutualCorequisites, completed: []string{"CSC21100"}, expected: [][]string{{"CSC34200", "CSC34300"}}},
		{name: "either satisfied directly", entries: eitherOf, completed: []string{"MATH20100"}, expected: [][]string{{"CSC10300"}}},
		{name: "either unmet and unknown", entries: eitherOf, completed: nil, expected: [][]string{}},
		{
			name: "either satisfied by an earlier course",
			entries: []CatalogEntry{
				{Course: "MATH20100"},
				{Course: "CSC10300", Rule: CourseRule{EitherOf: []string{"MATH20100"}}},
			},
			completed: nil,
			expected:  [][]string{{"MATH20100"}, {"CSC10300"}},
		},
		{
			name: "either checks the widened working set",
			entries: []CatalogEntry{
				{Course: "CSC10300", Rule: CourseRule{EitherOf: []string{"MATH20100"}}},
				{Course: "MATH20100"},
			},
			completed: nil,
			expected:  [][]string{{"MATH20100"}, {"CSC10300", "MATH20100"}},
		},
		{
			name: "either unmet merges with corequisites",
			entries: []CatalogEntry{
				{Course: "PHYS20700", Rule: CourseRule{Corequisites: []string{"PHYS20800"}, EitherOf: []string{"MATH20100", "PHYS20800"}}},
				{Course: "PHYS20800"},
				{Course: "MATH20100"},
			},
			completed: nil,
			expected:  [][]string{{"PHYS20800"}, {"MATH20100"}, {"PHYS20700", "PHYS20800", "MATH20100"}},
		},
		{
			name: "either satisfied keeps corequisites only",
			entries: []CatalogEntry{
				{Course: "PHYS20700", Rule: CourseRule{Corequisites: []string{"PHYS20800"}, EitherOf: []string{"MATH20100"}}},
				{Course: "PHYS20800"},
			},
			completed: []string{"MATH20100"},
			expected:  [][]string{{"PHYS20800"}, {"PHYS20700", "PHYS20800"}},
		},
		{
			name: "bundling never satisfies a prerequisite",
			entries: []CatalogEntry{
				{Course: "CSC10300"},
				{Course: "CSC10400", Rule: CourseRule{Prerequisites: []string{"CSC10300"}}},
			},
			completed: nil,
			expected:  [][]string{{"CSC10300"}},
		},
		{
			name: "corequisite outside the working set blocks the group",
			entries: []CatalogEntry{
				{Course: "CSC21200", Rule: CourseRule{Corequisites: []string{"CSC21100"}}},
				{Course: "CSC21100", Rule: CourseRule{Prerequisites: []string{"CSC10300"}}},
			},
			completed: nil,
			expected:  [][]string{},
		},
		{
			name: "completed corequisite outside the catalog",
			entries: []CatalogEntry{
				{Course: "CSC21200", Rule: CourseRule{Corequisites: []string{"CSC21100"}}},
			},
			completed: []string{"CSC21100"},
			expected:  [][]string{{"CSC21200", "CSC21100"}},
		},
		{
			name: "self corequisite",
			entries: []CatalogEntry{
				{Course: "CSC22000", Rule: CourseRule{Corequisites: []string{"CSC22000"}}},
			},
			completed: nil,
			expected:  [][]string{{"CSC22000"}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			//** Arrange
			catalog, err := NewCatalog(test.entries)
			require.NoError(t, err)
			completed := NewCompletedSet(test.completed...)

			//** Act
			groups, err := resolver.Resolve(catalog, completed)

			//** Assert
			assert.Nil(t, err)
			assert.Equal(t, test.expected, NewEligibilityResponse(groups).EligibleCourses)
			assert.True(t, resolver.Verify(groups, catalog, completed))
		})
	}

	t.Run("nil catalog", func(t *testing.T) {
		groups, err := resolver.Resolve(nil, NewCompletedSet())

		assert.ErrorIs(t, err, ErrNilCatalog)
		assert.Nil(t, groups)
	})

	t.Run("default resolver", func(t *testing.T) {
		catalog, err := NewCatalog(mutualCorequisites)
		require.NoError(t, err)

		groups, err := ResolveEligibility(catalog, NewCompletedSet("CSC21100"))

		assert.Nil(t, err)
		assert.Equal(t, [][]string{{"CSC34200", "CSC34300"}}, NewEligibilityResponse(groups).EligibleCourses)
	})

	t.Run("completed set is not modified", func(t *testing.T) {
		catalog, err := NewCatalog([]CatalogEntry{{Course: "CSC10300"}})
		require.NoError(t, err)
		completed := NewCompletedSet("MATH20100")

		_, err = resolver.Resolve(catalog, completed)

		assert.Nil(t, err)
		assert.Equal(t, NewCompletedSet("MATH20100"), completed)
	})
}

func catalogFilesExecution(t *testing.T, resolver Resolver) {
	testFiles, err := os.ReadDir(catalogTestDirectory)
	require.NoError(t, err)
	require.NotEmpty(t, testFiles)

	for _, file := range testFiles {
		t.Run(file.Name(), func(t *testing.T) {
			//** Arrange
			catalog, err := CatalogFromFile(filepath.Join(catalogTestDirectory, file.Name()))
			require.NoError(t, err)

			// Complete the catalog course by course, in catalog order
			courses := catalog.Courses()
			for i := range len(courses) + 1 {
				completed := NewCompletedSet(courses[:i]...)

				//** Act
				groups, err := resolver.Resolve(catalog, completed)

				//** Assert
				assert.Nil(t, err)
				assert.True(t, resolver.Verify(groups, catalog, completed), "completed %v", courses[:i])
			}
		})
	}
}

func randomCatalogsExecution(t *testing.T, resolver Resolver) {
	g := gomega.NewWithT(t)
	random := rand.New(rand.NewPCG(17, 29))

	for range 200 {
		//** Arrange
		catalog := randomCatalog(g, random, 2+random.IntN(20))
		universe := append(catalog.Courses(), "UNKNOWN100", "UNKNOWN200")
		completed := randomCompletedSet(random, universe)

		//** Act
		groups, err := resolver.Resolve(catalog, completed)
		again, againErr := resolver.Resolve(catalog, completed)

		//** Assert
		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(againErr).NotTo(gomega.HaveOccurred())

		// Idempotence
		g.Expect(again).To(gomega.Equal(groups))

		// Output contract
		g.Expect(resolver.Verify(groups, catalog, completed)).To(gomega.BeTrue())
		keys := lo.Map(groups, func(group EligibilityGroup, _ int) GroupKey { return group.Key() })
		for i := range keys {
			for j := i + 1; j < len(keys); j++ {
				g.Expect(keys[i].Equal(keys[j])).To(gomega.BeFalse(), "groups %v and %v are the same group", groups[i], groups[j])
			}
		}
		for _, group := range groups {
			g.Expect(group.Courses).NotTo(gomega.BeEmpty())
			for _, course := range group.Courses {
				if completed.Has(course) {
					continue
				}
				rule, _ := catalog.Lookup(course)
				g.Expect(completed.HasAll(rule.Prerequisites...)).To(gomega.BeTrue(), "course %s in %v", course, group.Courses)
			}
		}

		// Every anchor stays a member of some group when one more course gets completed
		extra := universe[random.IntN(len(universe))]
		widened, err := resolver.Resolve(catalog, completed.Clone().Insert(extra))
		g.Expect(err).NotTo(gomega.HaveOccurred())
		members := lo.FlatMap(widened, func(group EligibilityGroup, _ int) []string { return group.Courses })
		for _, group := range groups {
			g.Expect(members).To(gomega.ContainElement(group.Courses[0]), "after completing %s", extra)
		}
	}
}

func randomCatalog(g *gomega.WithT, random *rand.Rand, size int) *Catalog {
	courses := lo.Times(size, func(i int) string { return "C" + string(rune('A'+i)) })
	pick := func(limit int) []string {
		return lo.Uniq(lo.Times(random.IntN(limit+1), func(_ int) string {
			if random.IntN(10) == 0 {
				return "UNKNOWN100"
			}
			return courses[random.IntN(len(courses))]
		}))
	}

	entries := lo.Map(courses, func(course string, _ int) CatalogEntry {
		return CatalogEntry{
			Course: course,
			Rule:   CourseRule{Prerequisites: pick(1), Corequisites: pick(2), EitherOf: pick(2)},
		}
	})

	catalog, err := NewCatalog(entries)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	return catalog
}

func randomCompletedSet(random *rand.Rand, universe []string) CompletedSet {
	return NewCompletedSet(lo.Filter(universe, func(_ string, _ int) bool { return random.IntN(3) == 0 })...)
}

func BenchmarkTwoPhaseResolver(b *testing.B) {
	random := rand.New(rand.NewPCG(3, 5))
	courses := lo.Times(5000, func(i int) string { return "CSC" + lo.RandomString(6, lo.NumbersCharset) })
	courses = lo.Uniq(courses)
	entries := lo.Map(courses, func(course string, i int) CatalogEntry {
		rule := CourseRule{}
		if i > 0 && random.IntN(2) == 0 {
			rule.Prerequisites = []string{courses[random.IntN(i)]}
		}
		if random.IntN(4) == 0 {
			rule.Corequisites = []string{courses[random.IntN(len(courses))]}
		}
		if random.IntN(4) == 0 {
			rule.EitherOf = []string{courses[random.IntN(len(courses))], courses[random.IntN(len(courses))]}
		}
		return CatalogEntry{Course: course, Rule: rule}
	})
	catalog, err := NewCatalog(entries)
	if err != nil {
		b.Fatal(err)
	}
	completed := NewCompletedSet(courses[:len(courses)/2]...)
	resolver := NewTwoPhaseResolver()

	b.ResetTimer()
	for range b.N {
		if _, err := resolver.Resolve(catalog, completed); err != nil {
			b.Fatal(err)
		}
	}
}
