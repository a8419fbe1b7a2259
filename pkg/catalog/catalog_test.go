package catalog

import (
	"testing"

	"github.com/limaJavier/eligibility/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	catalog := Default()

	require.NotNil(t, catalog)
	assert.Same(t, catalog, Default())
	assert.Equal(t, "ENGL11000", catalog.Courses()[0])

	diagnostics := model.Diagnose(catalog)
	assert.True(t, diagnostics.IsEmpty(), "%+v", diagnostics)
}

func TestDefaultEligibility(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		expected  [][]string
	}{
		{
			name:      "first term",
			completed: nil,
			expected:  [][]string{{"ENGL11000"}, {"MATH19500"}},
		},
		{
			name:      "after calculus",
			completed: []string{"ENGL11000", "MATH19500", "MATH20100"},
			expected: [][]string{
				{"ENGL11000"}, {"ENGL21007"}, {"MATH19500"}, {"MATH20100"}, {"MATH20200"}, {"MATH20900"}, {"MATH21200"},
				{"CSC10300"}, {"PHYS20700", "PHYS20800"},
			},
		},
		{
			name:      "corequisite bundle",
			completed: []string{"ENGL11000", "MATH19500", "MATH20100", "CSC10300", "CSC21100"},
			expected: [][]string{
				{"ENGL11000"}, {"ENGL21007"}, {"MATH19500"}, {"MATH20100"}, {"MATH20200"}, {"MATH20900"}, {"MATH21200"},
				{"CSC10300"}, {"CSC21100"}, {"PHYS20700", "PHYS20800"}, {"CSC10400", "MATH20200"}, {"CSC34200", "CSC34300"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			groups, err := model.ResolveEligibility(Default(), model.NewCompletedSet(test.completed...))

			require.NoError(t, err)
			assert.Equal(t, test.expected, model.NewEligibilityResponse(groups).EligibleCourses)
		})
	}
}

func TestRaw(t *testing.T) {
	raw := Raw()
	raw[0] = 'X'

	assert.NotEqual(t, raw[0], Raw()[0])
}
