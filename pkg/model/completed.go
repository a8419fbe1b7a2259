package model

import (
	"strings"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/util/sets"
)

// CompletedSet is the set of course identifiers a student has already finished
type CompletedSet = sets.Set[string]

// NewCompletedSet builds a completed set from ids. Surrounding whitespace is dropped, blank ids are ignored and duplicates collapse
func NewCompletedSet(ids ...string) CompletedSet {
	return sets.New(lo.FilterMap(ids, func(id string, _ int) (string, bool) {
		id = strings.TrimSpace(id)
		return id, id != ""
	})...)
}
