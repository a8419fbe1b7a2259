package model

import (
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
)

// EligibilityGroup is a set of courses that must be taken together: a single course, or a course bundled with the corequisites (or either-of alternatives) it must be taken alongside
type EligibilityGroup struct {
	Courses []string
}

// newEligibilityGroup builds a group anchored on course followed by dependencies. Repeated members are dropped keeping their first occurrence
func newEligibilityGroup(course string, dependencies ...string) EligibilityGroup {
	courses := make([]string, 0, len(dependencies)+1)
	courses = append(courses, course)
	courses = append(courses, dependencies...)
	return EligibilityGroup{Courses: lo.Uniq(courses)}
}

// Key returns the normalized identity of the group
func (group EligibilityGroup) Key() GroupKey {
	key := lo.Uniq(group.Courses)
	slices.Sort(key)
	return GroupKey(key)
}

func (group EligibilityGroup) Contains(course string) bool {
	return slices.Contains(group.Courses, course)
}

// GroupKey is the sorted member tuple of a group. Two groups are the same group if and only if their keys are equal
type GroupKey []string

func (key GroupKey) Equal(other GroupKey) bool {
	return slices.Equal(key, other)
}

// sum digests the key members. It is only used to bucket keys, equality is always decided by Equal
func (key GroupKey) sum() uint64 {
	digest := xxhash.New()
	for _, course := range key {
		_, _ = digest.WriteString(course)
		_, _ = digest.Write([]byte{0})
	}
	return digest.Sum64()
}

// groupIndex remembers the keys already seen
type groupIndex struct {
	buckets map[uint64][]GroupKey
}

func newGroupIndex(capacity int) *groupIndex {
	return &groupIndex{buckets: make(map[uint64][]GroupKey, capacity)}
}

// add stores key and reports whether it was not present before
func (index *groupIndex) add(key GroupKey) bool {
	sum := key.sum()
	bucket := index.buckets[sum]
	if lo.ContainsBy(bucket, key.Equal) {
		return false
	}
	index.buckets[sum] = append(bucket, key)
	return true
}

// deduplicateGroups drops every group whose key has already been seen, preserving the order of first occurrence
func deduplicateGroups(groups []EligibilityGroup) []EligibilityGroup {
	index := newGroupIndex(len(groups))
	return lo.Filter(groups, func(group EligibilityGroup, _ int) bool {
		return index.add(group.Key())
	})
}
