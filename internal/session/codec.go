package session

import (
	"sort"
	"strconv"
	"strings"
)

// The unlocked-quiz set is stored as one comma-joined, ascending list of
// integers, e.g. "3,17,42". Unparseable fragments are dropped on read.

// ParseQuizIDSet decodes the stored form into a set.
func ParseQuizIDSet(raw string) map[int]struct{} {
	set := make(map[int]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.Atoi(part); err == nil {
			set[id] = struct{}{}
		}
	}
	return set
}

// EncodeQuizIDSet serializes a set into its stored form.
func EncodeQuizIDSet(set map[int]struct{}) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
