package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Record is one decoded dataset entry.
type Record map[string]any

// Lookup resolves a dotted path through nested maps. Null values are absent.
func (r Record) Lookup(path string) (any, bool) {
	var cur any = map[string]any(r)

	for key := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}

	return cur, cur != nil
}

// Text returns the field formatted as a string, false when absent or empty.
func (r Record) Text(path string) (string, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return "", false
	}

	s := fmt.Sprint(v)
	return s, s != ""
}

// Keys returns the field as selection keys: one per list element, or the
// scalar itself.
func (r Record) Keys(path string) []string {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}

	list, ok := v.([]any)
	if !ok {
		if s := fmt.Sprint(v); s != "" {
			return []string{s}
		}
		return nil
	}

	keys := make([]string, 0, len(list))
	for _, elem := range list {
		if elem == nil {
			continue
		}
		if s := fmt.Sprint(elem); s != "" {
			keys = append(keys, s)
		}
	}

	return keys
}

// distinctKeys collects every key of path across records, sorted.
func distinctKeys(records []Record, path string) []string {
	var keys []string
	for _, r := range records {
		keys = append(keys, r.Keys(path)...)
	}

	slices.Sort(keys)
	return slices.Compact(keys)
}
