package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/AnatoleLucet/sift"
)

// Describe writes the loaded tree below n, one node per line. Disabled nodes
// are marked with a minus.
func Describe(w io.Writer, n *sift.Node[Record]) error {
	return describe(w, n, 0)
}

func describe(w io.Writer, n *sift.Node[Record], depth int) error {
	mark := "+"
	if !n.IsItemEnabled() {
		mark = "-"
	}

	if _, err := fmt.Fprintf(w, "%s%s %s (%s)%s\n", strings.Repeat("  ", depth), mark, n.Title(), n.Kind(), criteria(n)); err != nil {
		return err
	}

	for _, child := range n.NestedNodes() {
		if err := describe(w, child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// criteria renders the current criteria of typed nodes.
func criteria(n *sift.Node[Record]) string {
	if kn, ok := sift.AsKeywordsNode[Record](n); ok && !kn.Keywords().IsEmpty() {
		return fmt.Sprintf(": %s", strings.Join(kn.Keywords().Words, " "))
	}

	if sn, ok := sift.AsSingleValueNode[Record, string](n); ok && sn.Value() != nil {
		return fmt.Sprintf(": %s", *sn.Value())
	}

	if n.Kind() == sift.KindRange {
		for _, bounds := range []func(*sift.Node[Record]) (string, bool){
			rangeBounds(formatNumber),
			rangeBounds(formatString),
			rangeBounds(formatTime),
			rangeBounds((*semver.Version).String),
		} {
			if text, ok := bounds(n); ok {
				return text
			}
		}
	}

	return ""
}

// rangeBounds renders the bounds of a range node over T, false when n ranges
// over another type or has no bound.
func rangeBounds[T any](format func(T) string) func(*sift.Node[Record]) (string, bool) {
	return func(n *sift.Node[Record]) (string, bool) {
		rn, ok := sift.AsRangeNode[Record, T](n)
		if !ok || rn.Range().IsEmpty() {
			return "", false
		}

		r := rn.Range()
		switch {
		case r.Lower != nil && r.Upper != nil:
			return fmt.Sprintf(": %s .. %s", format(*r.Lower), format(*r.Upper)), true
		case r.Lower != nil:
			return fmt.Sprintf(": >= %s", format(*r.Lower)), true
		default:
			return fmt.Sprintf(": <= %s", format(*r.Upper)), true
		}
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatString(v string) string { return v }

// formatTime drops the clock of midnight UTC times.
func formatTime(v time.Time) string {
	if v.Location() == time.UTC && v.Equal(v.Truncate(24*time.Hour)) {
		return v.Format(dateLayout)
	}

	return v.Format(time.RFC3339)
}
