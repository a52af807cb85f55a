package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Range comparison modes.
const (
	CompareNumber = "number"
	CompareString = "string"
	CompareTime   = "time"
	CompareSemver = "semver"
)

// dateLayout is accepted besides RFC 3339.
const dateLayout = time.DateOnly

func parseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}

func parseString(v any) (string, error) {
	return fmt.Sprint(v), nil
}

func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, nil
		}

		parsed, err := time.Parse(dateLayout, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is neither RFC 3339 nor a date", t)
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("%v is not a time", v)
	}
}

func parseSemver(v any) (*semver.Version, error) {
	ver, err := semver.NewVersion(fmt.Sprint(v))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", v, err)
	}

	return ver, nil
}

func compareSemver(a, b *semver.Version) int {
	return a.Compare(b)
}
