package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// Filter kinds of a schema file.
const (
	KindMulti    = "multi"
	KindRange    = "range"
	KindKeywords = "keywords"
	KindValue    = "value"
	KindGroup    = "group"
)

var (
	ErrUnknownKind    = errors.New("unknown filter kind")
	ErrUnknownCompare = errors.New("unknown compare mode")
	ErrMissingField   = errors.New("missing field")
)

// Schema declares the filters applied to a dataset.
type Schema struct {
	Title   string   `yaml:"title"`
	Filters []Filter `yaml:"filters"`
}

// Filter declares one filter and, optionally, its initial state.
type Filter struct {
	Kind  string `yaml:"kind"`
	Title string `yaml:"title"`

	// Field is the dotted path of the record field the filter reads.
	Field string `yaml:"field"`

	// None, when set, is the title of the item matching records without the field.
	None        string `yaml:"none"`
	NoneEnabled *bool  `yaml:"noneEnabled"`

	// multi
	Select []string          `yaml:"select"`
	Labels map[string]string `yaml:"labels"`

	// range
	Compare string `yaml:"compare"`
	Min     any    `yaml:"min"`
	Max     any    `yaml:"max"`

	// keywords
	Words         []string `yaml:"words"`
	CaseSensitive bool     `yaml:"caseSensitive"`

	// value
	Value any `yaml:"value"`

	// group
	Filters []Filter `yaml:"filters"`
}

func (s *Schema) Validate() error {
	if s.Title == "" {
		s.Title = "Filters"
	}

	return validateFilters(s.Filters, "")
}

func validateFilters(filters []Filter, prefix string) error {
	for i := range filters {
		f := &filters[i]

		where := fmt.Sprintf("%sfilters[%d]", prefix, i)
		if f.Title == "" {
			f.Title = f.Field
		}
		if f.Title == "" {
			return fmt.Errorf("%s: missing title", where)
		}

		if f.Kind == KindGroup {
			if err := validateFilters(f.Filters, where+"."); err != nil {
				return err
			}
			continue
		}

		if !slices.Contains([]string{KindMulti, KindRange, KindKeywords, KindValue}, f.Kind) {
			return fmt.Errorf("%s (%s): %w %q", where, f.Title, ErrUnknownKind, f.Kind)
		}

		if f.Field == "" {
			return fmt.Errorf("%s (%s): %w", where, f.Title, ErrMissingField)
		}

		if f.Kind == KindRange {
			if f.Compare == "" {
				f.Compare = CompareNumber
			}

			if !slices.Contains([]string{CompareNumber, CompareString, CompareTime, CompareSemver}, f.Compare) {
				return fmt.Errorf("%s (%s): %w %q", where, f.Title, ErrUnknownCompare, f.Compare)
			}
		}
	}

	return nil
}
