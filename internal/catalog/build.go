package catalog

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AnatoleLucet/sift"
)

// applyFunc sets the declared state of a loaded node.
type applyFunc func(n *sift.Node[Record]) error

// Tree is the filter tree built from a Catalog.
type Tree struct {
	core    *sift.Core[Record]
	records []Record
	logger  *slog.Logger

	apply map[sift.Definition[Record]]applyFunc
}

// Build turns the schema into definitions. Multi-selection universes are the
// distinct values of their field across the records.
func (c *Catalog) Build(logger *slog.Logger) (*Tree, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tree{
		records: c.Records,
		logger:  logger,
		apply:   make(map[sift.Definition[Record]]applyFunc),
	}

	b := sift.NewBuilder[Record]()
	if err := t.add(b, c.Schema.Filters); err != nil {
		return nil, err
	}

	t.core = sift.New(c.Schema.Title, b.Build(), sift.WithLogger(logger))

	return t, nil
}

func (t *Tree) add(b *sift.Builder[Record], filters []Filter) error {
	for _, f := range filters {
		if f.Kind == KindGroup {
			var err error
			b.Group(f.Title, func(g *sift.Builder[Record]) {
				err = t.add(g, f.Filters)
			})
			if err != nil {
				return err
			}
			continue
		}

		def, apply, err := t.definition(f)
		if err != nil {
			return fmt.Errorf("filter %q: %w", f.Title, err)
		}

		b.Add(def)
		t.apply[def] = apply
	}

	return nil
}

func (t *Tree) definition(f Filter) (sift.Definition[Record], applyFunc, error) {
	opts := []sift.Option{sift.WithLogger(t.logger)}
	if f.None != "" {
		opts = append(opts, sift.WithNone(f.None))
	}

	switch f.Kind {
	case KindMulti:
		return t.multi(f, opts)
	case KindRange:
		switch f.Compare {
		case CompareString:
			return rangeFilter(f, parseString, cmp.Compare[string], opts)
		case CompareTime:
			return rangeFilter(f, parseTime, time.Time.Compare, opts)
		case CompareSemver:
			return rangeFilter(f, parseSemver, compareSemver, opts)
		default:
			return rangeFilter(f, parseNumber, cmp.Compare[float64], opts)
		}
	case KindKeywords:
		return keywordsFilter(f, opts)
	case KindValue:
		return valueFilter(f, opts)
	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownKind, f.Kind)
	}
}

func (t *Tree) multi(f Filter, opts []sift.Option) (sift.Definition[Record], applyFunc, error) {
	field := f.Field

	fetcher := sift.FetcherFunc[sift.Choice](func(context.Context) []sift.Choice {
		keys := distinctKeys(t.records, field)

		choices := make([]sift.Choice, 0, len(keys))
		for _, key := range keys {
			choices = append(choices, sift.Choice{Key: key, Label: f.Labels[key]})
		}

		return choices
	})

	resolver := sift.SelectedBy[Record, sift.Choice](func(r Record) []string {
		return r.Keys(field)
	})

	def := sift.NewMultiSelection[Record, sift.Choice](f.Title, resolver, fetcher, opts...)

	apply := func(n *sift.Node[Record]) error {
		ms, ok := sift.AsMultiSelectionNode[Record, sift.Choice](n)
		if !ok {
			return fmt.Errorf("filter %q: not a multi-selection node", f.Title)
		}

		if f.Select != nil {
			selected := make([]sift.Choice, 0, len(f.Select))
			for _, key := range f.Select {
				selected = append(selected, sift.Choice{Key: key})
			}
			ms.SetSelected(selected)
		}

		applyNone(n, f.NoneEnabled)
		return nil
	}

	return def, apply, nil
}

func rangeFilter[T any](f Filter, parse func(any) (T, error), compare func(a, b T) int, opts []sift.Option) (sift.Definition[Record], applyFunc, error) {
	field := f.Field

	resolver := sift.RangeByFunc(func(r Record) (T, bool) {
		var zero T

		raw, ok := r.Lookup(field)
		if !ok {
			return zero, false
		}

		// unparsable values count as absent
		v, err := parse(raw)
		if err != nil {
			return zero, false
		}

		return v, true
	}, compare)

	var declared sift.Range[T]
	if f.Min != nil {
		lower, err := parse(f.Min)
		if err != nil {
			return nil, nil, fmt.Errorf("min: %w", err)
		}
		declared.Lower = &lower
	}
	if f.Max != nil {
		upper, err := parse(f.Max)
		if err != nil {
			return nil, nil, fmt.Errorf("max: %w", err)
		}
		declared.Upper = &upper
	}

	def := sift.NewRange[Record, T](f.Title, resolver, opts...)

	apply := func(n *sift.Node[Record]) error {
		rn, ok := sift.AsRangeNode[Record, T](n)
		if !ok {
			return fmt.Errorf("filter %q: not a range node", f.Title)
		}

		if !declared.IsEmpty() {
			rn.SetRange(declared)
		}

		applyNone(n, f.NoneEnabled)
		return nil
	}

	return def, apply, nil
}

func keywordsFilter(f Filter, opts []sift.Option) (sift.Definition[Record], applyFunc, error) {
	field := f.Field

	resolver := sift.KeywordsByOptional(func(r Record) (string, bool) {
		return r.Text(field)
	})

	def := sift.NewKeywords[Record](f.Title, resolver, opts...)

	apply := func(n *sift.Node[Record]) error {
		kn, ok := sift.AsKeywordsNode[Record](n)
		if !ok {
			return fmt.Errorf("filter %q: not a keywords node", f.Title)
		}

		if len(f.Words) > 0 || f.CaseSensitive {
			kn.SetKeywords(sift.Keywords{Words: f.Words, CaseSensitive: f.CaseSensitive})
		}

		applyNone(n, f.NoneEnabled)
		return nil
	}

	return def, apply, nil
}

// valueFilter compares the string form of the field with the declared value.
func valueFilter(f Filter, opts []sift.Option) (sift.Definition[Record], applyFunc, error) {
	field := f.Field

	resolver := sift.EqualByOptional(func(r Record) (string, bool) {
		return r.Text(field)
	})

	def := sift.NewSingleValue[Record, string](f.Title, resolver, opts...)

	apply := func(n *sift.Node[Record]) error {
		sn, ok := sift.AsSingleValueNode[Record, string](n)
		if !ok {
			return fmt.Errorf("filter %q: not a value node", f.Title)
		}

		if f.Value != nil {
			sn.SetValue(fmt.Sprint(f.Value))
		}

		applyNone(n, f.NoneEnabled)
		return nil
	}

	return def, apply, nil
}

// applyNone toggles the None item of n when its state is declared.
func applyNone(n *sift.Node[Record], enabled *bool) {
	if enabled == nil {
		return
	}

	for _, child := range n.NestedNodes() {
		if child.Kind() == sift.KindNone {
			child.SetItemEnabled(*enabled)
		}
	}
}

// Load composes the tree, fetches every universe and sets the declared state.
// It must run on the goroutine that later reads or edits the tree.
func (t *Tree) Load(ctx context.Context) (*sift.Node[Record], error) {
	if err := t.core.Preload(ctx); err != nil {
		return nil, fmt.Errorf("preloading filters: %w", err)
	}

	root := t.core.LoadAll(ctx)
	if err := t.applyAll(root); err != nil {
		return nil, err
	}

	t.logger.DebugContext(ctx, "filters applied",
		slog.String("title", root.Title()),
		slog.Bool("active", t.core.IsFilterActive()))

	return root, nil
}

func (t *Tree) applyAll(n *sift.Node[Record]) error {
	if apply, ok := t.apply[n.Definition()]; ok {
		if err := apply(n); err != nil {
			return err
		}
	}

	for _, child := range n.NestedNodes() {
		if err := t.applyAll(child); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) Core() *sift.Core[Record] { return t.core }

// Filtered returns the records passing every active filter.
func (t *Tree) Filtered() []Record {
	return t.core.FilteredData(t.records)
}
