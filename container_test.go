package sift

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = WithLogger(slog.New(slog.DiscardHandler))

func TestContainerIdentity(t *testing.T) {
	items := fleet()
	ctx := context.Background()

	multi := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...), WithNone(""))
	multi.InitializeFilter(ctx)

	containers := map[string]Container[aircraft]{
		"multi-selection": multi,
		"range":           NewRangeContainer[aircraft, time.Time](builtResolver(), WithNone("")),
		"keywords":        NewKeywordsContainer[aircraft](remarksResolver(), WithNone("")),
		"single value":    NewSingleValueContainer[aircraft, bool](activeResolver(), WithNone("")),
	}

	for name, c := range containers {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.IsFilterActive())
			assert.Equal(t, items, c.FilterItems(items))
		})
	}
}

func TestMultiSelectionContainer(t *testing.T) {
	ctx := context.Background()

	t.Run("initialize selects the whole universe", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...))
		assert.False(t, c.IsInitialized())

		fetched := c.InitializeFilter(ctx)

		assert.True(t, c.IsInitialized())
		assert.Equal(t, aircraftTypes, fetched)
		assert.Equal(t, aircraftTypes, c.AllItems())
		assert.Equal(t, aircraftTypes, c.SelectedItems())
		assert.False(t, c.IsFilterActive())
	})

	t.Run("fetches once", func(t *testing.T) {
		var calls atomic.Int32
		fetcher := FetcherFunc[Choice](func(context.Context) []Choice {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return aircraftTypes
		})

		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), fetcher)

		var wg sync.WaitGroup
		for range 5 {
			wg.Go(func() { c.InitializeFilter(ctx) })
		}
		wg.Wait()

		c.Deselect(aircraftTypes[0])
		c.InitializeFilter(ctx)

		assert.Equal(t, int32(1), calls.Load())
		assert.Len(t, c.SelectedItems(), len(aircraftTypes)-1)
	})

	t.Run("deselect narrows the items", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...))
		c.InitializeFilter(ctx)

		c.Deselect(Choice{Key: "jet"})
		c.Deselect(Choice{Key: "piston"})

		assert.True(t, c.IsFilterActive())
		assert.False(t, c.IsItemSelected(Choice{Key: "jet"}))
		assert.Equal(t, []string{"A2", "A5", "A6", "A7", "A9", "A10"}, names(c.FilterItems(fleet())))
	})

	t.Run("select ignores duplicates", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...))
		c.InitializeFilter(ctx)

		c.Select(Choice{Key: "jet"})

		assert.Len(t, c.SelectedItems(), len(aircraftTypes))
		assert.False(t, c.IsFilterActive())
	})

	t.Run("select ignores criteria outside the universe", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...), quiet)
		c.InitializeFilter(ctx)

		c.Deselect(Choice{Key: "jet"})
		c.Select(Choice{Key: "rocket"})

		assert.Len(t, c.SelectedItems(), len(aircraftTypes)-1)
		assert.False(t, c.IsItemSelected(Choice{Key: "rocket"}))
		assert.True(t, c.IsFilterActive())
		assert.Equal(t, []string{"A2", "A3", "A5", "A6", "A7", "A8", "A9", "A10"}, names(c.FilterItems(fleet())))

		c.Select(Choice{Key: "jet"})

		assert.Len(t, c.SelectedItems(), len(aircraftTypes))
		assert.False(t, c.IsFilterActive())
	})

	t.Run("set selected keeps universe members in universe order", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...))
		c.InitializeFilter(ctx)

		c.SetSelected([]Choice{{Key: "glider"}, {Key: "rocket"}, {Key: "jet"}})

		assert.Equal(t, []Choice{aircraftTypes[0], aircraftTypes[4]}, c.SelectedItems())
	})

	t.Run("reset", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...), WithNone(""))
		c.InitializeFilter(ctx)

		c.SetSelected(nil)
		c.SetNoneEnabled(false)
		require.True(t, c.IsFilterActive())

		c.Reset()

		assert.Equal(t, aircraftTypes, c.SelectedItems())
		assert.True(t, c.NoneEnabled())
		assert.False(t, c.IsFilterActive())
	})

	t.Run("none", func(t *testing.T) {
		items := append(fleet(), aircraft{Name: "A11"})

		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), StaticFetcher(aircraftTypes...), WithNone(""))
		c.InitializeFilter(ctx)

		assert.True(t, c.NoneIncluded())
		assert.True(t, c.NoneEnabled())
		assert.Equal(t, items, c.FilterItems(items))

		c.SetNoneEnabled(false)

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, names(fleet()), names(c.FilterItems(items)))
	})

	t.Run("missing fetcher yields an empty universe", func(t *testing.T) {
		c := NewMultiSelectionContainer[aircraft, Choice](typeResolver(), nil, quiet)

		assert.Empty(t, c.InitializeFilter(ctx))
		assert.True(t, c.IsInitialized())
		assert.False(t, c.IsFilterActive())
	})

	t.Run("missing resolver filters nothing", func(t *testing.T) {
		var resolver ResolverFunc[aircraft, []Choice]
		c := NewMultiSelectionContainer[aircraft, Choice](resolver, StaticFetcher(aircraftTypes...), quiet)
		c.InitializeFilter(ctx)

		c.SetSelected(nil)

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, fleet(), c.FilterItems(fleet()))
	})
}

func TestRangeContainer(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		c := NewRangeContainer[aircraft, int](RangeBy(func(a aircraft) int { return a.Seats }))

		c.SetRange(Between(2, 6))

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, []string{"A3", "A5", "A8", "A10"}, names(c.FilterItems(fleet())))
	})

	t.Run("none keeps absent fields", func(t *testing.T) {
		c := NewRangeContainer[aircraft, time.Time](servicedResolver(), WithNone(""))

		c.SetRange(AtLeast(day(15)))
		assert.Equal(t, []string{"A2", "A5", "A6", "A7", "A8", "A9", "A10"}, names(c.FilterItems(fleet())))

		c.SetNoneEnabled(false)
		assert.Equal(t, []string{"A6", "A7", "A9"}, names(c.FilterItems(fleet())))
	})

	t.Run("only none disabled", func(t *testing.T) {
		c := NewRangeContainer[aircraft, time.Time](servicedResolver(), WithNone(""))

		c.SetNoneEnabled(false)

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, []string{"A1", "A3", "A4", "A6", "A7", "A9"}, names(c.FilterItems(fleet())))
	})

	t.Run("missing resolver filters nothing", func(t *testing.T) {
		var resolver ResolverFunc[aircraft, Range[int]]
		c := NewRangeContainer[aircraft, int](resolver, quiet)

		c.SetRange(AtLeast(100))

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, fleet(), c.FilterItems(fleet()))
	})

	t.Run("reset", func(t *testing.T) {
		c := NewRangeContainer[aircraft, time.Time](servicedResolver(), WithNone(""))
		c.SetRange(AtMost(day(1)))
		c.SetNoneEnabled(false)

		c.Reset()

		assert.True(t, c.Range().IsEmpty())
		assert.True(t, c.NoneEnabled())
		assert.False(t, c.IsFilterActive())
	})
}

func TestKeywordsContainer(t *testing.T) {
	t.Run("keywords", func(t *testing.T) {
		c := NewKeywordsContainer[aircraft](remarksResolver())

		c.SetKeywords(Keywords{Words: []string{"refurbished"}})

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, []string{"A1", "A4", "A7", "A10"}, names(c.FilterItems(fleet())))

		c.Reset()
		assert.False(t, c.IsFilterActive())
		assert.True(t, c.Keywords().IsEmpty())
	})

	t.Run("blank words leave the filter inactive", func(t *testing.T) {
		c := NewKeywordsContainer[aircraft](remarksResolver())

		c.SetKeywords(Keywords{Words: []string{""}})

		assert.False(t, c.IsFilterActive())
		assert.Equal(t, fleet(), c.FilterItems(fleet()))
	})

	t.Run("missing resolver filters nothing", func(t *testing.T) {
		var resolver ResolverFunc[aircraft, Keywords]
		c := NewKeywordsContainer[aircraft](resolver, quiet)

		c.SetKeywords(Keywords{Words: []string{"refurbished"}})

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, fleet(), c.FilterItems(fleet()))
	})
}

func TestSingleValueContainer(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		c := NewSingleValueContainer[aircraft, bool](activeResolver())

		c.SetValue(ptr(true))

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, []string{"A1", "A4", "A5", "A8", "A9"}, names(c.FilterItems(fleet())))
	})

	t.Run("none disabled without value keeps present fields", func(t *testing.T) {
		c := NewSingleValueContainer[aircraft, bool](activeResolver(), WithNone(""))

		c.SetNoneEnabled(false)

		assert.True(t, c.IsFilterActive())
		assert.Nil(t, c.Value())
		assert.Equal(t, []string{"A1", "A2", "A4", "A5", "A6", "A8", "A9", "A10"}, names(c.FilterItems(fleet())))
	})

	t.Run("value with none", func(t *testing.T) {
		c := NewSingleValueContainer[aircraft, bool](activeResolver(), WithNone(""))

		c.SetValue(ptr(false))

		assert.Equal(t, []string{"A2", "A3", "A6", "A7", "A10"}, names(c.FilterItems(fleet())))
	})

	t.Run("missing resolver filters nothing", func(t *testing.T) {
		var resolver ResolverFunc[aircraft, *bool]
		c := NewSingleValueContainer[aircraft, bool](resolver, quiet)

		c.SetValue(ptr(true))

		assert.True(t, c.IsFilterActive())
		assert.Equal(t, fleet(), c.FilterItems(fleet()))
	})

	t.Run("reset", func(t *testing.T) {
		c := NewSingleValueContainer[aircraft, bool](activeResolver(), WithNone(""))
		c.SetValue(ptr(false))
		c.SetNoneEnabled(false)

		c.Reset()

		assert.Nil(t, c.Value())
		assert.False(t, c.IsFilterActive())
	})
}
