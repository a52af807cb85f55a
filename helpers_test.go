package sift

import (
	"context"
	"slices"
	"time"
)

type aircraft struct {
	Name     string
	Type     string
	Seats    int
	Remarks  string
	Built    time.Time
	Serviced *time.Time
	Active   *bool
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

var aircraftTypes = []Choice{
	{Key: "jet", Label: "Jet"},
	{Key: "turboprop", Label: "Turboprop"},
	{Key: "piston", Label: "Piston"},
	{Key: "helicopter", Label: "Helicopter"},
	{Key: "glider", Label: "Glider"},
	{Key: "airship", Label: "Airship"},
}

func fleet() []aircraft {
	return []aircraft{
		{Name: "A1", Type: "jet", Seats: 180, Remarks: "Refurbished cabin", Built: day(1), Serviced: ptr(day(10)), Active: ptr(true)},
		{Name: "A2", Type: "turboprop", Seats: 70, Remarks: "", Built: day(2), Active: ptr(false)},
		{Name: "A3", Type: "piston", Seats: 4, Remarks: "new engines", Built: day(3), Serviced: ptr(day(12))},
		{Name: "A4", Type: "jet", Seats: 220, Remarks: "REFURBISHED in 2020", Built: day(4), Serviced: ptr(day(14)), Active: ptr(true)},
		{Name: "A5", Type: "helicopter", Seats: 6, Remarks: "", Built: day(5), Active: ptr(true)},
		{Name: "A6", Type: "glider", Seats: 1, Remarks: "factory paint", Built: day(6), Serviced: ptr(day(16)), Active: ptr(false)},
		{Name: "A7", Type: "airship", Seats: 12, Remarks: "refurbished, repainted", Built: day(7), Serviced: ptr(day(18))},
		{Name: "A8", Type: "piston", Seats: 2, Remarks: "", Built: day(8), Active: ptr(true)},
		{Name: "A9", Type: "turboprop", Seats: 50, Remarks: "stored", Built: day(9), Serviced: ptr(day(20)), Active: ptr(true)},
		{Name: "A10", Type: "helicopter", Seats: 4, Remarks: "partially refurbished", Built: day(10), Active: ptr(false)},
	}
}

func names(items []aircraft) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}

	return out
}

func typeResolver() ResolverFunc[aircraft, []Choice] {
	return SelectedByKey[aircraft, Choice](func(a aircraft) (string, bool) {
		return a.Type, a.Type != ""
	})
}

func remarksResolver() ResolverFunc[aircraft, Keywords] {
	return KeywordsBy(func(a aircraft) string { return a.Remarks })
}

func builtResolver() ResolverFunc[aircraft, Range[time.Time]] {
	return RangeByFunc(func(a aircraft) (time.Time, bool) { return a.Built, true }, time.Time.Compare)
}

func servicedResolver() ResolverFunc[aircraft, Range[time.Time]] {
	return RangeByFunc(func(a aircraft) (time.Time, bool) {
		if a.Serviced == nil {
			return time.Time{}, false
		}
		return *a.Serviced, true
	}, time.Time.Compare)
}

func activeResolver() ResolverFunc[aircraft, *bool] {
	return EqualByOptional(func(a aircraft) (bool, bool) {
		if a.Active == nil {
			return false, false
		}
		return *a.Active, true
	})
}

func newTypeFilter(opts ...Option) *MultiSelectionDefinition[aircraft, Choice] {
	return NewMultiSelection[aircraft, Choice]("Type", typeResolver(), StaticFetcher(aircraftTypes...), opts...)
}

// childByTitle finds a nested node by title, nil when missing.
func childByTitle[I any](n *Node[I], title string) *Node[I] {
	i := slices.IndexFunc(n.NestedNodes(), func(child *Node[I]) bool {
		return child.Title() == title
	})
	if i < 0 {
		return nil
	}

	return n.NestedNodes()[i]
}

// stubDefinition records UpdateState calls and aggregates its children like a master.
type stubDefinition struct {
	definition

	children []Definition[int]
	log      *[]string
}

func newStub(title string, log *[]string, children ...Definition[int]) *stubDefinition {
	return &stubDefinition{
		definition: definition{title: title, enabled: true},
		children:   children,
		log:        log,
	}
}

func (s *stubDefinition) Kind() Kind { return KindMaster }

func (s *stubDefinition) IsComposite() bool { return len(s.children) > 0 }

func (s *stubDefinition) LoadNestedItems(context.Context) []Definition[int] { return s.children }

func (s *stubDefinition) UpdateState() {
	*s.log = append(*s.log, "update "+s.title)

	if len(s.children) > 0 {
		s.enabled = !slices.ContainsFunc(s.children, func(c Definition[int]) bool {
			return !c.IsItemEnabled()
		})
	}
}

func (s *stubDefinition) CreateRelatedNode() *Node[int] { return newNode[int](s) }

func (s *stubDefinition) FilteredItems(items []int) []int { return items }
