package sift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles[I any](defs []Definition[I]) []string {
	out := make([]string, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.Title())
	}

	return out
}

func TestBuilder(t *testing.T) {
	remarks := func() Definition[aircraft] { return NewKeywords[aircraft]("Remarks", remarksResolver()) }

	t.Run("keeps order", func(t *testing.T) {
		defs := NewBuilder[aircraft]().
			Add(newTypeFilter()).
			Add(remarks()).
			Build()

		assert.Equal(t, []string{"Type", "Remarks"}, titles(defs))
	})

	t.Run("group", func(t *testing.T) {
		defs := NewBuilder[aircraft]().
			Group("Details", func(g *Builder[aircraft]) {
				g.Add(newTypeFilter(), remarks())
			}).
			Build()

		require.Len(t, defs, 1)

		master, ok := defs[0].(*MasterDefinition[aircraft])
		require.True(t, ok)
		assert.Equal(t, "Details", master.Title())
		assert.Equal(t, []string{"Type", "Remarks"}, titles(master.Children()))
	})

	t.Run("conditionals", func(t *testing.T) {
		defs := NewBuilder[aircraft]().
			If(false, func(b *Builder[aircraft]) { b.Add(newTypeFilter()) }).
			If(true, func(b *Builder[aircraft]) { b.Add(remarks()) }).
			IfElse(false,
				func(b *Builder[aircraft]) { b.Add(NewMaster[aircraft]("Then")) },
				func(b *Builder[aircraft]) { b.Add(NewMaster[aircraft]("Else")) },
			).
			Build()

		assert.Equal(t, []string{"Remarks", "Else"}, titles(defs))
	})

	t.Run("for each and composers", func(t *testing.T) {
		common := ComposerFunc[aircraft](func(b *Builder[aircraft]) {
			b.Add(newTypeFilter())
		})

		b := NewBuilder[aircraft]().Include(common)
		ForEach(b, []string{"Cabin", "Engines"}, func(b *Builder[aircraft], title string) {
			b.Add(NewKeywords[aircraft](title, remarksResolver()))
		})

		assert.Equal(t, []string{"Type", "Cabin", "Engines"}, titles(b.Build()))
	})

	t.Run("build returns a copy", func(t *testing.T) {
		b := NewBuilder[aircraft]().Add(remarks())

		defs := b.Build()
		b.Add(newTypeFilter())

		assert.Len(t, defs, 1)
	})
}
