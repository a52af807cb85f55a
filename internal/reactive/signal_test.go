package reactive

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		count := NewSignal(0)

		wg.Go(func() {
			count.Write(count.Read() + 1)
		})

		wg.Wait()
		assert.Equal(t, 1, count.Read())
	})

	t.Run("notifies listeners on change only", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		count.Subscribe(func(v int) {
			log = append(log, fmt.Sprintf("changed %d", v))
		})

		count.Write(10)
		count.Write(10)
		count.Write(20)

		assert.Equal(t, []string{
			"changed 10",
			"changed 20",
		}, log)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		unsubscribe := count.Subscribe(func(v int) {
			log = append(log, fmt.Sprintf("changed %d", v))
		})

		count.Write(1)
		unsubscribe()
		count.Write(2)

		assert.Equal(t, []string{"changed 1"}, log)
	})

	t.Run("custom equality", func(t *testing.T) {
		calls := 0

		words := NewSignalFunc([]string{"a"}, slices.Equal[[]string])
		words.Subscribe(func([]string) { calls++ })

		words.Write([]string{"a"})
		words.Write([]string{"a", "b"})

		assert.Equal(t, 1, calls)
	})

	t.Run("nil equality always notifies", func(t *testing.T) {
		calls := 0

		s := NewSignalFunc(1, nil)
		s.Subscribe(func(int) { calls++ })

		s.Write(1)
		s.Write(1)

		assert.Equal(t, 2, calls)
	})
}

func TestBatch(t *testing.T) {
	t.Run("batches multiple writes", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		count.Subscribe(func(v int) {
			log = append(log, fmt.Sprintf("changed %d", v))
		})

		Batch(func() {
			count.Write(10)
			count.Write(20)
			log = append(log, "updated")
		})

		assert.Equal(t, []string{
			"updated",
			"changed 20",
		}, log)
	})

	t.Run("nested batches flush once", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		count.Subscribe(func(v int) {
			log = append(log, fmt.Sprintf("changed %d", v))
		})

		Batch(func() {
			Batch(func() {
				count.Write(1)
			})
			log = append(log, "inner done")
			count.Write(2)
		})

		assert.Equal(t, []string{
			"inner done",
			"changed 2",
		}, log)
	})

	t.Run("listener writes are flushed in the same pass", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewSignal(0)

		count.Subscribe(func(v int) { double.Write(v * 2) })
		double.Subscribe(func(v int) {
			log = append(log, fmt.Sprintf("double %d", v))
		})

		Batch(func() { count.Write(5) })

		assert.Equal(t, []string{"double 10"}, log)
	})

	t.Run("releases the runtime when idle", func(t *testing.T) {
		count := NewSignal(0)

		Batch(func() { count.Write(1) })

		_, ok := lookupRuntime()
		assert.False(t, ok)
	})
}

func TestComputed(t *testing.T) {
	t.Run("derives value from signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})
		plustwo := NewComputed(func() int {
			log = append(log, "adding")
			return double.Read() + 2
		})

		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 4, plustwo.Read())

		count.Write(10)
		assert.Equal(t, 20, double.Read())
		assert.Equal(t, 22, plustwo.Read())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("does not propagate when value unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		a := NewComputed(func() int {
			log = append(log, "running a")
			return count.Read() * 0
		})
		NewComputed(func() int {
			log = append(log, "running b")
			return a.Read() + 1
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("follows dynamic dependencies", func(t *testing.T) {
		useA := NewSignal(true)
		a := NewSignal("a")
		b := NewSignal("b")

		runs := 0
		picked := NewComputed(func() string {
			runs++
			if useA.Read() {
				return a.Read()
			}
			return b.Read()
		})

		useA.Write(false)
		assert.Equal(t, "b", picked.Read())

		a.Write("a2") // no longer a dependency
		assert.Equal(t, 2, runs)

		b.Write("b2")
		assert.Equal(t, "b2", picked.Read())
	})

	t.Run("listeners see derived values after a batch", func(t *testing.T) {
		log := []string{}

		enabled := NewSignal(true)
		active := NewComputed(func() bool { return !enabled.Read() })
		active.Subscribe(func(v bool) {
			log = append(log, fmt.Sprintf("active %t", v))
		})

		Batch(func() {
			enabled.Write(false)
			enabled.Write(true)
			enabled.Write(false)
		})

		assert.Equal(t, []string{"active true"}, log)
	})
}

func TestCoordinator(t *testing.T) {
	c := NewCoordinator()
	assert.True(t, c.IsCurrent())

	var other bool
	var wg sync.WaitGroup
	wg.Go(func() { other = c.IsCurrent() })
	wg.Wait()

	assert.False(t, other)

	var nilCoordinator *Coordinator
	assert.True(t, nilCoordinator.IsCurrent())
}
