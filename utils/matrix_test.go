package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	{ // Construction
		m := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		nr, nc := m.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 3, nc)
		assert.Equal(t, 6., m.At(1, 2))
		assert.False(t, m.IsEmpty())
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
	}
	{ // Mutation in place and copies
		m := NewMatrix(2, 2)
		m.SetAll(2).Set(0, 1, 5)
		assert.Equal(t, []float64{2, 5, 2, 2}, m.Data())
		c := m.Copy()
		c.Apply(func(v float64) float64 { return v * v })
		assert.Equal(t, []float64{2, 5, 2, 2}, m.Data())
		assert.Equal(t, []float64{4, 25, 4, 4}, c.Data())
		m.Apply2(func(a, b float64) float64 { return a - b }, c)
		assert.Equal(t, []float64{-2, -20, -2, -2}, m.Data())
		assert.Panics(t, func() { m.Apply2(func(a, b float64) float64 { return a }, NewMatrix(1, 1)) })
	}
	{ // Rows combine with one value each
		m := NewMatrix(2, 3, []float64{1, 1, 1, 2, 2, 2})
		m.ApplyRows(func(a, b float64) float64 { return a * b }, []float64{3, 10})
		assert.Equal(t, []float64{3, 3, 3, 20, 20, 20}, m.Data())
		assert.Panics(t, func() { m.ApplyRows(func(a, b float64) float64 { return a }, []float64{1}) })
	}
	{ // Read only matrices refuse writes until released
		m := NewMatrix(1, 2)
		m.SetReadOnly("J")
		require.True(t, m.IsReadOnly())
		assert.Equal(t, "J", m.Name())
		assert.Panics(t, func() { m.Set(0, 0, 1) })
		assert.Panics(t, func() { m.SetAll(1) })
		assert.Panics(t, func() { m.Apply(func(v float64) float64 { return v }) })
		assert.False(t, m.Copy().IsReadOnly())
		m.SetWritable()
		assert.NotPanics(t, func() { m.Set(0, 0, 1) })
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.))
	assert.True(t, IsFinite([]float64{0, -1, 2}))
	m := NewMatrix(1, 2)
	assert.True(t, IsFinite(m))
	m.Set(0, 1, 1/zero())
	assert.False(t, IsFinite(m))
}

func zero() float64 { return 0 }
