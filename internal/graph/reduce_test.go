package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/storch/internal/tensor"
)

func TestSumPlate(t *testing.T) {
	ctx := newTestContext()

	t.Run("sums the plate dimension, keeping it", func(t *testing.T) {
		raw, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
		require.NoError(t, err)
		n, err := NewDeterministic(ctx, raw, nil, Plates{{"a", 2}, {"b", 3}}, "")
		require.NoError(t, err)

		sum, err := SumPlate(n, "b")
		require.NoError(t, err)
		require.True(t, sum.Shape().Equal(tensor.Shape{2, 1}))
		assert.Equal(t, []float64{6, 15}, sum.AsFloat64())
	})

	t.Run("locates the dimension past singleton plates", func(t *testing.T) {
		raw, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
		require.NoError(t, err)
		n, err := NewDeterministic(ctx, raw, nil, Plates{{"one", 1}, {"b", 3}}, "")
		require.NoError(t, err)

		sum, err := SumPlate(n, "b")
		require.NoError(t, err)
		assert.Equal(t, []float64{6}, sum.AsFloat64())
	})

	t.Run("singleton plate sums to the value itself", func(t *testing.T) {
		raw, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
		require.NoError(t, err)
		n, err := NewDeterministic(ctx, raw, nil, Plates{{"one", 1}, {"b", 3}}, "")
		require.NoError(t, err)

		sum, err := SumPlate(n, "one")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, sum.AsFloat64())
	})

	t.Run("unknown plate", func(t *testing.T) {
		n := leaf(t, ctx, []float64{1}, tensor.Shape{1}, nil)
		_, err := SumPlate(n, "missing")
		assert.ErrorIs(t, err, ErrUnknownPlate)
	})
}

func TestMeanPlate(t *testing.T) {
	ctx := newTestContext()
	raw, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	n, err := NewDeterministic(ctx, raw, nil, Plates{{"a", 2}, {"b", 3}}, "")
	require.NoError(t, err)

	mean, err := MeanPlate(n, "a")
	require.NoError(t, err)
	require.True(t, mean.Shape().Equal(tensor.Shape{1, 3}))
	assert.Equal(t, []float64{2.5, 3.5, 4.5}, mean.AsFloat64())
}

func TestReducePlates(t *testing.T) {
	ctx := newTestContext()

	t.Run("averages all batch dimensions", func(t *testing.T) {
		raw, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4}, tensor.CPU)
		require.NoError(t, err)
		n, err := NewDeterministic(ctx, raw, nil, Plates{{"batch", 4}}, "")
		require.NoError(t, err)

		out := ReducePlates(n)
		assert.InDelta(t, 2.5, out.Item(), 1e-9)
	})

	t.Run("averages remaining event dimensions", func(t *testing.T) {
		raw, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
		require.NoError(t, err)
		n, err := NewDeterministic(ctx, raw, nil, Plates{{"batch", 2}}, "")
		require.NoError(t, err)

		out := ReducePlates(n)
		assert.InDelta(t, 3.5, out.Item(), 1e-9)
	})

	t.Run("detached from gradient tracking", func(t *testing.T) {
		raw, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPU)
		require.NoError(t, err)
		n, err := NewDeterministic(ctx, raw.RequireGrad(), nil, Plates{{"batch", 2}}, "")
		require.NoError(t, err)

		out := ReducePlates(n)
		assert.False(t, out.RequiresGrad())
	})
}
