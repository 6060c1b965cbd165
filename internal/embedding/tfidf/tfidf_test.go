package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Prepare(t *testing.T) {
	t.Run("empty corpus errors", func(t *testing.T) {
		e := NewEmbedder()
		assert.Error(t, e.Prepare(nil))
	})

	t.Run("stopword-only corpus errors", func(t *testing.T) {
		e := NewEmbedder()
		assert.Error(t, e.Prepare([]string{"the and or", "is are was"}))
	})

	t.Run("vocabulary sets dimension", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare([]string{"refund policy", "delivery policy"}))
		// refund, policy, delivery
		assert.Equal(t, 3, e.Dimension())
	})
}

func TestEmbedder_Embed(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{
		"refunds are issued within seven days",
		"coupons cannot be combined",
		"store hours vary per city",
	}))

	t.Run("unprepared embedder errors", func(t *testing.T) {
		_, err := NewEmbedder().Embed("refund")
		assert.Error(t, err)
	})

	t.Run("vectors are L2 normalized", func(t *testing.T) {
		vec, err := e.Embed("refunds issued days")
		require.NoError(t, err)
		norm := 0.0
		for _, v := range vec {
			norm += v * v
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	})

	t.Run("out-of-vocabulary text embeds to zero vector", func(t *testing.T) {
		vec, err := e.Embed("xylophone")
		require.NoError(t, err)
		for _, v := range vec {
			assert.Zero(t, v)
		}
	})

	t.Run("related text scores closer than unrelated", func(t *testing.T) {
		refund, err := e.Embed("refunds issued")
		require.NoError(t, err)
		coupon, err := e.Embed("coupons combined")
		require.NoError(t, err)
		query, err := e.Embed("when are refunds issued")
		require.NoError(t, err)
		assert.Greater(t, dot(query, refund), dot(query, coupon))
	})
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
