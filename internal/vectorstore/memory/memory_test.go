package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecx/internal/domain"
)

func chunk(id string) domain.Chunk {
	return domain.Chunk{DocumentID: "doc", ChunkID: id, Text: "text " + id}
}

func TestStorage_Init(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
	assert.Error(t, s.Init(-3))
	assert.NoError(t, s.Init(4))
}

func TestStorage_Upsert(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))

	t.Run("length mismatch", func(t *testing.T) {
		err := s.Upsert([]domain.Chunk{chunk("a")}, nil)
		assert.Error(t, err)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		err := s.Upsert([]domain.Chunk{chunk("a")}, [][]float64{{1, 0, 0}})
		assert.Error(t, err)
	})

	t.Run("valid upsert", func(t *testing.T) {
		err := s.Upsert([]domain.Chunk{chunk("a")}, [][]float64{{1, 0}})
		assert.NoError(t, err)
	})
}

func TestStorage_Search(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{chunk("x"), chunk("y"), chunk("z")},
		[][]float64{{1, 0}, {0, 1}, {0.7071, 0.7071}},
	))

	t.Run("nearest first", func(t *testing.T) {
		res, err := s.Search([]float64{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, res, 3)
		assert.Equal(t, "x", res[0].Chunk.ChunkID)
		assert.Equal(t, "z", res[1].Chunk.ChunkID)
		assert.Equal(t, "y", res[2].Chunk.ChunkID)
		for i := 1; i < len(res); i++ {
			assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
		}
	})

	t.Run("topK caps results", func(t *testing.T) {
		res, err := s.Search([]float64{1, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("topK larger than corpus returns all", func(t *testing.T) {
		res, err := s.Search([]float64{1, 0}, 50)
		require.NoError(t, err)
		assert.Len(t, res, 3)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		require.NoError(t, s.Clear())
		res, err := s.Search([]float64{1, 0}, 3)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}
