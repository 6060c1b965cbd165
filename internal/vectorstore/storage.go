package vectorstore

import "pulsecx/internal/domain"

// Storage persists chunk vectors and supports similarity search. Search
// returns results in non-increasing score order (nearest first).
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}
