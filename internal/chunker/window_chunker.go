package chunker

import (
	"strconv"
	"strings"

	"pulsecx/internal/domain"
)

// WindowChunker splits text into fixed-size overlapping character windows.
type WindowChunker struct {
	size    int
	overlap int
}

func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = 600
	}
	if overlap < 0 || overlap >= size {
		overlap = 120
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Chunk windows the document content with a stride of size-overlap.
// Size and overlap count characters, not bytes. Whitespace-only windows
// are dropped.
func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	content := []rune(document.Content)
	length := len(content)
	if length == 0 {
		return nil, nil
	}
	var chunks []domain.Chunk
	idx := 0
	for start := 0; start < length; start += c.size - c.overlap {
		end := start + c.size
		if end > length {
			end = length
		}
		text := strings.TrimSpace(string(content[start:end]))
		if text != "" {
			chunks = append(chunks, domain.Chunk{
				DocumentID: document.ID,
				ChunkID:    document.ID + ":" + strconv.Itoa(idx),
				Text:       text,
				Index:      idx,
			})
			idx++
		}
		if end == length {
			break
		}
	}
	return chunks, nil
}
