package knowledge

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"pulsecx/internal/chunker"
	"pulsecx/internal/config"
	"pulsecx/internal/domain"
	"pulsecx/internal/embedding"
	openaiemb "pulsecx/internal/embedding/openai"
	"pulsecx/internal/embedding/tfidf"
	"pulsecx/internal/summarizer"
	"pulsecx/internal/vectorstore"
	"pulsecx/internal/vectorstore/memory"
	"pulsecx/internal/vectorstore/qdrant"
)

// Retriever serves similarity-ranked knowledge snippets for a query.
// Implementations are read-only and safe for concurrent callers once built.
type Retriever interface {
	Retrieve(query string, topK int) []string
}

// disabled is the permanently-empty retriever used when the knowledge
// subsystem is switched off or could not be built.
type disabled struct{}

func (disabled) Retrieve(string, int) []string { return nil }

// Disabled returns a retriever that serves no snippets.
func Disabled() Retriever { return disabled{} }

// Index is a queryable retriever over an embedded document corpus.
type Index struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	log      *zap.SugaredLogger
}

// Retrieve embeds the query and returns the topK nearest chunk texts,
// nearest first. Lookup failures yield no snippets rather than an error.
func (ix *Index) Retrieve(query string, topK int) []string {
	vec, err := ix.embedder.Embed(query)
	if err != nil {
		ix.log.Warnw("query embedding failed", "error", err)
		return nil
	}
	results, err := ix.store.Search(vec, topK)
	if err != nil {
		ix.log.Warnw("knowledge search failed", "error", err)
		return nil
	}
	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, r.Chunk.Text)
	}
	return snippets
}

// Build assembles the knowledge retriever from config: it loads documents,
// chunks them, embeds every chunk, and populates the vector store. Any
// missing capability or an empty corpus degrades to the disabled retriever;
// Build never fails the caller. The returned digest is a short summary of
// the ingested corpus, empty when degraded.
//
// Build runs once at startup and is not safe to call concurrently with
// itself; the returned retriever is safe for concurrent readers.
func Build(cfg config.RAGConfig, log *zap.SugaredLogger) (Retriever, string) {
	if !cfg.Enabled {
		log.Info("knowledge retrieval disabled by config")
		return Disabled(), ""
	}

	emb, err := newEmbedder(cfg.Embedder)
	if err != nil {
		log.Warnw("embedding capability unavailable, knowledge retrieval degraded", "error", err)
		return Disabled(), ""
	}
	storage, err := newStorage(cfg.VectorStore)
	if err != nil {
		log.Warnw("vector store unavailable, knowledge retrieval degraded", "error", err)
		return Disabled(), ""
	}

	docs := loadDocuments(cfg.DocsPath, log)
	ch := chunker.NewWindowChunker(cfg.ChunkSize, cfg.ChunkOverlap)

	var chunks []domain.Chunk
	var corpus strings.Builder
	for _, d := range docs {
		dc, err := ch.Chunk(d)
		if err != nil {
			log.Warnw("chunking failed", "path", d.Path, "error", err)
			continue
		}
		chunks = append(chunks, dc...)
		corpus.WriteString("\n")
		corpus.WriteString(d.Content)
	}
	if len(chunks) == 0 {
		log.Warnw("no knowledge chunks built, retrieval degraded", "docs_path", cfg.DocsPath)
		return Disabled(), ""
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	if err := emb.Prepare(texts); err != nil {
		log.Warnw("embedder preparation failed, knowledge retrieval degraded", "error", err)
		return Disabled(), ""
	}

	start := time.Now()
	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vec, err := emb.Embed(chunks[i].Text)
		if err != nil {
			log.Warnw("chunk embedding failed, knowledge retrieval degraded", "chunk", chunks[i].ChunkID, "error", err)
			return Disabled(), ""
		}
		vectors[i] = vec
	}
	if err := storage.Init(len(vectors[0])); err != nil {
		log.Warnw("vector store init failed, knowledge retrieval degraded", "error", err)
		return Disabled(), ""
	}
	if err := storage.Upsert(chunks, vectors); err != nil {
		log.Warnw("vector store upsert failed, knowledge retrieval degraded", "error", err)
		return Disabled(), ""
	}

	digest := corpusDigest(corpus.String())
	log.Infow("knowledge index built",
		"documents", len(docs),
		"chunks", len(chunks),
		"dimension", len(vectors[0]),
		"embedder", emb.Name(),
		"elapsed", time.Since(start))
	return &Index{embedder: emb, store: storage, log: log}, digest
}

func newEmbedder(cfg config.EmbedderConfig) (embedding.Embedder, error) {
	switch cfg.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		oc := cfg.OpenAI
		if oc == nil {
			oc = &config.OpenAIEmbedderConfig{}
		}
		return openaiemb.NewClient(openaiemb.Config{
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Type)
	}
}

func newStorage(cfg config.VectorStoreConfig) (vectorstore.Storage, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.NewStorage(), nil
	case "qdrant":
		if cfg.Qdrant == nil {
			return nil, errors.New("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.Qdrant.URL,
			APIKey:     cfg.Qdrant.APIKey,
			Collection: cfg.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.Type)
	}
}

// loadDocuments reads .txt and .pdf files under root recursively. Unreadable
// files are skipped with a warning.
func loadDocuments(root string, log *zap.SugaredLogger) []domain.Document {
	var docs []domain.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warnw("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		var content string
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt":
			data, err := readFile(path)
			if err != nil {
				log.Warnw("failed to read document", "path", path, "error", err)
				return nil
			}
			content = data
		case ".pdf":
			data, err := extractPDF(path)
			if err != nil {
				log.Warnw("failed to read PDF", "path", path, "error", err)
				return nil
			}
			content = data
		default:
			return nil
		}
		docs = append(docs, domain.Document{ID: hashString(path), Path: path, Content: content})
		return nil
	})
	if err != nil {
		log.Warnw("document walk failed", "docs_path", root, "error", err)
	}
	return docs
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func corpusDigest(text string) string {
	digest, err := summarizer.NewFrequencySummarizer().Summarize(text, 3)
	if err != nil {
		return ""
	}
	return digest
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
