package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pulsecx/internal/config"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func ragConfig(docsPath string) config.RAGConfig {
	return config.RAGConfig{
		Enabled:      true,
		DocsPath:     docsPath,
		TopK:         3,
		ChunkSize:    600,
		ChunkOverlap: 120,
		Embedder:     config.EmbedderConfig{Type: "tfidf"},
		VectorStore:  config.VectorStoreConfig{Type: "memory"},
	}
}

func TestBuild_Degraded(t *testing.T) {
	t.Run("disabled by config", func(t *testing.T) {
		cfg := ragConfig(t.TempDir())
		cfg.Enabled = false
		r, digest := Build(cfg, testLogger())
		assert.Empty(t, r.Retrieve("anything", 5))
		assert.Empty(t, digest)
	})

	t.Run("missing docs directory", func(t *testing.T) {
		r, _ := Build(ragConfig(filepath.Join(t.TempDir(), "missing")), testLogger())
		assert.Empty(t, r.Retrieve("refund", 3))
	})

	t.Run("empty corpus", func(t *testing.T) {
		dir := writeDocs(t, map[string]string{"empty.txt": "   "})
		r, _ := Build(ragConfig(dir), testLogger())
		assert.Empty(t, r.Retrieve("refund", 3))
	})

	t.Run("unknown embedder type", func(t *testing.T) {
		cfg := ragConfig(writeDocs(t, map[string]string{"a.txt": "refund policy text."}))
		cfg.Embedder.Type = "nonexistent"
		r, _ := Build(cfg, testLogger())
		assert.Empty(t, r.Retrieve("refund", 3))
	})

	t.Run("openai embedder without credentials", func(t *testing.T) {
		t.Setenv("PULSECX_TEST_MISSING_KEY", "")
		cfg := ragConfig(writeDocs(t, map[string]string{"a.txt": "refund policy text."}))
		cfg.Embedder = config.EmbedderConfig{
			Type:   "openai",
			OpenAI: &config.OpenAIEmbedderConfig{APIKeyEnv: "PULSECX_TEST_MISSING_KEY"},
		}
		r, _ := Build(cfg, testLogger())
		assert.Empty(t, r.Retrieve("refund", 3))
	})

	t.Run("degraded retriever ignores topK", func(t *testing.T) {
		r := Disabled()
		assert.Empty(t, r.Retrieve("", 0))
		assert.Empty(t, r.Retrieve("query", 100))
	})
}

func TestBuild_Queryable(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"refunds.txt":  "Refunds are issued within seven days of purchase. Refund requests need the original receipt.",
		"coupons.txt":  "Coupons cannot be combined with other offers. Expired coupons are not honored.",
		"sub/misc.txt": "Store hours vary by city and season.",
		"ignored.md":   "Markdown files are not part of the knowledge base.",
	})
	r, digest := Build(ragConfig(dir), testLogger())

	t.Run("digest produced", func(t *testing.T) {
		assert.NotEmpty(t, digest)
	})

	t.Run("relevant snippet ranked first", func(t *testing.T) {
		snippets := r.Retrieve("how do refunds work", 2)
		require.NotEmpty(t, snippets)
		assert.Contains(t, snippets[0], "Refunds")
	})

	t.Run("at most topK snippets", func(t *testing.T) {
		snippets := r.Retrieve("coupons", 1)
		assert.Len(t, snippets, 1)
	})

	t.Run("topK larger than corpus returns all chunks", func(t *testing.T) {
		snippets := r.Retrieve("store", 50)
		assert.LessOrEqual(t, len(snippets), 3)
		assert.NotEmpty(t, snippets)
	})
}
