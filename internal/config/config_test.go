package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  customers: data/customers.csv
  stores: data/stores.csv
  orders: data/orders.csv
  coupons: data/coupons.csv
rag:
  enabled: true
  docs_path: docs/
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.Equal(t, 600, cfg.RAG.ChunkSize)
	assert.Equal(t, 120, cfg.RAG.ChunkOverlap)
	assert.Equal(t, "tfidf", cfg.RAG.Embedder.Type)
	assert.Equal(t, "memory", cfg.RAG.VectorStore.Type)
	assert.Equal(t, "template", cfg.LLM.Provider)
	assert.Equal(t, 400, cfg.LLM.MaxTokens)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "dev", cfg.Server.Mode)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rag:
  top_k: 7
  embedder:
    type: openai
    openai:
      model: text-embedding-3-large
llm:
  provider: openai
  max_tokens: 128
server:
  addr: ":9090"
  mode: prod
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.RAG.TopK)
	assert.Equal(t, "openai", cfg.RAG.Embedder.Type)
	require.NotNil(t, cfg.RAG.Embedder.OpenAI)
	assert.Equal(t, "text-embedding-3-large", cfg.RAG.Embedder.OpenAI.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.RAG.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, 30, cfg.RAG.Embedder.OpenAI.TimeoutSecs)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 128, cfg.LLM.MaxTokens)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "prod", cfg.Server.Mode)
}
