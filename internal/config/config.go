package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DataConfig points at the four CSV datasets loaded at startup.
type DataConfig struct {
	Customers string `yaml:"customers"`
	Orders    string `yaml:"orders"`
	Stores    string `yaml:"stores"`
	Coupons   string `yaml:"coupons"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI embedder.
type OpenAIEmbedderConfig struct {
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// RAGConfig configures the optional knowledge retriever.
type RAGConfig struct {
	Enabled      bool              `yaml:"enabled"`
	DocsPath     string            `yaml:"docs_path"`
	TopK         int               `yaml:"top_k"`
	ChunkSize    int               `yaml:"chunk_size"`
	ChunkOverlap int               `yaml:"chunk_overlap"`
	Embedder     EmbedderConfig    `yaml:"embedder"`
	VectorStore  VectorStoreConfig `yaml:"vector_store"`
}

// LLMConfig selects the answer-generation backend.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data   DataConfig   `yaml:"data"`
	RAG    RAGConfig    `yaml:"rag"`
	LLM    LLMConfig    `yaml:"llm"`
	Server ServerConfig `yaml:"server"`
}

// Load reads a config from the given path. A missing or unparsable file is an
// error; the caller treats it as fatal at startup.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 3
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 600
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 120
	}
	if cfg.RAG.Embedder.Type == "" {
		cfg.RAG.Embedder.Type = "tfidf"
	}
	if cfg.RAG.Embedder.Type == "openai" && cfg.RAG.Embedder.OpenAI != nil {
		if cfg.RAG.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.RAG.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.RAG.Embedder.OpenAI.Model == "" {
			cfg.RAG.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.RAG.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.RAG.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.RAG.VectorStore.Type == "" {
		cfg.RAG.VectorStore.Type = "memory"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "template"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 400
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "dev"
	}
}
