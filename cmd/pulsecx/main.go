package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"pulsecx/internal/agent"
	"pulsecx/internal/config"
	"pulsecx/internal/knowledge"
	"pulsecx/internal/llm"
	"pulsecx/internal/logger"
	"pulsecx/internal/server"
	"pulsecx/internal/store"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	data, err := store.Load(cfg.Data)
	if err != nil {
		zlog.Fatalw("failed to load dataset", "err", err)
	}
	customers, stores, orders, coupons := data.Counts()
	zlog.Infow("dataset loaded",
		"customers", customers, "stores", stores,
		"orders", orders, "coupons", coupons)

	retriever, digest := knowledge.Build(cfg.RAG, zlog)
	if digest != "" {
		zlog.Infow("knowledge base ready", "digest", digest)
	}

	dispatcher := llm.NewDispatcher(cfg.LLM, zlog)
	a := agent.New(data, retriever, dispatcher, cfg.RAG.TopK, zlog)

	router := server.NewRouter(server.NewChatHandler(a, zlog), cfg.Server.Mode)
	zlog.Infow("listening", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		zlog.Fatalw("server stopped", "err", err)
	}
}
