package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pulsecx/internal/agent"
	"pulsecx/internal/config"
	"pulsecx/internal/knowledge"
	"pulsecx/internal/llm"
	"pulsecx/internal/store"
	"pulsecx/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath  string
		userID   string
		lat, lon float64
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.StringVar(&userID, "user", "", "Customer ID to chat as")
	flag.Float64Var(&lat, "lat", 0, "Current latitude")
	flag.Float64Var(&lon, "lon", 0, "Current longitude")
	flag.Parse()
	if userID == "" {
		log.Fatal("usage: pulsecx-chat --user=cust_00001 --lat=12.97 --lon=77.59 [--config=config.yaml]")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The TUI owns the terminal, so keep logs out of the way.
	zlog := zap.NewNop().Sugar()

	data, err := store.Load(cfg.Data)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	retriever, digest := knowledge.Build(cfg.RAG, zlog)
	dispatcher := llm.NewDispatcher(cfg.LLM, zlog)
	a := agent.New(data, retriever, dispatcher, cfg.RAG.TopK, zlog)

	model := tui.New(a, userID, lat, lon, digest)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("chat terminated: %v", err)
	}
}
