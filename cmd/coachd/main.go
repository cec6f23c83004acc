package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pennyplan/coach-go/internal/coach"
	"github.com/pennyplan/coach-go/internal/config"
	"github.com/pennyplan/coach-go/internal/db"
	"github.com/pennyplan/coach-go/internal/guard"
	"github.com/pennyplan/coach-go/internal/llm"
	"github.com/pennyplan/coach-go/internal/logger"
	"github.com/pennyplan/coach-go/internal/product"
	"github.com/pennyplan/coach-go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	metaPath := cfg.Product.MetadataPath
	if metaPath == "" {
		metaPath = "product_metadata.json"
	}
	meta, err := product.Load(metaPath)
	if err != nil {
		logger.L.Error("failed to load product metadata", "path", metaPath, "error", err)
		os.Exit(1)
	}

	dbPath := os.Getenv("COACH_DB_PATH")
	if dbPath == "" {
		dbPath = "coach.db"
	}
	database, err := db.Open(dbPath)
	if err != nil {
		logger.L.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	llmClient := llm.NewClient(cfg.LLM)
	responder := coach.NewResponder(llmClient, meta, cfg.LLM.Model)
	guardrails := guard.New(llmClient, meta, cfg.LLM.Model)

	mux := http.NewServeMux()
	server.New(database, responder, guardrails).Register(mux)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting coach service", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
