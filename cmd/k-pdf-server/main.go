package main

import (
	"context"

	"github.com/kupendrav/K-Pdf-s/internal/config"
	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/server"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		// Fall back to stderr if logger initialization fails
		panic(err)
	}

	log.Info("Starting k-pdf server")

	srv := server.CreateServer(log, cfg)
	err = srv.Run(context.Background(), &mcp.StdioTransport{})
	if err != nil {
		log.Fatal("Server failed: %v", err)
	}
}
