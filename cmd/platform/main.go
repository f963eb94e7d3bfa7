package main

import (
	"log/slog"
	"os"

	"github.com/HairlessVillager/llama-index/internal/platform/devserver"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	s := devserver.NewServer()
	if err := s.Start(port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
