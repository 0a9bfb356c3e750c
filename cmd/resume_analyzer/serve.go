package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	servePort       int
	serveSkillsPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /analyze, GET /skills and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080 or PORT env var)")
	serveCmd.Flags().StringVar(&serveSkillsPath, "skills", "", "Path to skills dictionary (JSON array or YAML list)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveSkillsPath != "" {
		cfg.SkillsPath = serveSkillsPath
	}

	engine, cleanup, err := buildEngine(context.Background(), cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	if !engine.SuggestionsEnabled() {
		log.Printf("Suggestions disabled: no API key for provider %s", cfg.Provider)
	}

	srv, err := server.New(server.Config{
		Port:   cfg.Port,
		Engine: engine,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
