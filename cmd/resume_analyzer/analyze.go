package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume document and print its score",
	Long: `Extracts text from a resume (pdf, docx, txt or md), scores it across five categories and requests improvement suggestions.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath    string
	analyzeInput         string
	analyzeJobTitle      string
	analyzeSkillsPath    string
	analyzeNoSuggestions bool
	analyzeTimeout       string
	analyzeJSON          bool
	analyzeOut           string
	analyzeValidate      bool
	analyzeVerbose       bool
)

func init() {
	// Config file flag (processed first)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to resume document (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobTitle, "job-title", "j", "", "Target job title (optional)")
	analyzeCmd.Flags().StringVar(&analyzeSkillsPath, "skills", "", "Path to skills dictionary (JSON array or YAML list)")
	analyzeCmd.Flags().BoolVar(&analyzeNoSuggestions, "no-suggestions", false, "Skip the LLM suggestion request")
	analyzeCmd.Flags().StringVar(&analyzeTimeout, "timeout", "", "Suggestion timeout, e.g. 20s")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the JSON result to this file")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "Validate the JSON result against the output schema")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzeOptions carries the resolved inputs of one analyze invocation
type analyzeOptions struct {
	Input    string
	JobTitle string
	OutPath  string
	JSON     bool
	Validate bool
	Config   config.Config
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	// Step 1: CLI flags override config file values
	if analyzeSkillsPath != "" {
		cfg.SkillsPath = analyzeSkillsPath
	}
	if analyzeTimeout != "" {
		cfg.SuggestionTimeout = analyzeTimeout
	}
	if analyzeNoSuggestions {
		cfg.DisableSuggestions = true
	}
	if analyzeVerbose {
		cfg.Verbose = true
	}

	// Step 2: Run
	return analyzeFile(cmd.Context(), analyzeOptions{
		Input:    analyzeInput,
		JobTitle: analyzeJobTitle,
		OutPath:  analyzeOut,
		JSON:     analyzeJSON,
		Validate: analyzeValidate,
		Config:   cfg,
	}, cmd.OutOrStdout())
}

// analyzeFile ingests, analyzes and reports one resume document
func analyzeFile(ctx context.Context, opts analyzeOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	printer := observability.NewPrinter(out)

	var onProgress analysis.ProgressCallback
	if opts.Config.Verbose {
		onProgress = func(event analysis.ProgressEvent) {
			fmt.Fprintf(out, "[VERBOSE] %s: %s\n", event.Step, event.Message)
		}
	}

	engine, cleanup, err := buildEngine(ctx, opts.Config, onProgress)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.Config.Verbose && !engine.SuggestionsEnabled() {
		fmt.Fprintf(out, "[VERBOSE] Suggestions disabled (no API key or --no-suggestions)\n")
	}

	text, meta, err := ingestion.IngestFromFile(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", opts.Input, err)
	}

	result, err := engine.Analyze(ctx, types.AnalyzeRequest{
		DocumentText: text,
		JobTitle:     opts.JobTitle,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var data []byte
	if opts.JSON || opts.OutPath != "" || opts.Validate {
		data, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
	}

	if opts.Validate {
		if err := schemas.ValidateAnalysisResult(string(data)); err != nil {
			return fmt.Errorf("result failed schema validation: %w", err)
		}
	}

	if opts.OutPath != "" {
		if err := writeResult(opts.OutPath, data); err != nil {
			return err
		}
	}

	if opts.JSON {
		fmt.Fprintln(out, string(data))
		return nil
	}

	if opts.Config.Verbose {
		printer.PrintDocument(meta, result.WordCount)
	}
	printer.PrintAnalysis(result)
	if opts.OutPath != "" {
		fmt.Fprintf(out, "Result: %s\n", opts.OutPath)
	}
	return nil
}

func writeResult(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
