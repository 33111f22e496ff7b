package main

// Run the analysis pipeline against a local document without the server:
//   go run ./cmd/prompttest -file ./testdata/proposal.pdf

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"proposal-analyzer/internal/analyses"
	"proposal-analyzer/internal/extract"
	"proposal-analyzer/internal/llm"
	anthropicllm "proposal-analyzer/internal/llm/anthropic"
	openaillm "proposal-analyzer/internal/llm/openai"
	"proposal-analyzer/internal/shared/config"
)

func main() {
	cfg := config.Load()

	filePath := flag.String("file", "", "Path to proposal document (pdf, docx or txt)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	maxLength := flag.Int("max-length", cfg.MaxContentLength, "Chunking threshold in characters")
	outPath := flag.String("out", "", "Path to write merged JSON output (optional)")
	flag.Parse()

	if strings.TrimSpace(*filePath) == "" {
		exitErr("file path is required")
	}
	fileName := filepath.Base(*filePath)
	if !extract.SupportedExtension(fileName) {
		exitErr(fmt.Sprintf("unsupported file type: %s", fileName))
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		exitErr(fmt.Sprintf("read file: %v", err))
	}

	ctx := context.Background()
	content, err := extract.ExtractTextFromBytes(ctx, data, "", fileName)
	if err != nil {
		exitErr(fmt.Sprintf("extract text: %v", err))
	}

	client, err := buildClient(*provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	chunks := analyses.ChunkContent(content, *maxLength)
	if len(chunks) == 0 {
		exitErr("document is empty after extraction")
	}
	fmt.Fprintf(os.Stderr, "dispatching %d chunk(s)\n", len(chunks))

	dispatcher := analyses.NewDispatcher(client, cfg.ConcurrentCalls)
	results, err := dispatcher.Dispatch(ctx, chunks)
	if err != nil {
		exitErr(fmt.Sprintf("dispatch: %v", err))
	}

	merged, err := analyses.Merge(results)
	if err != nil {
		exitErr(fmt.Sprintf("merge: %v", err))
	}

	pretty, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, append(pretty, '\n'), 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	fmt.Println(string(pretty))
}

func buildClient(provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return openaillm.NewClient(os.Getenv("OPENAI_API_KEY"), model)
	default:
		return anthropicllm.NewClient(os.Getenv("ANTHROPIC_API_KEY"), model)
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
