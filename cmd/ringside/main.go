//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package main runs the ringside sales assistant: a retrieval-augmented
// question answerer that scores its own answers for faithfulness and
// relevance.
//
// Configuration comes from an optional YAML file and the environment:
//   - OPENAI_API_KEY (or GITHUB_TOKEN): backend credential, required
//   - OPENAI_BASE_URL: (optional) generation backend endpoint
//   - OPENAI_EMBEDDINGS_URL: (optional) embeddings backend endpoint
//
// Example usage:
//
//	export OPENAI_API_KEY=sk-xxxx
//	go run ./cmd/ringside -mode chat
//	go run ./cmd/ringside -mode eval
//	go run ./cmd/ringside -mode serve -addr :8080
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ringside-ai/ringside/assistant"
	"github.com/ringside-ai/ringside/config"
	"github.com/ringside-ai/ringside/evaluation"
	"github.com/ringside-ai/ringside/evaluation/judge"
	"github.com/ringside-ai/ringside/knowledge"
	embedderopenai "github.com/ringside-ai/ringside/knowledge/embedder/openai"
	"github.com/ringside-ai/ringside/knowledge/source"
	"github.com/ringside-ai/ringside/knowledge/source/dir"
	"github.com/ringside-ai/ringside/knowledge/vectorstore/inmemory"
	"github.com/ringside-ai/ringside/log"
	modelopenai "github.com/ringside-ai/ringside/model/openai"
	"github.com/ringside-ai/ringside/server"
)

var (
	mode        = flag.String("mode", "chat", "Run mode: chat|eval|serve")
	configPath  = flag.String("config", "", "Path to YAML config file (optional)")
	corpusDir   = flag.String("corpus", "", "Corpus directory (overrides config)")
	datasetPath = flag.String("dataset", "", "JSON dataset file for eval mode (optional)")
	addr        = flag.String("addr", "", "Listen address for serve mode (overrides config)")
	logLevel    = flag.String("log-level", log.LevelInfo, "Log level: debug|info|warn|error|fatal")
)

func main() {
	flag.Parse()
	log.SetLevel(*logLevel)
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *corpusDir != "" {
		cfg.CorpusDir = *corpusDir
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	runner, err := buildRunner(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	switch *mode {
	case "chat":
		runChat(ctx, runner)
	case "eval":
		runEval(ctx, runner)
	case "serve":
		if err := server.New(runner).Start(cfg.ListenAddr); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want chat, eval or serve)\n", *mode)
		os.Exit(2)
	}
}

// buildRunner wires the full pipeline: embedder, vector store, corpus
// source, knowledge index, generator, judge and evaluation runner. The
// knowledge index is built here, once; a changed corpus requires a restart.
func buildRunner(ctx context.Context, cfg *config.Config) (*evaluation.Runner, error) {
	embedder := embedderopenai.New(
		embedderopenai.WithModel(cfg.EmbeddingModel),
		embedderopenai.WithAPIKey(cfg.APIKey),
		embedderopenai.WithBaseURL(cfg.EmbeddingsBaseURL),
	)

	kb := knowledge.New(
		knowledge.WithEmbedder(embedder),
		knowledge.WithVectorStore(inmemory.New()),
		knowledge.WithSources([]source.Source{dir.New(cfg.CorpusDir)}),
		knowledge.WithDefaultSearchLimit(cfg.TopK),
	)

	log.Infof("building knowledge index from %s ...", cfg.CorpusDir)
	if err := kb.Load(ctx); err != nil {
		return nil, fmt.Errorf("build knowledge index: %w", err)
	}

	generator := modelopenai.New(
		modelopenai.WithModel(cfg.ModelName),
		modelopenai.WithTemperature(cfg.Temperature),
		modelopenai.WithAPIKey(cfg.APIKey),
		modelopenai.WithBaseURL(cfg.BaseURL),
	)

	pipeline, err := assistant.New(kb, generator, assistant.WithTopK(cfg.TopK))
	if err != nil {
		return nil, err
	}
	return evaluation.NewRunner(pipeline, judge.New(generator), evaluation.NewSessionLog())
}

// runChat runs the interactive single-query loop: every answer is scored
// and the scores are shown next to it. The "/stats" command prints the
// session summary, "/exit" quits.
func runChat(ctx context.Context, runner *evaluation.Runner) {
	fmt.Println("Ringside sales assistant. Ask about products, sizing or shipping.")
	fmt.Println("Commands: /stats for session metrics, /exit to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/exit":
			return
		case line == "/stats":
			printSessionStats(runner.SessionLog())
			continue
		}

		record := runner.Step(ctx, line)
		fmt.Printf("\n%s\n", record.Answer)
		fmt.Printf("  faithfulness %s   relevance %s\n\n",
			formatScore(record.Faithfulness, record.FaithfulnessFallback, record.Failed),
			formatScore(record.Relevance, record.RelevanceFallback, record.Failed))
	}
}

// runEval runs the batch evaluation and prints the result table plus the
// aggregate means.
func runEval(ctx context.Context, runner *evaluation.Runner) {
	items := evaluation.DefaultDataset()
	if *datasetPath != "" {
		loaded, err := evaluation.LoadDataset(*datasetPath)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		items = loaded
	}

	report := runner.RunBatch(ctx, items)
	if !report.HasData() {
		fmt.Println("no data: the evaluation dataset is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "QUERY\tEXPECTED\tANSWER\tFAITH\tREL")
	for _, res := range report.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\n",
			truncate(res.Query, 40), truncate(res.GroundTruth, 40), truncate(res.Answer, 40),
			res.Faithfulness, res.Relevance)
	}
	w.Flush()

	fmt.Printf("\nevaluated %d items\n", report.Evaluated)
	fmt.Printf("mean faithfulness: %.1f/10\n", report.MeanFaithfulness)
	fmt.Printf("mean relevance:    %.1f/10\n", report.MeanRelevance)
}

// printSessionStats prints the session summary with score distributions.
func printSessionStats(sessionLog *evaluation.SessionLog) {
	summary := sessionLog.Summary()
	if summary.Count == 0 {
		fmt.Println("no interactions yet in this session")
		return
	}
	fmt.Printf("interactions: %d\n", summary.Count)
	if summary.Failed > 0 {
		fmt.Printf("failed (no answer): %d\n", summary.Failed)
	}
	fmt.Printf("mean faithfulness: %.1f/10\n", summary.MeanFaithfulness)
	fmt.Printf("mean relevance:    %.1f/10\n", summary.MeanRelevance)
	fmt.Println("faithfulness distribution:")
	printHistogram(summary.FaithfulnessHist)
	fmt.Println("relevance distribution:")
	printHistogram(summary.RelevanceHist)
}

func printHistogram(hist [10]int) {
	for i, count := range hist {
		if count == 0 {
			continue
		}
		fmt.Printf("  %2d: %s (%d)\n", i+1, strings.Repeat("#", count), count)
	}
}

// formatScore renders a score with its degradation marker.
func formatScore(score float64, fallback, failed bool) string {
	switch {
	case failed:
		return "0.0/10 (no answer)"
	case fallback:
		return fmt.Sprintf("%.1f/10 (judge unavailable)", score)
	default:
		return fmt.Sprintf("%.1f/10", score)
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
