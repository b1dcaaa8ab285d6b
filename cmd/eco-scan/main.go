package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/analyzer"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/classify"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/extraction"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/ocr"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/report"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("eco-scan")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "eco-scan.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./receipts", "Storage directory path")
		tesseractBin  = fs.StringLong("tesseract", "tesseract", "Path to the tesseract binary")
		maxLines      = fs.IntLong("max-lines", extraction.DefaultMaxLines, "Maximum candidate item lines per receipt")
		classifierURL = fs.StringLong("classifier-url", "", "Item classifier inference server URL (empty disables local classification)")
		threshold     = fs.Float64Long("classifier-threshold", classify.DefaultThreshold, "Confidence below which items are labeled 'other'")
		generatorType = fs.StringLong("generator", "deepseek", "Report generator: 'deepseek', 'gemini' or 'none'")
		hfToken       = fs.StringLong("hf-token", "", "Hugging Face router token (or set ECO_SCAN_HF_TOKEN)")
		hfBaseURL     = fs.StringLong("hf-base-url", "https://router.huggingface.co/v1", "OpenAI-compatible completions base URL")
		deepseekModel = fs.StringLong("deepseek-model", "deepseek-ai/DeepSeek-V3", "DeepSeek model name")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("ECO_SCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	slog.Info("Initializing database...")
	db, err := analyzer.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Initializing storage...")
	store, err := analyzer.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	normalizer := extraction.NewNormalizer()
	extractor := extraction.NewExtractor(normalizer, extraction.NewGate(), *maxLines)
	resolver := extraction.NewTotalResolver()
	engine := ocr.NewTesseract(*tesseractBin)

	var classifier classify.Classifier
	if *classifierURL != "" {
		slog.Info("Initializing item classifier...", "url", *classifierURL, "threshold", *threshold)
		classifier, err = classify.NewHTTPClassifier(*classifierURL, *threshold, normalizer)
		if err != nil {
			slog.Error("Failed to initialize classifier", "error", err)
			os.Exit(1)
		}
	}

	var generator report.Generator
	switch *generatorType {
	case "deepseek":
		token := *hfToken
		if token == "" {
			token = os.Getenv("HF_TOKEN")
		}
		if token == "" {
			slog.Error("Hugging Face token is required. Set --hf-token flag or HF_TOKEN environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing DeepSeek generator...", "model", *deepseekModel)
		generator, err = report.NewDeepSeek(token, *hfBaseURL, *deepseekModel)
		if err != nil {
			slog.Error("Failed to initialize DeepSeek", "error", err)
			os.Exit(1)
		}
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini generator...", "model", *geminiModel)
		generator, err = report.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "none":
		slog.Info("Report generation disabled")
	default:
		slog.Error("Invalid generator type", "type", *generatorType, "valid", "deepseek, gemini or none")
		os.Exit(1)
	}
	if generator != nil {
		defer generator.Close()
	}

	service := analyzer.NewService(db, store, engine, extractor, resolver, classifier, generator)

	basicAuth := analyzer.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := analyzer.NewServer(service, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
