package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/classify"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/extraction"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/ocr"
	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/report"
)

// IDGenerator generates unique IDs for analyses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs the receipt analysis pipeline: store the image, recognize
// text, extract candidates and the total, then classify locally and/or ask
// the remote generator for a sustainability report. The classifier and
// generator are both optional; the extraction stages always run.
type Service struct {
	db          DB
	storage     Storage
	engine      ocr.Engine
	extractor   *extraction.Extractor
	resolver    *extraction.TotalResolver
	classifier  classify.Classifier
	generator   report.Generator
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time
// source. classifier and generator may be nil to disable those stages.
func NewService(db DB, storage Storage, engine ocr.Engine, extractor *extraction.Extractor, resolver *extraction.TotalResolver, classifier classify.Classifier, generator report.Generator) *Service {
	return &Service{
		db:          db,
		storage:     storage,
		engine:      engine,
		extractor:   extractor,
		resolver:    resolver,
		classifier:  classifier,
		generator:   generator,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, storage Storage, engine ocr.Engine, extractor *extraction.Extractor, resolver *extraction.TotalResolver, classifier classify.Classifier, generator report.Generator, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		storage:     storage,
		engine:      engine,
		extractor:   extractor,
		resolver:    resolver,
		classifier:  classifier,
		generator:   generator,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// AnalyzeReceipt stores the uploaded image, runs OCR and the extraction
// pipeline, and persists the resulting analysis. OCR producing no text is
// not an error: the analysis is saved with empty items and the Not Found
// total, which callers display as-is.
func (s *Service) AnalyzeReceipt(ctx context.Context, filename string, data []byte, contentType string) (*Analysis, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	fullText, lines := s.engine.Recognize(ctx, data, contentType)
	if fullText == "" {
		slog.Warn("OCR produced no text", "filename", filename, "content_type", contentType)
	}

	analysis := &Analysis{
		ID:          id,
		Filename:    savedPath,
		ContentType: contentType,
		RawText:     fullText,
		Total:       s.resolver.Resolve(lines),
		Items:       s.extractor.FromLines(lines),
		CreatedAt:   now,
	}

	if s.classifier != nil && len(analysis.Items) > 0 {
		records, err := s.classifier.Classify(ctx, analysis.Items)
		if err != nil {
			slog.Error("Classification failed", "filename", filename, "error", err)
		} else {
			analysis.Classifications = records
		}
	}

	if s.generator != nil && fullText != "" {
		analysis.Report = s.generateReport(ctx, fullText)
	}

	if err := s.db.SaveAnalysis(analysis); err != nil {
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving analysis to database: %w", err)
	}

	return analysis, nil
}

// generateReport calls the remote generator and recovers a structured report
// from its reply. A failed call degrades to an error-valued report, never to
// a pipeline failure.
func (s *Service) generateReport(ctx context.Context, rawText string) map[string]any {
	text, err := s.generator.GenerateReport(ctx, rawText)
	if err != nil {
		slog.Error("Report generation failed", "error", err)
		return map[string]any{"error": fmt.Sprintf("LLM Call Failed: %s", err)}
	}
	return report.Recover(report.RawReply(text))
}

// GetAnalysis retrieves an analysis by ID
func (s *Service) GetAnalysis(id string) (*Analysis, error) {
	analysis, err := s.db.GetAnalysis(id)
	if err != nil {
		return nil, fmt.Errorf("getting analysis: %w", err)
	}
	return analysis, nil
}

// ListAnalyses returns all analyses
func (s *Service) ListAnalyses() ([]*Analysis, error) {
	analyses, err := s.db.ListAnalyses()
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis and its stored image
func (s *Service) DeleteAnalysis(id string) error {
	analysis, err := s.db.GetAnalysis(id)
	if err != nil {
		return fmt.Errorf("getting analysis for deletion: %w", err)
	}

	if err := s.storage.Delete(analysis.Filename); err != nil {
		slog.Warn("Failed to delete file", "filename", analysis.Filename, "error", err)
	}

	if err := s.db.DeleteAnalysis(id); err != nil {
		return fmt.Errorf("deleting analysis from database: %w", err)
	}
	return nil
}

// GetAnalysisImage retrieves the stored image for an analysis
func (s *Service) GetAnalysisImage(id string) ([]byte, string, error) {
	analysis, err := s.db.GetAnalysis(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting analysis: %w", err)
	}

	data, err := s.storage.Get(analysis.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting analysis image: %w", err)
	}

	return data, analysis.ContentType, nil
}
