package analyzer

import (
	"time"

	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/classify"
)

// Analysis represents one processed receipt: the OCR output, the extraction
// results, and whatever the classifier and the report generator produced.
// Each stage fills its fields once; nothing mutates an Analysis after save.
type Analysis struct {
	ID              string            `json:"id"`
	Filename        string            `json:"filename"`
	ContentType     string            `json:"content_type"`
	RawText         string            `json:"raw_text"`
	Total           string            `json:"total"` // monetary string, or the Not Found sentinel
	Items           []string          `json:"items"`
	Classifications []classify.Record `json:"classifications,omitempty"`
	Report          map[string]any    `json:"report,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}
