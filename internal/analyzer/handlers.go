package analyzer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// handleListAnalyses returns all stored analyses
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := s.service.ListAnalyses()
	if err != nil {
		slog.Error("Error listing analyses", "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(analyses); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUploadReceipt accepts a multipart receipt image and runs the
// analysis pipeline on it
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	// 50MB cap to handle high-resolution phone photos
	if err := r.ParseMultipartForm(int64(50 << 20)); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading uploaded file", "error", err)
		writeError(w, "Error reading file", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	analysis, err := s.service.AnalyzeReceipt(r.Context(), header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error analyzing receipt", "filename", header.Filename, "error", err)
		writeError(w, "Error analyzing receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(analysis); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetAnalysis returns a single analysis by ID
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.service.GetAnalysis(r.PathValue("id"))
	if err != nil {
		writeError(w, "Analysis not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(analysis); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetAnalysisImage serves the stored receipt image
func (s *Server) handleGetAnalysisImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetAnalysisImage(r.PathValue("id"))
	if err != nil {
		writeError(w, "Image not found", http.StatusNotFound)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteAnalysis removes an analysis and its image
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteAnalysis(r.PathValue("id")); err != nil {
		writeError(w, "Analysis not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
