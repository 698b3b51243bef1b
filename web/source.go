package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/lumen-language/Lumen-Kit/errors"
	"github.com/lumen-language/Lumen-Kit/output"
)

// maxSourceSize limits PUT /api/source request bodies.
const maxSourceSize = 10 << 20

type SourceResponse struct {
	Filepath    string             `json:"filepath"`
	Source      string             `json:"source"`
	Diagnostics []errors.ErrorJSON `json:"diagnostics"`
}

type TokensResponse struct {
	Filepath string          `json:"filepath"`
	Tokens   []output.Record `json:"tokens"`
}

type SaveSourceRequest struct {
	Source string `json:"source"`
}

func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := s.buildSourceResponse()
	s.mu.RUnlock()

	writeJSONResponse(w, resp)
}

// buildSourceResponse must be called with the mutex held.
func (s *Server) buildSourceResponse() SourceResponse {
	diagnostics := errors.NewJSONFormatter().FormatAllToSlice(s.diagnostics)
	if diagnostics == nil {
		diagnostics = []errors.ErrorJSON{}
	}
	return SourceResponse{
		Filepath:    s.file,
		Source:      string(s.source),
		Diagnostics: diagnostics,
	}
}

func (s *Server) handleGetTokens(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	records, err := output.Records(s.source, s.tokens)
	s.mu.RUnlock()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to convert tokens: %v", err), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []output.Record{}
	}

	writeJSONResponse(w, TokensResponse{Filepath: s.file, Tokens: records})
}

// handlePutSource replaces the file contents and notifies connected pages.
func (s *Server) handlePutSource(w http.ResponseWriter, r *http.Request) {
	var req SaveSourceRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSourceSize)).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := os.WriteFile(s.file, []byte(req.Source), 0644); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write file: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.update(r.Context(), []byte(req.Source)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to reload source: %v", err), http.StatusInternalServerError)
		return
	}
	s.events.publish("reload")

	s.mu.RLock()
	resp := s.buildSourceResponse()
	s.mu.RUnlock()

	writeJSONResponse(w, resp)
}

func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
