// Package server exposes the eligibility engine over a thin JSON API. There
// is deliberately no auth or rate limiting here; callers front it with their
// own middleware.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aundre1/incentedge/internal/engine"
	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/validation"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the evaluation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = constants.EngineVersion
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var input engine.Input
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxRequestSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		h.logger.Warn("rejecting malformed evaluation request",
			zap.String("op", "server.handleEvaluate"),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed request: %v", err))
		return
	}

	if err := validation.ValidateProject(&input.Project); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := validation.ValidatePrograms(input.Programs); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := engine.EvaluateEligibility(h.logger, input)

	for _, warning := range validation.ProgramWarnings(input.Programs) {
		h.logger.Warn("program record warning: "+warning,
			zap.String("op", "server.handleEvaluate"),
		)
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
