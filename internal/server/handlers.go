package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nlitools/almagraph/internal/cache"
	"github.com/nlitools/almagraph/internal/classify"
	"github.com/nlitools/almagraph/internal/ident"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// handleStatus reports the loaded dataset snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ds, err := s.pipeline.Dataset(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "dataset unavailable: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"dataset":  ds.Stats(),
		"warnings": ds.Warnings,
	})
}

// handleLookup resolves a single identifier from the URL path.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/lookup/")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing identifier")
		return
	}

	result, err := s.pipeline.LookupID(r.Context(), raw)
	if err != nil {
		if errors.Is(err, classify.ErrEmptyInput) {
			writeError(w, http.StatusUnprocessableEntity, "no ALMA identifier in %q", raw)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "lookup failed: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCatalog returns the catalog record for one identifier.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/catalog/")
	id, ok := ident.Normalize(raw)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no ALMA identifier in %q", raw)
		return
	}

	ds, err := s.pipeline.Dataset(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "dataset unavailable: %v", err)
		return
	}
	if ds.Catalog == nil {
		writeError(w, http.StatusNotFound, "catalog index not available")
		return
	}
	rec := ds.LookupCatalog(r.Context(), id)
	if rec == nil {
		writeError(w, http.StatusNotFound, "no catalog record for %s", id)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleClassify classifies an uploaded identifier list. The body is the raw
// text of the list; responses for byte-identical uploads are served from the
// cache.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds %d bytes", tooLarge.Limit)
			return
		}
		writeError(w, http.StatusBadRequest, "read body: %v", err)
		return
	}

	var key string
	if s.respCache != nil {
		key = cache.BatchKey(body)
		if cached, ok := s.respCache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	rep, err := s.pipeline.ClassifyBatch(r.Context(), string(body), requestID(r.Context()))
	if err != nil {
		if errors.Is(err, classify.ErrEmptyInput) {
			writeError(w, http.StatusUnprocessableEntity, "no ALMA identifiers in upload")
			return
		}
		writeError(w, http.StatusServiceUnavailable, "classify failed: %v", err)
		return
	}

	payload, err := json.Marshal(rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode report: %v", err)
		return
	}
	if s.respCache != nil {
		_ = s.respCache.Set(key, payload, s.cacheTTL)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
