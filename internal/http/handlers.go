package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jeopsu/internal/core"
)

// handleHealth performs a basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady reports readiness with dependency state
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{
		"register": map[string]any{
			"receipts": s.service.Count(),
			"version":  s.service.Version(),
			"status":   "ok",
		},
		"insight_cache": map[string]any{
			"entries": s.insightCache.Size(),
			"status":  "ok",
		},
	}
	if s.insighter == nil {
		checks["insighter"] = "not_configured"
	} else {
		checks["insighter"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleReceipts serves the collection: GET lists (optionally filtered by
// type), POST creates.
func (s *Server) handleReceipts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		t := core.ReceiptType(r.URL.Query().Get("type"))
		if t != "" {
			if err := t.Validate(); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
		}
		writeJSON(w, http.StatusOK, s.service.List(t))
	case http.MethodPost:
		draft, ok := decodeDraft(w, r)
		if !ok {
			return
		}
		item, err := s.service.Create(r.Context(), draft)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleReceiptByID serves /receipts/{id} and /receipts/{id}/status.
func (s *Server) handleReceiptByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/receipts/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "missing receipt id")
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodPut:
		draft, ok := decodeDraft(w, r)
		if !ok {
			return
		}
		item, err := s.service.Update(r.Context(), id, draft)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)

	case sub == "" && r.Method == http.MethodDelete:
		if err := s.service.Delete(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case sub == "status" && r.Method == http.MethodPost:
		var body struct {
			Status core.ReceiptStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		item, err := s.service.SetStatus(r.Context(), id, body.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSummary returns the derived monthly/yearly/status aggregates.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.service.Summary())
}

// handleInsight returns the AI analysis for the current collection. The
// result is cached per register version, so repeated requests without a
// mutation in between do not re-invoke the completion service.
func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.insighter == nil {
		writeError(w, http.StatusServiceUnavailable, "insight generation is not configured")
		return
	}

	count := s.service.Count()
	if count == 0 {
		writeError(w, http.StatusConflict, "no receipts to analyze")
		return
	}

	key := fmt.Sprintf("insight:%d", s.service.Version())
	if text, ok := s.insightCache.Get(key); ok {
		writeJSON(w, http.StatusOK, map[string]string{"insight": text})
		return
	}

	ctx := r.Context()
	if s.insightTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.insightTimeout)
		defer cancel()
	}

	text := s.insighter.Generate(ctx, count, s.service.Summary())
	s.insightCache.Set(key, text)
	writeJSON(w, http.StatusOK, map[string]string{"insight": text})
}

// decodeDraft parses and reports errors itself; the bool result tells the
// caller whether to continue.
func decodeDraft(w http.ResponseWriter, r *http.Request) (core.Draft, bool) {
	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return core.Draft{}, false
	}
	return draft, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "receipt not found")
	case errors.Is(err, core.ErrEmptyCustomer),
		errors.Is(err, core.ErrEmptyIssue),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidStatus):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
