package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/events"
	"hirescout-engine/internal/research"
	"hirescout-engine/internal/store"
)

type ResearchHandler struct {
	DB  *sql.DB
	Hub *events.Hub

	// Run executes one research pipeline; injected so tests can stub it and
	// so main can rebuild the engine from a hot-reloaded config.
	Run     func(ctx context.Context, url string) (domain.ResearchResult, error)
	Timeout time.Duration
}

func (h ResearchHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		researchTotal.WithLabelValues("", "invalid_input").Inc()
		WriteError(w, r, http.StatusBadRequest, "bad_request", "request body must be JSON with a \"url\" string")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		researchTotal.WithLabelValues("", "invalid_input").Inc()
		WriteError(w, r, http.StatusBadRequest, "bad_request", "url is required")
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	start := time.Now()
	result, err := h.Run(ctx, req.URL)
	researchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, research.ErrInvalidURL) {
			researchTotal.WithLabelValues("", "invalid_input").Inc()
			WriteError(w, r, http.StatusBadRequest, "invalid_url", "could not parse that as a website URL")
			return
		}
		reqID := RequestIDFrom(r.Context())
		log.Printf("level=error msg=\"research failed\" request_id=%s err=%v", reqID, err)
		researchTotal.WithLabelValues("", "error").Inc()
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "research failed")
		return
	}
	researchTotal.WithLabelValues(result.ATSDetected, "ok").Inc()

	// History and events are best-effort; the caller already has the answer.
	if h.DB != nil {
		if id, err := store.InsertLookup(ctx, h.DB, result); err != nil {
			log.Printf("[research] history insert failed: %v", err)
		} else if h.Hub != nil {
			reqID := RequestIDFrom(r.Context())
			h.Hub.Publish(events.MakeEvent(reqID, "research_completed", 1, map[string]any{
				"id":      id,
				"company": result.CompanyName,
				"ats":     result.ATSDetected,
			}))
		}
	}

	writeJSON(w, result)
}
