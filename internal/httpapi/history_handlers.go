package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"hirescout-engine/internal/events"
	"hirescout-engine/internal/store"
)

type HistoryHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit")) // 0 on absent/garbage; store applies its default
	lookups, err := store.ListLookups(r.Context(), h.DB, store.ListLookupsOpts{
		Window: q.Get("window"),
		Limit:  limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if lookups == nil {
		lookups = []store.Lookup{}
	}
	writeJSON(w, lookups)
}

func (h HistoryHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/research/history/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid id")
		return
	}

	if err := store.DeleteLookup(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	if h.Hub != nil {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, "lookup_deleted", 1, map[string]any{"id": id}))
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
