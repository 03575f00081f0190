package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hirescout-engine/internal/config"
	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/events"
)

type Deps struct {
	DB          *sql.DB
	Hub         *events.Hub
	CfgVal      *atomic.Value
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	RunResearch    func(ctx context.Context, url string) (domain.ResearchResult, error)
	ResearchWindow time.Duration
}

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
	})

	rh := ResearchHandler{DB: d.DB, Hub: d.Hub, Run: d.RunResearch, Timeout: d.ResearchWindow}
	mux.HandleFunc("/research", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Research,
	}))

	hh := HistoryHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/research/history", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.List,
	}))
	mux.HandleFunc("/research/history/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: hh.DeleteByPath, // expects /research/history/{id}
	}))

	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
