package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"hirescout-engine/internal/config"
	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/events"
	"hirescout-engine/internal/fetch"
	"hirescout-engine/internal/httpapi"
	"hirescout-engine/internal/research"
	"hirescout-engine/internal/store"
)

func main() {
	dataDir := os.Getenv("HIRESCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two writers against the same SQLite file
	// corrupt history silently.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, vr.Errors)
	}
	for _, warn := range vr.Warnings {
		log.Printf("[config] warning: %s", warn)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "hirescout.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if n, err := store.CleanupOldLookups(db); err != nil {
		log.Printf("[store] cleanup failed: %v", err)
	} else if n > 0 {
		log.Printf("[store] cleaned up %d old lookups", n)
	}

	hub := events.NewHub()

	// The limiter outlives config reloads so per-host budgets persist.
	limiter := fetch.NewHostLimiter(cfg.Research.HostRatePerSec, cfg.Research.HostBurst)
	fc := fetch.NewClient(limiter)

	runResearch := func(ctx context.Context, url string) (domain.ResearchResult, error) {
		cur := cfgVal.Load().(config.Config)
		eng := research.NewEngine(fc, research.Tuning{
			ProbeTimeout:      cur.ProbeTimeout(),
			PageTimeout:       cur.PageTimeout(),
			APITimeout:        cur.APITimeout(),
			ExtraCareerPaths:  cur.Research.ExtraCareerPaths,
			MaxCandidateLinks: cur.Research.MaxCandidateLinks,
		})
		return eng.Research(ctx, url)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:             db,
		Hub:            hub,
		CfgVal:         &cfgVal,
		UserCfgPath:    userCfgPath,
		LoadCfg:        loadCfg,
		RunResearch:    runResearch,
		ResearchWindow: cfg.RequestTimeout(),
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Metrics,
		httpapi.Cors,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
