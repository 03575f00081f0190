package research

import (
	"context"
	"log"
	"time"

	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/fetch"
)

// Tuning carries the per-call-site timeouts and locator knobs. Individual
// timeouts must sum below the hosting boundary's outer deadline given the
// longest sequential chain.
type Tuning struct {
	ProbeTimeout time.Duration
	PageTimeout  time.Duration
	APITimeout   time.Duration

	ExtraCareerPaths  []string
	MaxCandidateLinks int
}

func (t *Tuning) fillDefaults() {
	if t.ProbeTimeout <= 0 {
		t.ProbeTimeout = 3 * time.Second
	}
	if t.PageTimeout <= 0 {
		t.PageTimeout = 5 * time.Second
	}
	if t.APITimeout <= 0 {
		t.APITimeout = 4 * time.Second
	}
	if t.MaxCandidateLinks <= 0 {
		t.MaxCandidateLinks = 3
	}
}

// Engine runs one research request end to end. Stateless per request; safe
// under unbounded concurrency (the fingerprint table is immutable and the
// fetch client is shared read-only).
type Engine struct {
	locator    *Locator
	identifier *Identifier
	counter    *Counter
}

func NewEngine(fc *fetch.Client, t Tuning) *Engine {
	t.fillDefaults()
	return &Engine{
		locator:    NewLocator(fc, t.ProbeTimeout, t.PageTimeout, t.ExtraCareerPaths, t.MaxCandidateLinks),
		identifier: NewIdentifier(fc, t.PageTimeout),
		counter:    NewCounter(fc, t.APITimeout, t.PageTimeout),
	}
}

// Research is the one inbound operation. Only unusable input returns an
// error (ErrInvalidURL); failing to find a careers page, an ATS, or a count
// is a normal outcome expressed in the result itself.
func (e *Engine) Research(ctx context.Context, rawURL string) (domain.ResearchResult, error) {
	site, err := NormalizeSite(rawURL)
	if err != nil {
		return domain.ResearchResult{}, err
	}

	res := domain.ResearchResult{
		CompanyName:       site.CompanyName,
		Website:           site.BaseURL,
		ATSDetected:       domain.UnknownATS,
		LinkedInSearchURL: RecruiterSearchURL(site.CompanyName),
	}

	start := time.Now()
	page := e.locator.Locate(ctx, site)
	if page == nil {
		log.Printf("[research] company=%s careers=none dur_ms=%d", site.CompanyName, time.Since(start).Milliseconds())
		return res, nil
	}

	atsName, finalPage := e.identifier.Identify(ctx, *page)
	res.ATSDetected = atsName
	careersURL := finalPage.URL
	res.CareersURL = &careersURL

	res.LiveRoles = e.counter.Count(ctx, atsName, finalPage, site.CompanyName)

	roles := -1
	if res.LiveRoles != nil {
		roles = *res.LiveRoles
	}
	log.Printf("[research] company=%s ats=%q careers=%s roles=%d dur_ms=%d",
		site.CompanyName, atsName, careersURL, roles, time.Since(start).Milliseconds())
	return res, nil
}
