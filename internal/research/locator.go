package research

import (
	"context"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"hirescout-engine/internal/ats"
	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/fetch"
)

// careerPaths are probed in order against the base domain. Order is the
// tie-break when several respond.
var careerPaths = []string{
	"/careers",
	"/careers/",
	"/jobs",
	"/join-us",
	"/join",
	"/company/careers",
	"/about/careers",
	"/work-with-us",
	"/open-positions",
	"/openings",
}

var reCareersHref = regexp.MustCompile(`(?i)(careers|jobs|open-positions|openings|vacancies)(/|$|\?)`)

// Exact (trimmed, lower-cased) anchor texts that mark a careers link even
// when the href gives nothing away.
var careersLinkText = map[string]bool{
	"careers":      true,
	"jobs":         true,
	"work with us": true,
	"join us":      true,
}

// Locator finds the one page representing a company's job listings. Every
// network failure inside it is a non-match, never an abort.
type Locator struct {
	fc           *fetch.Client
	probeTimeout time.Duration
	pageTimeout  time.Duration
	extraPaths   []string
	maxLinks     int
}

func NewLocator(fc *fetch.Client, probeTimeout, pageTimeout time.Duration, extraPaths []string, maxLinks int) *Locator {
	if maxLinks <= 0 {
		maxLinks = 3
	}
	return &Locator{
		fc:           fc,
		probeTimeout: probeTimeout,
		pageTimeout:  pageTimeout,
		extraPaths:   extraPaths,
		maxLinks:     maxLinks,
	}
}

// Locate returns nil when no candidate is accepted anywhere.
func (l *Locator) Locate(ctx context.Context, site domain.Site) *domain.CareersPage {
	if page := l.probePaths(ctx, site); page != nil {
		return page
	}

	home, err := l.fc.Get(ctx, site.BaseURL, l.pageTimeout)
	if err != nil || !home.OK() {
		return nil
	}
	return l.mineHomepage(ctx, site, home)
}

// probePaths fans the candidate paths out concurrently and selects the first
// accepted result in path order. A probe timing out never cancels siblings.
func (l *Locator) probePaths(ctx context.Context, site domain.Site) *domain.CareersPage {
	paths := make([]string, 0, len(careerPaths)+len(l.extraPaths))
	paths = append(paths, careerPaths...)
	paths = append(paths, l.extraPaths...)

	results := make([]*domain.CareersPage, len(paths))

	var g errgroup.Group
	g.SetLimit(6)
	for i, p := range paths {
		g.Go(func() error {
			page, err := l.fc.Get(ctx, site.BaseURL+p, l.probeTimeout)
			if err != nil {
				return nil // non-match
			}
			if l.accept(site, page) {
				results[i] = &domain.CareersPage{URL: page.URL, HTML: page.Body}
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r != nil {
			return r
		}
	}
	return nil
}

// accept: successful response that either stayed on the company's domain
// (www. ignored) or redirected onto a known ATS host.
func (l *Locator) accept(site domain.Site, page *fetch.Page) bool {
	if !page.OK() {
		return false
	}
	if sameHost(site.BaseURL, page.URL) {
		return true
	}
	_, ok := ats.MatchByURL(page.URL)
	return ok
}

func (l *Locator) mineHomepage(ctx context.Context, site domain.Site, home *fetch.Page) *domain.CareersPage {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(home.Body))
	if err != nil {
		return nil
	}

	base, err := url.Parse(home.URL)
	if err != nil {
		return nil
	}

	// Tier A: links straight into a known ATS. Trusted without the
	// same-domain check; the very first one wins even if its fetch fails.
	if page := l.tryATSLinks(ctx, base, doc); page != nil {
		return page
	}

	// Tier B: hrefs that look like careers paths; Tier C: anchors whose
	// visible text says so, appended when not already collected.
	candidates := l.careersCandidates(base, doc)
	for i, cand := range candidates {
		if i >= l.maxLinks+2 {
			break
		}
		page, err := l.fc.Get(ctx, cand, l.pageTimeout)
		if err != nil {
			continue
		}
		if l.accept(site, page) {
			return &domain.CareersPage{URL: page.URL, HTML: page.Body}
		}
	}
	return nil
}

func (l *Locator) tryATSLinks(ctx context.Context, base *url.URL, doc *goquery.Document) *domain.CareersPage {
	var links []string
	seen := map[string]bool{}

	collect := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || len(links) >= l.maxLinks {
			return
		}
		abs := resolveRef(base, raw)
		if abs == "" || seen[abs] {
			return
		}
		if _, ok := ats.MatchByURL(abs); !ok {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			collect(href)
		}
	})
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			collect(src)
		}
	})

	for i, link := range links {
		page, err := l.fc.Get(ctx, link, l.pageTimeout)
		if err != nil || !page.OK() {
			if i == 0 {
				// First ATS link is authoritative even when unreachable;
				// downstream identification still works off the URL.
				log.Printf("[locator] ats link unreachable, trusting url=%s", link)
				return &domain.CareersPage{URL: link, HTML: ""}
			}
			continue
		}
		return &domain.CareersPage{URL: page.URL, HTML: page.Body}
	}
	return nil
}

func (l *Locator) careersCandidates(base *url.URL, doc *goquery.Document) []string {
	var out []string
	seen := map[string]bool{}

	add := func(abs string) {
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		out = append(out, abs)
	}

	// Tier B
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if reCareersHref.MatchString(href) {
			add(resolveRef(base, href))
		}
	})

	// Tier C
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(cleanText(s.Text()))
		if !careersLinkText[text] {
			return
		}
		if href, ok := s.Attr("href"); ok {
			add(resolveRef(base, href))
		}
	})

	return out
}

// resolveRef turns a possibly-relative href into an absolute URL; malformed
// links resolve to "" and are skipped.
func resolveRef(base *url.URL, raw string) string {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	if abs.Host == "" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
