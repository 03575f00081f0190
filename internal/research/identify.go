package research

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hirescout-engine/internal/ats"
	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/fetch"
)

// Identifier names the ATS behind a careers page. When a marketing careers
// page merely links out to a hosted board, the board becomes the page we
// report and count against.
type Identifier struct {
	fc          *fetch.Client
	pageTimeout time.Duration
}

func NewIdentifier(fc *fetch.Client, pageTimeout time.Duration) *Identifier {
	return &Identifier{fc: fc, pageTimeout: pageTimeout}
}

// Identify returns the vendor name (or domain.UnknownATS) plus the page to
// use downstream, which may differ from the input when an outbound ATS link
// was followed.
func (id *Identifier) Identify(ctx context.Context, page domain.CareersPage) (string, domain.CareersPage) {
	if name, ok := ats.MatchByURL(page.URL); ok {
		return name, page
	}

	// Common pattern: company-hosted careers page embedding or linking to a
	// third-party board. The board is the page that matters downstream
	// (slug extraction, counting), so follow the link before settling for a
	// keyword match on the marketing page. One hop only.
	if link := firstATSLink(page); link != "" {
		rehomed := id.refetch(ctx, link)
		if name, ok := ats.MatchByURL(rehomed.URL); ok {
			return name, rehomed
		}
		if name, ok := ats.MatchByHTML(rehomed.HTML); ok {
			return name, rehomed
		}
		return domain.UnknownATS, rehomed
	}

	// Keyword signatures without a usable link (inline embed scripts etc).
	if name, ok := ats.MatchByHTML(page.HTML); ok {
		return name, page
	}

	return domain.UnknownATS, page
}

func (id *Identifier) refetch(ctx context.Context, link string) domain.CareersPage {
	page, err := id.fc.Get(ctx, link, id.pageTimeout)
	if err != nil || !page.OK() {
		log.Printf("[identify] ats link refetch failed url=%s", link)
		return domain.CareersPage{URL: link, HTML: ""}
	}
	return domain.CareersPage{URL: page.URL, HTML: page.Body}
}

// firstATSLink scans anchors and iframes for the first href/src that matches
// a known ATS pattern.
func firstATSLink(page domain.CareersPage) string {
	if strings.TrimSpace(page.HTML) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return ""
	}
	base, err := url.Parse(page.URL)
	if err != nil {
		return ""
	}

	var found string
	check := func(raw string) {
		if found != "" {
			return
		}
		abs := resolveRef(base, raw)
		if abs == "" {
			return
		}
		// A link back to the page's own host is not an outbound board.
		if sameHost(page.URL, abs) {
			return
		}
		if _, ok := ats.MatchByURL(abs); ok {
			found = abs
		}
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if href, ok := s.Attr("href"); ok {
			check(href)
		}
		return found == ""
	})
	if found == "" {
		doc.Find("iframe[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if src, ok := s.Attr("src"); ok {
				check(src)
			}
			return found == ""
		})
	}
	return found
}
