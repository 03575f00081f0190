package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/fetch"
)

// Vendor board APIs answer authoritatively; HTML scraping is the fallback.
// Templates take the board slug as their one argument.
const (
	greenhouseAPI      = "https://boards-api.greenhouse.io/v1/boards/%s/jobs"
	leverAPI           = "https://api.lever.co/v0/postings/%s?mode=json"
	ashbyAPI           = "https://api.ashbyhq.com/posting-api/job-board/%s"
	smartRecruitersAPI = "https://api.smartrecruiters.com/v1/companies/%s/postings?limit=1"
)

// slugPatterns extract the board slug from a careers URL, per vendor.
var slugPatterns = map[string][]*regexp.Regexp{
	"Greenhouse": {
		regexp.MustCompile(`(?:boards|job-boards)\.greenhouse\.io/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`greenhouse\.io/embed/job_board\?(?:.*&)?for=([A-Za-z0-9_-]+)`),
	},
	"Lever": {
		regexp.MustCompile(`jobs\.(?:eu\.)?lever\.co/([A-Za-z0-9_-]+)`),
	},
	"Ashby": {
		regexp.MustCompile(`jobs\.ashbyhq\.com/([A-Za-z0-9_.%-]+)`),
	},
	"SmartRecruiters": {
		regexp.MustCompile(`(?:jobs|careers)\.smartrecruiters\.com/([A-Za-z0-9_-]+)`),
	},
}

// Selectors tried against scraped HTML when no API answered. Vendor-specific
// entries go first; the first selector with at least one match wins.
var vendorSelectors = map[string][]string{
	"Greenhouse":      {".opening", "[class*='job-post']"},
	"Lever":           {".posting"},
	"Workday":         {"[data-automation-id='jobTitle']"},
	"Ashby":           {"[class*='jobPosting']"},
	"SmartRecruiters": {".opening-job", "[class*='opening']"},
	"BambooHR":        {"[class*='BambooHR-ATS-Jobs-Item']"},
	"Workable":        {"[data-ui='job']", "li[class*='job']"},
}

var genericSelectors = []string{
	"[class*='job-item']",
	"[class*='job_item']",
	"[class*='jobItem']",
	"[class*='job-listing']",
	"[class*='job-card']",
	"[class*='job-row']",
	"[class*='position-item']",
	"[class*='vacancy']",
	"[data-job-id]",
	"li[data-job]",
}

var reJobHref = regexp.MustCompile(`(?i)(job|position|opening|vacanc|apply|posting)`)

// Counter estimates live roles: vendor API first, HTML structure second,
// job-looking links last. nil means "could not determine"; zero means the
// board really is empty.
type Counter struct {
	fc          *fetch.Client
	apiTimeout  time.Duration
	pageTimeout time.Duration

	// Overridable for tests; defaults to the public endpoints above.
	apis map[string]string
}

func NewCounter(fc *fetch.Client, apiTimeout, pageTimeout time.Duration) *Counter {
	return &Counter{
		fc:          fc,
		apiTimeout:  apiTimeout,
		pageTimeout: pageTimeout,
		apis: map[string]string{
			"Greenhouse":      greenhouseAPI,
			"Lever":           leverAPI,
			"Ashby":           ashbyAPI,
			"SmartRecruiters": smartRecruitersAPI,
		},
	}
}

func (c *Counter) Count(ctx context.Context, atsName string, page domain.CareersPage, companyName string) *int {
	if atsName != domain.UnknownATS {
		if n := c.countFromAPI(ctx, atsName, page.URL, companyName); n != nil {
			return n
		}
	}

	html := page.HTML
	if strings.TrimSpace(html) == "" {
		// Tier-A trust or a failed rehome can leave us without a body.
		if p, err := c.fc.Get(ctx, page.URL, c.pageTimeout); err == nil && p.OK() {
			html = p.Body
		}
	}
	return countFromHTML(atsName, html)
}

func (c *Counter) countFromAPI(ctx context.Context, atsName, careersURL, companyName string) *int {
	tmpl, ok := c.apis[atsName]
	if !ok {
		return nil
	}

	slugs := candidateSlugs(atsName, careersURL, companyName)
	for _, slug := range slugs {
		endpoint := fmt.Sprintf(tmpl, url.PathEscape(slug))
		n, err := c.queryAPI(ctx, atsName, endpoint)
		if err != nil {
			log.Printf("[counter] api miss ats=%s slug=%s err=%v", atsName, slug, err)
			continue
		}
		return n
	}
	return nil
}

func (c *Counter) queryAPI(ctx context.Context, atsName, endpoint string) (*int, error) {
	switch atsName {
	case "Lever":
		// Bare array of postings.
		var postings []json.RawMessage
		if err := c.fc.GetJSON(ctx, endpoint, c.apiTimeout, &postings); err != nil {
			return nil, err
		}
		n := len(postings)
		return &n, nil

	case "SmartRecruiters":
		var body struct {
			TotalFound *int `json:"totalFound"`
		}
		if err := c.fc.GetJSON(ctx, endpoint, c.apiTimeout, &body); err != nil {
			return nil, err
		}
		if body.TotalFound == nil || *body.TotalFound < 0 {
			return nil, fmt.Errorf("unexpected shape")
		}
		return body.TotalFound, nil

	default: // Greenhouse, Ashby: { "jobs": [...] }
		var body struct {
			Jobs *[]json.RawMessage `json:"jobs"`
		}
		if err := c.fc.GetJSON(ctx, endpoint, c.apiTimeout, &body); err != nil {
			return nil, err
		}
		if body.Jobs == nil {
			return nil, fmt.Errorf("unexpected shape")
		}
		n := len(*body.Jobs)
		return &n, nil
	}
}

// candidateSlugs: the slug extracted from the careers URL, falling back to
// the lower-cased company name. Greenhouse tries both before giving up;
// other vendors try whichever applies first.
func candidateSlugs(atsName, careersURL, companyName string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	for _, re := range slugPatterns[atsName] {
		if m := re.FindStringSubmatch(careersURL); len(m) == 2 {
			add(m[1])
		}
	}

	company := strings.ToLower(strings.Join(strings.Fields(companyName), ""))
	if atsName == "Greenhouse" || len(out) == 0 {
		add(company)
	}
	return out
}

func countFromHTML(atsName, html string) *int {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	selectors := append(append([]string{}, vendorSelectors[atsName]...), genericSelectors...)
	for _, sel := range selectors {
		if n := doc.Find(sel).Length(); n > 0 {
			return &n
		}
	}
	return linkEstimate(doc)
}

// linkEstimate counts distinct job-looking anchors: href mentions a
// job/apply-ish word and the visible text is plausibly a job title.
func linkEstimate(doc *goquery.Document) *int {
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !reJobHref.MatchString(href) {
			return
		}
		text := cleanText(a.Text())
		n := len([]rune(text))
		if n < 6 || n > 199 {
			return
		}
		seen[strings.ToLower(text)] = true
	})
	if len(seen) == 0 {
		return nil
	}
	n := len(seen)
	return &n
}
