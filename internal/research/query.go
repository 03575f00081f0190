package research

import (
	"net/url"
	"strings"
)

// Keep multi-word titles quoted so search engines treat them as phrases.
var recruiterTitles = []string{
	"recruiter",
	"technical recruiter",
	"talent acquisition",
	"head of talent",
	"hiring manager",
}

// RecruiterSearchURL builds a LinkedIn people-search URL targeting recruiter
// profiles at the given company. Deterministic, no network.
func RecruiterSearchURL(companyName string) string {
	terms := make([]string, 0, len(recruiterTitles))
	for _, t := range recruiterTitles {
		if strings.Contains(t, " ") {
			terms = append(terms, `"`+t+`"`)
		} else {
			terms = append(terms, t)
		}
	}
	q := `"` + companyName + `" (` + strings.Join(terms, " OR ") + `)`
	return "https://www.linkedin.com/search/results/people/?keywords=" + url.QueryEscape(q)
}
