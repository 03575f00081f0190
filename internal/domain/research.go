package domain

// UnknownATS is reported when no fingerprint matched at any stage.
const UnknownATS = "Unknown / Custom ATS"

// Site is the normalized form of a user-supplied website URL.
type Site struct {
	BaseURL     string // scheme + host, no path or query
	CompanyName string // capitalized first DNS label, www. stripped
}

// CareersPage is the page believed to hold the company's job listings.
// HTML may be empty when the URL was trusted without a successful fetch.
type CareersPage struct {
	URL  string
	HTML string
}

// ResearchResult is the one artifact a research call produces.
// LiveRoles is nil when no tier could determine a count; zero is a real
// "board is empty" answer, not a failure.
type ResearchResult struct {
	CompanyName       string  `json:"companyName"`
	Website           string  `json:"website"`
	ATSDetected       string  `json:"atsDetected"`
	LiveRoles         *int    `json:"liveRoles"`
	LinkedInSearchURL string  `json:"linkedinSearchUrl"`
	CareersURL        *string `json:"careersUrl"`
}
