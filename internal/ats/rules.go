package ats

import (
	"regexp"
	"strings"
)

// Rule fingerprints one ATS vendor. URLPatterns are tried against resolved
// URLs, HTMLKeywords against lower-cased page bodies.
type Rule struct {
	Name         string
	URLPatterns  []*regexp.Regexp
	HTMLKeywords []string
}

// Rules is the process-wide fingerprint table. Order matters: matching is
// first-match-wins, so more specific vendors sit before generic ones.
// Never mutate at runtime.
var Rules = []Rule{
	{
		Name: "Greenhouse",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`boards\.greenhouse\.io`),
			regexp.MustCompile(`job-boards\.greenhouse\.io`),
			regexp.MustCompile(`greenhouse\.io`),
		},
		HTMLKeywords: []string{"boards.greenhouse.io", "greenhouse.io", "grnhse"},
	},
	{
		Name: "Lever",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`jobs\.(?:eu\.)?lever\.co`),
			regexp.MustCompile(`lever\.co`),
		},
		HTMLKeywords: []string{"jobs.lever.co", "lever.co"},
	},
	{
		Name: "Workday",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`myworkdayjobs\.com`),
			regexp.MustCompile(`workday\.com`),
		},
		HTMLKeywords: []string{"myworkdayjobs", "workday"},
	},
	{
		Name: "Ashby",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`jobs\.ashbyhq\.com`),
			regexp.MustCompile(`ashbyhq\.com`),
		},
		HTMLKeywords: []string{"ashbyhq.com", "ashby_embed"},
	},
	{
		Name: "SmartRecruiters",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:jobs|careers)\.smartrecruiters\.com`),
			regexp.MustCompile(`smartrecruiters\.com`),
		},
		HTMLKeywords: []string{"smartrecruiters"},
	},
	{
		Name: "BambooHR",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.bamboohr\.com`),
		},
		HTMLKeywords: []string{"bamboohr"},
	},
	{
		Name: "Teamtailor",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.teamtailor\.com`),
		},
		HTMLKeywords: []string{"teamtailor"},
	},
	{
		Name: "iCIMS",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.icims\.com`),
		},
		HTMLKeywords: []string{"icims"},
	},
	{
		Name: "Recruitee",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.recruitee\.com`),
		},
		HTMLKeywords: []string{"recruitee"},
	},
	{
		Name: "Pinpoint",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.pinpointhq\.com`),
		},
		HTMLKeywords: []string{"pinpointhq", "pinpoint.js"},
	},
	{
		Name: "Workable",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`apply\.workable\.com`),
			regexp.MustCompile(`\.workable\.com`),
		},
		HTMLKeywords: []string{"workable"},
	},
	{
		Name: "JazzHR",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.applytojob\.com`),
			regexp.MustCompile(`app\.jazz\.co`),
		},
		HTMLKeywords: []string{"applytojob", "jazzhr"},
	},
	{
		Name: "Breezy HR",
		URLPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\.breezy\.hr`),
		},
		HTMLKeywords: []string{"breezy.hr", "breezyhr"},
	},
}

// MatchByURL returns the first vendor whose URL patterns match, in table
// order. Pure, no I/O.
func MatchByURL(rawURL string) (string, bool) {
	if strings.TrimSpace(rawURL) == "" {
		return "", false
	}
	for _, r := range Rules {
		for _, p := range r.URLPatterns {
			if p.MatchString(rawURL) {
				return r.Name, true
			}
		}
	}
	return "", false
}

// MatchByHTML returns the first vendor with a keyword present in the
// lower-cased body, in table order.
func MatchByHTML(html string) (string, bool) {
	if strings.TrimSpace(html) == "" {
		return "", false
	}
	low := strings.ToLower(html)
	for _, r := range Rules {
		for _, kw := range r.HTMLKeywords {
			if strings.Contains(low, kw) {
				return r.Name, true
			}
		}
	}
	return "", false
}
