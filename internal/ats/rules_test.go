package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchByURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		matched bool
	}{
		{"greenhouse board", "https://boards.greenhouse.io/acme", "Greenhouse", true},
		{"greenhouse new boards", "https://job-boards.greenhouse.io/acme", "Greenhouse", true},
		{"lever", "https://jobs.lever.co/acme", "Lever", true},
		{"lever eu", "https://jobs.eu.lever.co/acme", "Lever", true},
		{"workday", "https://acme.wd1.myworkdayjobs.com/External", "Workday", true},
		{"ashby", "https://jobs.ashbyhq.com/acme", "Ashby", true},
		{"smartrecruiters", "https://jobs.smartrecruiters.com/Acme", "SmartRecruiters", true},
		{"bamboohr", "https://acme.bamboohr.com/careers", "BambooHR", true},
		{"teamtailor", "https://acme.teamtailor.com", "Teamtailor", true},
		{"icims", "https://careers-acme.icims.com/jobs", "iCIMS", true},
		{"recruitee", "https://acme.recruitee.com", "Recruitee", true},
		{"pinpoint", "https://acme.pinpointhq.com", "Pinpoint", true},
		{"workable", "https://apply.workable.com/acme", "Workable", true},
		{"jazzhr", "https://acme.applytojob.com/apply", "JazzHR", true},
		{"breezy", "https://acme.breezy.hr", "Breezy HR", true},
		{"plain site", "https://acme.com/careers", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchByURL(tt.url)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchByURLFirstMatchWins(t *testing.T) {
	// Matches both Greenhouse and Lever patterns; Greenhouse sits earlier
	// in the table so it must win.
	got, ok := MatchByURL("https://boards.greenhouse.io/redirect?to=jobs.lever.co/acme")
	assert.True(t, ok)
	assert.Equal(t, "Greenhouse", got)
}

func TestMatchByHTML(t *testing.T) {
	got, ok := MatchByHTML(`<html><a href="https://jobs.lever.co/acme">Jobs</a> powered by myworkdayjobs</html>`)
	assert.True(t, ok)
	// Lever precedes Workday in table order.
	assert.Equal(t, "Lever", got)

	got, ok = MatchByHTML("<html><body>nothing to see</body></html>")
	assert.False(t, ok)
	assert.Empty(t, got)

	_, ok = MatchByHTML("")
	assert.False(t, ok)
}

func TestMatchByHTMLCaseInsensitive(t *testing.T) {
	got, ok := MatchByHTML(`<script src="HTTPS://BOARDS.GREENHOUSE.IO/embed/job_board/js?for=acme"></script>`)
	assert.True(t, ok)
	assert.Equal(t, "Greenhouse", got)
}
