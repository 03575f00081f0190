package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy plus everything wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// Normalize extra career paths: trimmed, deduped, leading slash.
	seen := map[string]bool{}
	var paths []string
	for _, p := range out.Research.ExtraCareerPaths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, p)
	}
	out.Research.ExtraCareerPaths = paths

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	checkTimeout := func(name string, ms int) {
		if ms <= 0 {
			res.addErr("research.%s must be > 0", name)
		} else if ms < 500 {
			res.addWarn("research.%s is very low (%dms); most sites will time out.", name, ms)
		}
	}
	checkTimeout("probe_timeout_ms", out.Research.ProbeTimeoutMS)
	checkTimeout("page_timeout_ms", out.Research.PageTimeoutMS)
	checkTimeout("api_timeout_ms", out.Research.APITimeoutMS)
	checkTimeout("request_timeout_ms", out.Research.RequestTimeoutMS)

	if out.Research.RequestTimeoutMS > 0 &&
		out.Research.RequestTimeoutMS < out.Research.PageTimeoutMS+out.Research.APITimeoutMS {
		res.addWarn("research.request_timeout_ms is smaller than one page fetch plus one API call; most requests will be cut short.")
	}

	if out.Research.MaxCandidateLinks > 10 {
		res.addWarn("research.max_candidate_links is %d; homepage mining will be slow.", out.Research.MaxCandidateLinks)
	}
	if out.Research.HostRatePerSec < 0 {
		res.addErr("research.host_rate_per_sec must be >= 0")
	}

	return out, res
}
