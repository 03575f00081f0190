package research

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"hirescout-engine/internal/domain"
)

// ErrInvalidURL marks input that cannot become a site even after scheme
// normalization. Handlers map it to a 4xx response; everything else the
// pipeline swallows.
var ErrInvalidURL = errors.New("invalid url")

// NormalizeSite derives the base URL and company name from raw user input.
// Inputs without a scheme gain https://; http/https are preserved as given.
func NormalizeSite(raw string) (domain.Site, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Site{}, fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	low := strings.ToLower(raw)
	if !strings.HasPrefix(low, "http://") && !strings.HasPrefix(low, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return domain.Site{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return domain.Site{
		BaseURL:     u.Scheme + "://" + u.Host,
		CompanyName: ExtractCompanyName(u.Hostname()),
	}, nil
}

// ExtractCompanyName capitalizes the first DNS label after stripping www.
// Idempotent on already-stripped hostnames; "Unknown" when nothing usable.
func ExtractCompanyName(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// sameHost reports whether two URLs share a hostname, ignoring a www.
// prefix on either side.
func sameHost(a, b string) bool {
	ha := hostOf(a)
	hb := hostOf(b)
	if ha == "" || hb == "" {
		return false
	}
	return ha == hb
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
