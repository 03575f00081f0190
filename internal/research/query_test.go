package research

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecruiterSearchURL(t *testing.T) {
	raw := RecruiterSearchURL("Acme & Co")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "www.linkedin.com", u.Host)

	q := u.Query().Get("keywords")
	assert.Contains(t, q, `"Acme & Co"`)
	assert.Contains(t, q, "recruiter")
	assert.Contains(t, q, `"talent acquisition"`)
	assert.Contains(t, q, " OR ")

	// The company name must survive encoding in the raw URL.
	assert.Contains(t, raw, url.QueryEscape(`"Acme & Co"`))
}

func TestRecruiterSearchURLDeterministic(t *testing.T) {
	a := RecruiterSearchURL("Stripe")
	b := RecruiterSearchURL("Stripe")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "https://www.linkedin.com/search/results/people/?keywords="))
}
