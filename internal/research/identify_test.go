package research

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hirescout-engine/internal/domain"
	"hirescout-engine/internal/fetch"
)

func TestIdentifyByURL(t *testing.T) {
	id := NewIdentifier(fetch.NewClient(nil), time.Second)

	name, page := id.Identify(context.Background(), domain.CareersPage{
		URL:  "https://boards.greenhouse.io/acme",
		HTML: "",
	})
	assert.Equal(t, "Greenhouse", name)
	assert.Equal(t, "https://boards.greenhouse.io/acme", page.URL)
}

func TestIdentifyByHTML(t *testing.T) {
	id := NewIdentifier(fetch.NewClient(nil), time.Second)

	name, page := id.Identify(context.Background(), domain.CareersPage{
		URL:  "https://acme.com/careers",
		HTML: `<html><script src="https://jobs.ashbyhq.com/acme/embed"></script>powered by ashbyhq.com</html>`,
	})
	assert.Equal(t, "Ashby", name)
	assert.Equal(t, "https://acme.com/careers", page.URL)
}

func TestIdentifyRehomesOutboundATSLink(t *testing.T) {
	id := NewIdentifier(fetch.NewClient(nil), 2*time.Second)

	// A marketing careers page whose only tell is an outbound link to a
	// lever-looking host. The .invalid TLD never resolves, so the refetch
	// fails and the link target is trusted; it still becomes the page we
	// identify and count against.
	name, page := id.Identify(context.Background(), domain.CareersPage{
		URL:  "https://acme-example-site.com/careers",
		HTML: fmt.Sprintf(`<html><h1>Life at Acme</h1><a href="%s/roles">All openings</a><a href="https://jobs.lever.co.invalid/acme">Apply</a></html>`, "https://acme-example-site.com"),
	})
	assert.Equal(t, "Lever", name)
	assert.Contains(t, page.URL, "jobs.lever.co.invalid/acme")
}

func TestIdentifyUnknown(t *testing.T) {
	id := NewIdentifier(fetch.NewClient(nil), time.Second)

	name, page := id.Identify(context.Background(), domain.CareersPage{
		URL:  "https://acme.com/careers",
		HTML: `<html><h1>Careers</h1><ul><li>Engineer</li></ul></html>`,
	})
	assert.Equal(t, domain.UnknownATS, name)
	assert.Equal(t, "https://acme.com/careers", page.URL)
}
