package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFollowsRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		case "/new":
			fmt.Fprint(w, "landed")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(nil)
	page, err := c.Get(context.Background(), srv.URL+"/old", 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/new", page.URL, "final URL must reflect the redirect target")
	assert.True(t, page.OK())
	assert.Equal(t, "landed", page.Body)
}

func TestGetSendsBrowserIdentity(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	c := NewClient(nil)
	_, err := c.Get(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)

	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Contains(t, gotAccept, "text/html")
}

func TestGetNonSuccessIsAPageNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(nil)
	page, err := c.Get(context.Background(), srv.URL+"/missing", 2*time.Second)
	require.NoError(t, err)
	assert.False(t, page.OK())
	assert.Equal(t, http.StatusNotFound, page.Status)
}

func TestGetTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	c := NewClient(nil)
	start := time.Now()
	_, err := c.Get(context.Background(), srv.URL, 100*time.Millisecond)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "timeout must cut the call, not wait it out")
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"jobs":[{"id":1},{"id":2}]}`)
	}))
	defer srv.Close()

	c := NewClient(nil)
	var body struct {
		Jobs []struct {
			ID int `json:"id"`
		} `json:"jobs"`
	}
	err := c.GetJSON(context.Background(), srv.URL, 2*time.Second, &body)
	require.NoError(t, err)
	assert.Len(t, body.Jobs, 2)
}

func TestGetJSONRejectsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(nil)
	var v map[string]any
	err := c.GetJSON(context.Background(), srv.URL, 2*time.Second, &v)
	assert.Error(t, err)
}

func TestGetJSONRejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not json</html>")
	}))
	defer srv.Close()

	c := NewClient(nil)
	var v map[string]any
	err := c.GetJSON(context.Background(), srv.URL, 2*time.Second, &v)
	assert.Error(t, err)
}

func TestHostLimiterIndependentBuckets(t *testing.T) {
	hl := NewHostLimiter(1, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// First hit on each host consumes its own burst; neither should block.
	require.NoError(t, hl.WaitURL(ctx, "https://a.example.com/x"))
	require.NoError(t, hl.WaitURL(ctx, "https://b.example.com/y"))
}

func TestHostLimiterThrottlesSameHost(t *testing.T) {
	hl := NewHostLimiter(2, 1)

	start := time.Now()
	ctx := context.Background()
	require.NoError(t, hl.WaitURL(ctx, "https://a.example.com/1"))
	require.NoError(t, hl.WaitURL(ctx, "https://a.example.com/2"))
	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
}
