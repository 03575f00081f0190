package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Browser-like identity: several career sites and ATS boards serve different
// (or no) markup to obvious bots.
const (
	userAgent  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	maxBodyBytes = 5 << 20
)

// Page is one fetched document. URL is the final URL after redirects.
type Page struct {
	URL    string
	Status int
	Body   string
}

func (p *Page) OK() bool {
	return p != nil && p.Status >= 200 && p.Status <= 299
}

// Client issues single-attempt GETs with per-call deadlines. Retries and
// fallback sequencing belong to callers.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
}

func NewClient(limiter *HostLimiter) *Client {
	return &Client{
		hc:      &http.Client{}, // deadline comes from the per-call context
		limiter: limiter,
	}
}

// Get fetches rawURL once, following redirects, failing (never hanging) when
// timeout elapses. A non-2xx status is returned as a Page, not an error, so
// callers can distinguish "reached but rejected" from "unreachable".
func (c *Client) Get(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHTML)

	if c.limiter != nil {
		if err := c.limiter.WaitURL(cctx, rawURL); err != nil {
			return nil, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch get: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch read body: %w", err)
	}

	final := rawURL
	if res.Request != nil && res.Request.URL != nil {
		final = res.Request.URL.String()
	}
	return &Page{URL: final, Status: res.StatusCode, Body: string(body)}, nil
}

// GetJSON fetches rawURL and decodes the body into v. Non-2xx statuses and
// undecodable bodies are errors; callers treat any error as "no answer".
func (c *Client) GetJSON(ctx context.Context, rawURL string, timeout time.Duration, v any) error {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("fetch build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(cctx, rawURL); err != nil {
			return err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("fetch status %d", res.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("fetch decode: %w", err)
	}
	return nil
}
