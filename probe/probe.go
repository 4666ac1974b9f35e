// ABOUTME: Stream health checker probing station URLs over HTTP
// ABOUTME: Runs HEAD-then-ranged-GET probes concurrently via the worker pool

// Package probe checks whether stream URLs are still reachable.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"streams-editor/pool"
	"streams-editor/sii"
)

// defaultUserAgent mimics a browser; several stream hosts reject
// the default Go client string outright
const defaultUserAgent = "Mozilla/5.0"

// Result holds the probe outcome for a single record
type Result struct {
	Record     sii.Record
	OK         bool
	StatusCode int
	Err        error
}

// Checker probes stream URLs for liveness
type Checker struct {
	Client    *http.Client
	Timeout   time.Duration
	Workers   int
	UserAgent string
}

// NewChecker creates a checker with the given timeout and worker count
func NewChecker(timeout time.Duration, workers int) *Checker {
	// Redirects count as alive without following them; a moved stream
	// still plays in-game
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Checker{
		Client:    client,
		Timeout:   timeout,
		Workers:   workers,
		UserAgent: defaultUserAgent,
	}
}

// CheckAll probes every record concurrently and returns results in input
// order. The optional onResult callback fires as each probe completes,
// from worker goroutines.
func (c *Checker) CheckAll(ctx context.Context, records []sii.Record, onResult func(Result)) []Result {
	results := make([]Result, len(records))

	p := pool.NewWorkerPool(c.Workers, len(records))
	defer p.Close()

	for i, rec := range records {
		p.Submit(func() {
			res := c.checkOne(ctx, rec)
			results[i] = res
			if onResult != nil {
				onResult(res)
			}
		})
	}

	p.Wait()
	return results
}

func (c *Checker) checkOne(ctx context.Context, rec sii.Record) Result {
	ok, status, err := c.probeURL(ctx, rec.URL)
	return Result{Record: rec, OK: ok, StatusCode: status, Err: err}
}

// probeURL tries a HEAD request first, then falls back to a ranged GET.
// Many shoutcast servers answer HEAD with errors but stream fine on GET.
func (c *Checker) probeURL(ctx context.Context, url string) (bool, int, error) {
	status, err := c.do(ctx, http.MethodHead, url, false)
	if err == nil {
		switch status {
		case http.StatusOK, http.StatusMovedPermanently, http.StatusFound:
			return true, status, nil
		}
	}

	status, err = c.do(ctx, http.MethodGet, url, true)
	if err != nil {
		return false, 0, err
	}
	if status == http.StatusOK || status == http.StatusPartialContent {
		return true, status, nil
	}

	return false, status, fmt.Errorf("unexpected status %d", status)
}

func (c *Checker) do(ctx context.Context, method, url string, ranged bool) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	if ranged {
		// Only pull the first bytes; we never want the whole stream
		req.Header.Set("Range", "bytes=0-100")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
