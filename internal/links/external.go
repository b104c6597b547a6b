package links

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harborline/shipshape/internal/finding"
)

// userAgent is sent with probe requests; some hosts reject blank agents.
const userAgent = "shipshape-link-check"

// Prober validates external URLs over HTTP.
type Prober struct {
	Client      *http.Client
	Timeout     time.Duration
	Concurrency int
}

// NewProber creates a Prober with the given per-request timeout and
// concurrency bound.
func NewProber(timeout time.Duration, concurrency int) *Prober {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Prober{
		Client:      &http.Client{},
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Probe checks each target URL once and fans findings out to every
// referencing location. Unreachable hosts are warnings (networks flake);
// a definitive 4xx/5xx answer is an error.
func (p *Prober) Probe(ctx context.Context, targets []probeTarget) *finding.Report {
	report := &finding.Report{}
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(p.Concurrency)

	for _, target := range targets {
		group.Go(func() error {
			severity, message := p.probeOne(ctx, target.url)
			if message == "" {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			for _, ref := range target.refs {
				ref.Severity = severity
				ref.Message = message
				report.Add(ref)
			}
			return nil
		})
	}

	// Goroutines only return nil; Wait just synchronizes.
	_ = group.Wait()
	return report
}

// probeOne issues a HEAD request, falling back to GET for hosts that
// reject HEAD. Returns a finding severity and message, or "" when the
// URL is fine.
func (p *Prober) probeOne(ctx context.Context, url string) (finding.Severity, string) {
	status, err := p.request(ctx, http.MethodHead, url)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = p.request(ctx, http.MethodGet, url)
	}
	if err != nil {
		return finding.SeverityWarning, fmt.Sprintf("%s could not be reached: %v", url, err)
	}
	if status >= http.StatusBadRequest {
		return finding.SeverityError, fmt.Sprintf("%s returned HTTP %d", url, status)
	}
	return "", ""
}

// request performs one HTTP request and returns the status code.
func (p *Prober) request(ctx context.Context, method, url string) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close() //nolint:errcheck // response body is discarded

	return resp.StatusCode, nil
}
