package render

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ninja-fellowship/internal/concurrency"
	"ninja-fellowship/internal/domain"
)

// PortraitChecker probes portrait URLs with HEAD requests.
type PortraitChecker struct {
	HTTP    *http.Client
	Options concurrency.ParallelOptions
}

func NewPortraitChecker(timeout time.Duration) *PortraitChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PortraitChecker{
		HTTP:    &http.Client{Timeout: timeout},
		Options: concurrency.DefaultOptions(),
	}
}

// Check returns reachability per distinct portrait URL. The error slice
// lists the probes that failed; those URLs are reported unreachable.
func (c *PortraitChecker) Check(ctx context.Context, emps []domain.Employee) (map[string]bool, []error) {
	urls := make([]string, 0, len(emps))
	seen := make(map[string]struct{}, len(emps))
	for _, e := range emps {
		if !e.HasPortrait() {
			continue
		}
		if _, ok := seen[e.ImagePortraitURL]; ok {
			continue
		}
		seen[e.ImagePortraitURL] = struct{}{}
		urls = append(urls, e.ImagePortraitURL)
	}

	ok, errs := concurrency.ProcessParallel(ctx, urls, c.Options, func(ctx context.Context, _ int, url string) (bool, error) {
		return c.head(ctx, url)
	})

	out := make(map[string]bool, len(urls))
	for i, u := range urls {
		out[u] = ok[i]
	}
	return out, errs
}

func (c *PortraitChecker) head(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("portrait %s: %w", url, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("portrait %s: %w", url, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 400 {
		return false, nil
	}
	return true, nil
}
