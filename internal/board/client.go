// Package board fetches work items from the upstream issue tracker over
// HTTP. It is the one external collaborator the scheduler consumes before
// a run: the snapshot it returns is read-only and complete, or the fetch
// fails outright and no report is produced (spec §5, §7 — partial
// snapshots must not be scheduled).
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ewerton255/sprintctl/internal/sprint"
)

// ErrUpstream wraps any fetch failure: transport error, non-2xx response,
// or an empty body when items were expected. It is always fatal (spec §7).
var ErrUpstream = errors.New("upstream fetch failed")

// Client fetches work items for a team's area path from an Azure-DevOps-
// style work item tracker.
type Client struct {
	BaseURL    string
	PAT        string
	HTTPClient *http.Client

	// MaxRetries bounds the capped-exponential-backoff retry loop. Zero
	// means no retries: a single attempt only.
	MaxRetries int
	// BaseDelay is the first retry's sleep; it doubles on each subsequent
	// attempt, capped at MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// NewClient builds a Client with the teacher's conventional defaults: a
// 30s-per-attempt HTTP timeout and three retries starting at 500ms.
func NewClient(baseURL, pat string) *Client {
	return &Client{
		BaseURL:    baseURL,
		PAT:        pat,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   8 * time.Second,
	}
}

// workItemsResponse is the upstream JSON envelope: a flat array of items
// under a single "value" key, the conventional shape for batch work item
// queries.
type workItemsResponse struct {
	Value []upstreamItem `json:"value"`
}

type upstreamItem struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	State            string   `json:"state"`
	OriginalEstimate *float64 `json:"originalEstimate"`
	AssignedTo       string   `json:"assignedTo"`
	ParentStoryID    string   `json:"parentStoryId"`
	ParentStoryTitle string   `json:"parentStoryTitle"`
	AreaPath         string   `json:"areaPath"`
}

// FetchItems retrieves every work item under areaPath for the given
// sprint id, converting the upstream envelope into sprint.RawItem records.
// A context deadline on ctx bounds the entire retry loop, not just a
// single attempt.
func (c *Client) FetchItems(ctx context.Context, sprintID, areaPath string) ([]sprint.RawItem, error) {
	url := fmt.Sprintf("%s/workitems?sprint=%s&areaPath=%s", c.BaseURL, sprintID, areaPath)

	var lastErr error
	delay := c.BaseDelay
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
			if delay > c.MaxDelay {
				delay = c.MaxDelay
			}
		}

		items, err := c.fetchOnce(ctx, url)
		if err == nil {
			return items, nil
		}
		lastErr = err
		if !isRetryable(err) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]sprint.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.PAT != "" {
		req.SetBasicAuth("", c.PAT)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &retryableError{err} // transport failures (timeouts, connection refused) are transient
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &retryableError{err}
	}
	if resp.StatusCode >= 500 {
		return nil, &retryableError{fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	if resp.StatusCode != http.StatusOK {
		// 4xx (auth failure, bad request) will not succeed on retry.
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var envelope workItemsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return toRawItems(envelope.Value), nil
}

func toRawItems(items []upstreamItem) []sprint.RawItem {
	out := make([]sprint.RawItem, 0, len(items))
	for _, it := range items {
		raw := sprint.RawItem{
			ID:               it.ID,
			Title:            it.Title,
			State:            it.State,
			Assignee:         it.AssignedTo,
			ParentStoryID:    it.ParentStoryID,
			ParentStoryTitle: it.ParentStoryTitle,
			AreaPath:         it.AreaPath,
		}
		if it.OriginalEstimate != nil {
			raw.EstimateHours = *it.OriginalEstimate
			raw.HasEstimate = true
		}
		out = append(out, raw)
	}
	return out
}

// retryableError marks a fetchOnce failure as transient.
type retryableError struct{ err error }

func (r *retryableError) Error() string { return r.err.Error() }
func (r *retryableError) Unwrap() error { return r.err }

func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
