package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrRelayRejected = errors.New("form endpoint rejected submission")

// FormRelay forwards contact form fields to the third-party form endpoint
// with the same encoding a native form post uses.
type FormRelay struct {
	client *http.Client
}

// NewFormRelay creates a relay whose requests time out after timeout
func NewFormRelay(timeout time.Duration) *FormRelay {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FormRelay{client: &http.Client{Timeout: timeout}}
}

// Post sends the values and reports transport errors and non-2xx answers
func (r *FormRelay) Post(ctx context.Context, endpoint string, values url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Without this header the endpoint answers with its HTML thank-you page
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to relay submission: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRelayRejected, resp.StatusCode)
	}
	return nil
}
