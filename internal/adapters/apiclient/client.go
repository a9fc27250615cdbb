// Package apiclient submits a completed AnswerSet to a Concierge server over
// HTTP, the same request a browser front end would make.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/johnmikes100/concierge/internal/domain"
)

type Client struct {
	BaseURL string // e.g. "http://localhost:8080"
	HTTP    *http.Client
}

// Deliver POSTs s to /api/submit. Transport errors, non-2xx responses and
// {"success": false} bodies all come back as errors.
func (c *Client) Deliver(ctx context.Context, s domain.Submission) error {
	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if c.BaseURL == "" {
		return fmt.Errorf("missing base url")
	}

	body, err := json.Marshal(s)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/submit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return fmt.Errorf("submit: status %d: %w", res.StatusCode, err)
	}
	if res.StatusCode != http.StatusOK || !resp.Success {
		if resp.Error == "" {
			resp.Error = http.StatusText(res.StatusCode)
		}
		return fmt.Errorf("submit: %s", resp.Error)
	}
	return nil
}
