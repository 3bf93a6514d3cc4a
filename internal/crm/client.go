// Package crm is the adapter for the upstream CRM record API.
//
// Rules:
// - No CRM wire details outside this package.
// - Callers see canonical types (leads.Lead, field maps), never raw payloads.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"callbridge/internal/config"
	"callbridge/internal/leads"
)

const headerToken = "tokenid"

// UpstreamError carries a non-success response so the HTTP layer can mirror
// the upstream status and body instead of collapsing everything into a 500.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("crm: upstream status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	objectType string
	httpClient *http.Client
}

func NewClient(cfg config.CRMConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		objectType: cfg.ObjectType,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetLead fetches one record and returns its canonical view.
func (c *Client) GetLead(ctx context.Context, recordID string) (leads.Lead, error) {
	endpoint := fmt.Sprintf("%s/record/%s/%s", c.baseURL, c.objectType, recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return leads.Lead{}, err
	}
	req.Header.Set(headerToken, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return leads.Lead{}, fmt.Errorf("crm: get record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return leads.Lead{}, fmt.Errorf("crm: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return leads.Lead{}, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return leads.Lead{}, fmt.Errorf("crm: decode record: %w", err)
	}
	return leads.Normalize(payload, recordID), nil
}

// UpdateLead patches vendor-named fields on a record. The fields map must
// already use vendor field names; translation lives in internal/leads.
func (c *Client) UpdateLead(ctx context.Context, recordID string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/record/%s/%s", c.baseURL, c.objectType, recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set(headerToken, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm: patch record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
