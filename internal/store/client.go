// Package store is the client for the external record store, the sole
// source of truth for tracked requests. The store is an opaque REST
// collaborator; this client covers the four operations the bot needs
// and nothing else.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/davidahmann/intake/pkg/types"
)

var (
	// ErrNotFound reports a fetch of an identifier the store does not have.
	ErrNotFound = errors.New("record not found")
	// ErrTimeout reports a call that exceeded the per-call deadline. It
	// is surfaced to the user distinctly because it usually means the
	// backing service is degraded, not that the request was wrong.
	ErrTimeout = errors.New("record store timed out")
)

// callTimeout bounds every query and mutation against the store.
const callTimeout = 10 * time.Second

// maxPageSize is the store-side cap on query page sizes.
const maxPageSize = 10

// Client is a bearer-token REST client for the record store.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// Query lists records of a collection matching q, sorted most recently
// edited first. PageSize is clamped to the store's cap.
func (c *Client) Query(ctx context.Context, collection string, q types.RecordQuery) ([]types.Record, error) {
	if q.PageSize <= 0 || q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	payload := struct {
		types.RecordQuery
		Sort string `json:"sort"`
	}{q, "last_edited_desc"}
	var resp struct {
		Records []types.Record `json:"records"`
	}
	path := "/v1/collections/" + collection + "/query"
	if err := c.do(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// FetchByID fetches one record by its store-assigned identifier.
func (c *Client) FetchByID(ctx context.Context, collection, id string) (types.Record, error) {
	var rec types.Record
	path := "/v1/collections/" + collection + "/records/" + id
	if err := c.do(ctx, http.MethodGet, path, nil, &rec); err != nil {
		return types.Record{}, err
	}
	return rec, nil
}

// Create adds a new record and returns it with the assigned identifier.
func (c *Client) Create(ctx context.Context, collection string, draft types.RecordDraft) (types.Record, error) {
	var rec types.Record
	path := "/v1/collections/" + collection + "/records"
	if err := c.do(ctx, http.MethodPost, path, draft, &rec); err != nil {
		return types.Record{}, err
	}
	return rec, nil
}

// UpdateStatus mutates a record's status field. Nothing else is ever
// mutated; last writer wins.
func (c *Client) UpdateStatus(ctx context.Context, collection, id, status string) error {
	payload := map[string]string{"status": status}
	path := "/v1/collections/" + collection + "/records/" + id
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	res, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("store %s %s: status %d: %s", method, path, res.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
