// Package supabase is a stateless PostgREST client for the planner's
// remote backend. It translates entity collections to and from row
// payloads, resolves the tag/project display-name joins on the read path
// and performs id-keyed upserts on the write path.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Body)
}

// Config holds the backend endpoint and credential.
type Config struct {
	URL string // project base URL, e.g. https://xxxx.supabase.co
	Key string // anon key; sent as both apikey and bearer credential
}

// Client talks to the PostgREST surface of one Supabase project. It keeps
// no state beyond the HTTP client and is safe for concurrent use.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a client for the given project. A nil logger disables
// request logging.
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.URL,
		key:        cfg.Key,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// request builds a PostgREST request for /rest/v1/<path>. The path
// includes the table name and any query string.
func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("request failed", req, logger.F("error", err))
		return nil, fmt.Errorf("supabase: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: read response: %w", err)
	}

	c.logf("request done", req,
		logger.F("status", resp.StatusCode),
		logger.F("duration", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// get fetches rows and decodes the JSON array into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("supabase: decode %s: %w", path, err)
	}
	return nil
}

// upsert posts a JSON array of rows with merge-duplicates semantics.
// The path must carry the on_conflict=id parameter.
func (c *Client) upsert(ctx context.Context, path string, rows interface{}) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("supabase: encode %s: %w", path, err)
	}
	req, err := c.request(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")
	_, err = c.do(req)
	return err
}

// deleteWhere deletes rows matching the filter in path.
func (c *Client) deleteWhere(ctx context.Context, path string) error {
	req, err := c.request(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// FetchIDs returns the identifier set of a table. Used by the conflict
// check, which only needs ids, not full rows.
func (c *Client) FetchIDs(ctx context.Context, table string) ([]int64, error) {
	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := c.get(ctx, table+"?select=id", &rows); err != nil {
		return nil, err
	}
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids, nil
}

func (c *Client) logf(msg string, req *http.Request, fields ...logger.Field) {
	if c.log == nil {
		return
	}
	all := append([]logger.Field{
		logger.F("method", req.Method),
		logger.F("path", req.URL.Path),
		logger.F("requestID", req.Header.Get("X-Request-ID")),
	}, fields...)
	c.log.Debug(msg, all...)
}

// nameRef is the embedded join object PostgREST returns for
// tags(name) / projects(name) selections.
type nameRef struct {
	Name string `json:"name"`
}
