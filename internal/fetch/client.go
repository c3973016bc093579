// Package fetch downloads raw upstream JSON into the JSON store.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/store"
)

type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	BaseURL      string
	UserAgent    string
	Sleep        time.Duration
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool
	Logger       *zap.Logger
}

func NewClient(st *store.JSONStore, baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:        &http.Client{Timeout: 20 * time.Second},
		Store:       st,
		BaseURL:     baseURL,
		UserAgent:   "hoops-draft/1.0",
		Sleep:       250 * time.Millisecond,
		PrettyWrite: true,
		UseCache:    true,
		Logger:      logger,
	}
}

// FetchRaw downloads urlPath (relative to BaseURL) and writes it to relPath.
// Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if body, ok, err := c.cached(relPath, force); ok || err != nil {
		return body, err
	}
	body, err := c.get(ctx, urlPath)
	if err != nil {
		return nil, err
	}
	if err := c.write(relPath, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) cached(relPath string, force bool) ([]byte, bool, error) {
	if force || !c.UseCache || !c.Store.Exists(relPath) {
		return nil, false, nil
	}
	c.Logger.Debug("fetch cache hit", zap.String("path", relPath))
	body, err := c.Store.ReadRaw(relPath)
	return body, true, err
}

func (c *Client) write(relPath string, body []byte) error {
	if c.DisableWrite {
		return nil
	}
	return c.Store.WriteRaw(relPath, body, c.PrettyWrite)
}

func (c *Client) get(ctx context.Context, urlPath string) ([]byte, error) {
	if c.Sleep > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Sleep):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", urlPath, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}
	c.Logger.Info("fetched",
		zap.String("url", c.BaseURL+urlPath),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}
