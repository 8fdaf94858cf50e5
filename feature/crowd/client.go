package crowd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 8 << 20

var (
	// ErrInvalidResponse is returned when a read answers with something other
	// than the expected JSON.
	ErrInvalidResponse = errors.New("size database response invalid")
	// ErrWriteRejected is returned when an add or update is not accepted.
	ErrWriteRejected = errors.New("size database rejected write")
)

// Database defines the operations of the crowd size database.
type Database interface {
	// LookupSizes returns the records of the given appids that exist.
	LookupSizes(ctx context.Context, appids []int) ([]reconcile.CrowdSizeRecord, error)
	// GetSize returns the record of one appid, or nil if there is none.
	GetSize(ctx context.Context, appid int) (*reconcile.CrowdSizeRecord, error)
	// AddSize creates a record.
	AddSize(ctx context.Context, appid int, size int64, name string) error
	// UpdateSize replaces the size of an existing record.
	UpdateSize(ctx context.Context, appid int, size int64, name string) error
}

var (
	_ Database             = (*Client)(nil)
	_ reconcile.SizeLookup = (*Client)(nil)
	_ reconcile.Writer     = (*Client)(nil)
)

// lookupRequest is the body of a batched lookup.
type lookupRequest struct {
	IDs []int `json:"ids"`
}

// Client talks to the crowd size database over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a crowd size database client.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// LookupSizes fetches the records of a batch of appids in one request.
// Batching across many appids is done by reconcile.LookupAll.
func (c *Client) LookupSizes(ctx context.Context, appids []int) ([]reconcile.CrowdSizeRecord, error) {
	payload, err := json.Marshal(lookupRequest{IDs: appids})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup: %w", err)
	}

	resp, body, err := c.do(ctx, http.MethodGet, c.baseURL+"/apps", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: expected data, received %s: %s", ErrInvalidResponse, resp.Status, snippet(body))
	}

	var records []reconcile.CrowdSizeRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: expected data, received: %s", ErrInvalidResponse, snippet(body))
	}

	c.logger.Debug("Crowd lookup", zap.Int("requested", len(appids)), zap.Int("found", len(records)))
	return records, nil
}

// GetSize fetches the record of a single appid. A 404 means there is no
// record and is not an error.
func (c *Client) GetSize(ctx context.Context, appid int) (*reconcile.CrowdSizeRecord, error) {
	resp, body, err := c.do(ctx, http.MethodGet, c.appURL(appid, nil), nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: expected data, received %s: %s", ErrInvalidResponse, resp.Status, snippet(body))
	}

	var record reconcile.CrowdSizeRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: expected data, received: %s", ErrInvalidResponse, snippet(body))
	}
	if record.AppID == 0 {
		record.AppID = appid
	}
	return &record, nil
}

// AddSize creates the record of an appid seen for the first time.
func (c *Client) AddSize(ctx context.Context, appid int, size int64, name string) error {
	return c.write(ctx, http.MethodPost, appid, size, name)
}

// UpdateSize replaces the size of an existing record.
func (c *Client) UpdateSize(ctx context.Context, appid int, size int64, name string) error {
	return c.write(ctx, http.MethodPut, appid, size, name)
}

func (c *Client) write(ctx context.Context, method string, appid int, size int64, name string) error {
	params := url.Values{}
	params.Set("size", strconv.FormatInt(size, 10))
	params.Set("name", name)

	resp, body, err := c.do(ctx, method, c.appURL(appid, params), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %d returned %s: %s", ErrWriteRejected, method, appid, resp.Status, snippet(body))
	}

	c.logger.Debug("Crowd write", zap.String("method", method), zap.Int("appid", appid), zap.Int64("size", size))
	return nil
}

func (c *Client) appURL(appid int, params url.Values) string {
	u := c.baseURL + "/app/" + strconv.Itoa(appid)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// do performs a rate limited request and reads the whole body.
func (c *Client) do(ctx context.Context, method, target string, body io.Reader) (*http.Response, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("size database request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read size database response: %w", err)
	}

	return resp, data, nil
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
