// Package bodhi queries the Fedora update system.
package bodhi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/obentoo/fedora-feedback/internal/common/logger"
	"github.com/obentoo/fedora-feedback/internal/common/version"
)

// ErrRemoteService is matched by every failed Bodhi query
var ErrRemoteService = errors.New("bodhi query failed")

const (
	// DefaultBaseURL is the production Bodhi instance
	DefaultBaseURL = "https://bodhi.fedoraproject.org"
	// DefaultRowsPerPage is the page size requested from Bodhi (its maximum)
	DefaultRowsPerPage = 100

	StatusTesting = "testing"
	ContentRPM    = "rpm"
)

// Query selects updates server-side
type Query struct {
	Releases    []string
	Status      string
	ContentType string
}

// TestingQuery returns the query for RPM updates in testing for a release
func TestingQuery(release string) Query {
	return Query{
		Releases:    []string{release},
		Status:      StatusTesting,
		ContentType: ContentRPM,
	}
}

// values encodes the query for one page
func (q Query) values(page, rowsPerPage int) url.Values {
	v := url.Values{}
	for _, r := range q.Releases {
		v.Add("releases", r)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.ContentType != "" {
		v.Set("content_type", q.ContentType)
	}
	v.Set("rows_per_page", strconv.Itoa(rowsPerPage))
	v.Set("page", strconv.Itoa(page))
	return v
}

// Client handles communication with the Bodhi REST API
type Client struct {
	BaseURL     string
	UserAgent   string
	RowsPerPage int
	HTTPClient  *RetryableHTTPClient
}

// NewClientWithOptions creates a client for baseURL with custom retry behavior
func NewClientWithOptions(baseURL string, retry RetryConfig) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		UserAgent:   version.UserAgent(),
		RowsPerPage: DefaultRowsPerPage,
		HTTPClient:  NewRetryableHTTPClient(retry),
	}
}

// QueryUpdates fetches every update matching q, following pagination.
func (c *Client) QueryUpdates(ctx context.Context, q Query) ([]Update, error) {
	var updates []Update

	for page := 1; ; page++ {
		result, err := c.fetchPage(ctx, q, page)
		if err != nil {
			return nil, err
		}
		updates = append(updates, result.Updates...)
		logger.Debug("bodhi: page %d/%d, %d updates", result.Page, result.Pages, len(result.Updates))

		if result.Pages <= page || len(result.Updates) == 0 {
			break
		}
	}

	return updates, nil
}

// fetchPage fetches one page of updates
func (c *Client) fetchPage(ctx context.Context, q Query, page int) (*updatesPage, error) {
	endpoint := c.BaseURL + "/updates/?" + q.values(page, c.rowsPerPage()).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrRemoteService, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemoteService, resp.StatusCode, describeError(body))
	}

	var result updatesPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrRemoteService, err)
	}
	return &result, nil
}

func (c *Client) rowsPerPage() int {
	if c.RowsPerPage <= 0 {
		return DefaultRowsPerPage
	}
	return c.RowsPerPage
}

// describeError extracts Bodhi's error descriptions from a response body
func describeError(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
		msgs := make([]string, 0, len(eb.Errors))
		for _, e := range eb.Errors {
			msgs = append(msgs, e.Description)
		}
		return strings.Join(msgs, "; ")
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
