// Package notion implements the client for the two Notion API calls the sync
// engine depends on: creating a page under a parent page, and appending
// content blocks to a page.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sidkik/notion-mirror/pkg/errors"
)

const (
	defaultBaseURL = "https://api.notion.com"

	// apiVersion is sent in the Notion-Version header. The block and page
	// payloads in this package are written against this version.
	apiVersion = "2022-06-28"

	requestTimeout = 30 * time.Second

	// maxBlocksPerRequest is the hard server-side limit on the number of
	// blocks accepted in one append call. The sync engine batches well below
	// this, but the client refuses to send a request that's guaranteed to be
	// rejected.
	maxBlocksPerRequest = 100

	// defaultWriteInterval spaces out successive write calls so that a large
	// tree doesn't trip Notion's rate limit (an average of 3 requests per
	// second). This is pacing, not retry: a rejected call is still returned
	// to the caller as an error.
	defaultWriteInterval = 350 * time.Millisecond
)

// Client is the interface for creating pages and appending content in the
// remote Notion workspace.
//
// Neither call is idempotent. If a caller (or an intermediary) retries a
// CreatePage call whose response was lost, a duplicate page may result; the
// sync engine assumes at most one logical create per directory entry and
// cannot enforce exactly-once delivery on top of this interface.
type Client interface {
	// CreatePage creates a new page titled title under the parent page and
	// returns the new page's ID.
	CreatePage(ctx context.Context, parentID, title string) (string, error)

	// AppendBlocks appends the given blocks to the end of the page. It must
	// be called with at least one block and at most the server's per-request
	// maximum.
	AppendBlocks(ctx context.Context, pageID string, blocks []Block) error
}

// Options tweaks the client's behavior. The zero value selects production
// defaults; tests override the base URL and clock.
type Options struct {
	BaseURL       string
	HTTPClient    *http.Client
	Clock         clockwork.Clock
	WriteInterval *time.Duration
}

type client struct {
	token   string
	baseURL string
	http    *http.Client

	clock         clockwork.Clock
	writeInterval time.Duration
	lastWrite     time.Time
}

// New returns a new Notion API client authenticated with the given token.
func New(token string, opts Options) (Client, error) {
	if token == "" {
		return nil, errors.MissingFieldError{Field: "token"}
	}

	c := &client{
		token:         token,
		baseURL:       defaultBaseURL,
		http:          http.DefaultClient,
		clock:         clockwork.NewRealClock(),
		writeInterval: defaultWriteInterval,
	}
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		c.http = opts.HTTPClient
	}
	if opts.Clock != nil {
		c.clock = opts.Clock
	}
	if opts.WriteInterval != nil {
		c.writeInterval = *opts.WriteInterval
	}
	return c, nil
}

// APIError represents a request that Notion rejected (auth failure, invalid
// parent, rate limit, and so on).
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (err APIError) Error() string {
	return fmt.Sprintf("notion API error (status %d, code %q): %s",
		err.StatusCode, err.Code, err.Message)
}

type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type pageParent struct {
	PageID string `json:"page_id"`
}

type pageProperties struct {
	Title []richText `json:"title"`
}

type createPageResponse struct {
	ID string `json:"id"`
}

func (c *client) CreatePage(ctx context.Context, parentID, title string) (string, error) {
	req := createPageRequest{
		Parent: pageParent{PageID: parentID},
		Properties: pageProperties{
			Title: []richText{{
				Type: "text",
				Text: textContent{Content: title},
			}},
		},
	}

	var resp createPageResponse
	if err := c.do(ctx, "POST", "/v1/pages", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("server response is missing the page ID")
	}
	return resp.ID, nil
}

type appendBlocksRequest struct {
	Children []Block `json:"children"`
}

func (c *client) AppendBlocks(ctx context.Context, pageID string, blocks []Block) error {
	if len(blocks) == 0 {
		return errors.New("refusing to append an empty block batch")
	}
	if len(blocks) > maxBlocksPerRequest {
		return errors.New("batch of %d blocks exceeds the per-request maximum of %d",
			len(blocks), maxBlocksPerRequest)
	}

	path := fmt.Sprintf("/v1/blocks/%s/children", pageID)
	return c.do(ctx, "PATCH", path, appendBlocksRequest{Children: blocks}, nil)
}

// do sends one paced write call and decodes the response into respBody (when
// non-nil). Non-2xx responses are returned as APIErrors.
func (c *client) do(ctx context.Context, method, path string, reqBody, respBody interface{}) error {
	c.pace()

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return errors.WithContext(err, "marshal request")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return errors.WithContext(err, "create request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WithContext(err, "send request")
	}
	defer resp.Body.Close()

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.WithContext(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := APIError{StatusCode: resp.StatusCode}
		// The error body is best effort. Even if it isn't the documented
		// shape, the status code makes the error actionable.
		json.Unmarshal(respBytes, &apiErr)
		return apiErr
	}

	if respBody != nil {
		if err := json.Unmarshal(respBytes, respBody); err != nil {
			return errors.WithContext(err, "parse response")
		}
	}
	return nil
}

// pace sleeps just long enough to keep successive writes at least
// writeInterval apart.
func (c *client) pace() {
	if c.writeInterval == 0 {
		return
	}

	if !c.lastWrite.IsZero() {
		if elapsed := c.clock.Now().Sub(c.lastWrite); elapsed < c.writeInterval {
			c.clock.Sleep(c.writeInterval - elapsed)
		}
	}
	c.lastWrite = c.clock.Now()
}
