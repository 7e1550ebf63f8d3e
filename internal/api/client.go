// Package api is the EduSync backend integration layer. Each Client method
// performs exactly one HTTP round trip, shapes its payload into the wire
// format the endpoint expects, and reports failures as *Error values from a
// closed set of kinds.
//
// A Client holds only immutable configuration and is safe for concurrent use.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted EduSync backend.
const DefaultBaseURL = "https://backendprojectwebapp-c4azccb4dbbchsdc.centralindia-01.azurewebsites.net"

// ErrMissingID is wrapped by operations that need an id for the request path
// and were given an empty one. No request is sent in that case.
var ErrMissingID = errors.New("missing id")

// Config is built once at startup and never changes afterwards.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Headers are added to every request. Content-Type is always
	// application/json regardless of what is set here.
	Headers    http.Header
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client calls the EduSync REST backend.
type Client struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("api: base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q is not an absolute http(s) url", base)
	}

	headers := cfg.Headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	headers.Set("Content-Type", "application/json")
	if headers.Get("Accept") == "" {
		headers.Set("Accept", "application/json")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:    base,
		headers:    headers,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// BaseURL returns the backend root every path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one round trip.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
	// faultOn500 turns a 500 into KindServerFault instead of reading it as
	// a plain server message.
	faultOn500 bool
}

// do sends rc and decodes a 2xx body into out. out may be nil, and an empty
// body leaves out untouched.
func (c *Client) do(ctx context.Context, rc call, out interface{}) error {
	var body io.Reader
	if rc.body != nil {
		data, err := json.Marshal(rc.body)
		if err != nil {
			return unclassified(rc.op, 0, fmt.Errorf("encode: %w", err))
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL + rc.path
	if len(rc.query) > 0 {
		endpoint += "?" + rc.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, rc.method, endpoint, body)
	if err != nil {
		return unclassified(rc.op, 0, err)
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(rc.op, rc.faultOn500, 0, nil, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(rc.op, rc.faultOn500, resp.StatusCode, nil, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(rc.op, rc.faultOn500, resp.StatusCode, data, nil)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return unclassified(rc.op, resp.StatusCode, fmt.Errorf("decode: %w", err))
	}
	return nil
}

// requireID rejects an empty path id before anything is sent.
func requireID(op, name, id string) error {
	if strings.TrimSpace(id) == "" {
		return unclassified(op, 0, fmt.Errorf("%s: %w", name, ErrMissingID))
	}
	return nil
}

// pathID joins an escaped id onto prefix.
func pathID(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}

// logFailure writes the upstream body when there is one, the error otherwise.
func (c *Client) logFailure(what string, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		c.logger.Printf("%s failed: %s", what, apiErr.Body)
		return
	}
	c.logger.Printf("%s failed: %v", what, err)
}
