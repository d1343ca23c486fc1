package collectednotes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Collected Notes endpoint.
const DefaultBaseURL = "https://collectednotes.com"

// Client is the main entry point for the Collected Notes API client.
type Client struct {
	baseURL *url.URL
	email   string
	token   string
	http    *http.Client

	// Services
	Notes    *NotesService
	Sites    *SitesService
	Search   *SearchService
	Links    *LinksService
	Accounts *AccountsService
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// NewClient creates a client bound to the given account credentials. The
// token comes from the account settings page; it is sent verbatim together
// with the email on every authenticated request.
func NewClient(email, token string, opts ...Option) (*Client, error) {
	c, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	c.email = email
	c.token = token
	return c, nil
}

// NewPublicClient creates a client without credentials. Only the public
// read endpoints (Notes.Get and friends, Sites.Get) will succeed;
// authenticated methods fail with ErrNoCredentials before any network call.
func NewPublicClient(opts ...Option) (*Client, error) {
	return newClient(opts)
}

func newClient(opts []Option) (*Client, error) {
	u, err := parseBaseURL(DefaultBaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.initializeServices()

	return c, nil
}

// WithBaseURL points the client at a different server (useful for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if u, err := parseBaseURL(baseURL); err == nil {
			c.baseURL = u
		}
	}
}

// A trailing slash makes relative references resolve under the base path.
func parseBaseURL(baseURL string) (*url.URL, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return url.Parse(baseURL)
}

// WithHTTPClient allows providing a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func (c *Client) initializeServices() {
	c.Notes = &NotesService{client: c}
	c.Sites = &SitesService{client: c}
	c.Search = &SearchService{client: c}
	c.Links = &LinksService{client: c}
	c.Accounts = &AccountsService{client: c}
}

// authenticated reports whether the client carries a credential pair.
func (c *Client) authenticated() bool {
	return c.email != "" && c.token != ""
}

// requireAuth guards methods that hit authenticated endpoints.
func (c *Client) requireAuth() error {
	if !c.authenticated() {
		return ErrNoCredentials
	}
	return nil
}

// endpoint resolves a path relative to the base URL.
func (c *Client) endpoint(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
}

func (c *Client) do(req *http.Request, v interface{}) error {
	if c.authenticated() {
		req.Header.Set("Authorization", fmt.Sprintf("%s %s", c.email, c.token))
	}
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return readAPIError(resp)
	}

	if v != nil {
		// specific handling for string response (raw content)
		if strPtr, ok := v.(*string); ok {
			bodyBytes, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			*strPtr = string(bodyBytes)
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// doRaw executes a request and hands the full response surface back to the
// caller without touching the status code. Used by Notes.Destroy, whose
// contract is that the caller inspects success themselves.
func (c *Client) doRaw(req *http.Request) (*Response, error) {
	if c.authenticated() {
		req.Header.Set("Authorization", fmt.Sprintf("%s %s", c.email, c.token))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}

// Response is the raw outcome of a request whose body the API does not
// guarantee to be JSON (it may be empty).
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
