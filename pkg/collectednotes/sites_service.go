package collectednotes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SitesService handles site metadata and public site pages.
type SitesService struct {
	client *Client
}

// SitePageOptions narrows the public site listing. The zero value (or nil)
// means page 1 with public visibility.
type SitePageOptions struct {
	Page       int
	Visibility Visibility
}

// Get fetches a site's metadata plus one page of its public notes. No
// credentials are needed. The visibility filter is constrained to public
// and public_site; anything else is rejected before the request is made.
func (s *SitesService) Get(ctx context.Context, sitePath string, opts *SitePageOptions) (*SitePage, error) {
	page := 1
	visibility := VisibilityPublic
	if opts != nil {
		if opts.Page > 0 {
			page = opts.Page
		}
		if opts.Visibility != "" {
			visibility = opts.Visibility
		}
	}
	if visibility != VisibilityPublic && visibility != VisibilityPublicSite {
		return nil, &ValidationError{
			Field:  "visibility",
			Reason: fmt.Sprintf("public site pages accept public or public_site, got %q", visibility),
		}
	}

	u := s.client.endpoint(sitePath + ".json")
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("visibility", string(visibility))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var sp SitePage
	err = s.client.do(req, &sp)
	return &sp, err
}

// List returns every site owned by the authenticated user.
func (s *SitesService) List(ctx context.Context) ([]Site, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint("sites")
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var sites []Site
	err = s.client.do(req, &sites)
	return sites, err
}

// Create registers a new site under the authenticated account.
func (s *SitesService) Create(ctx context.Context, params CreateSiteParams) (*Site, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "site name is required"}
	}

	payload, err := json.Marshal(struct {
		Site CreateSiteParams `json:"site"`
	}{Site: params})
	if err != nil {
		return nil, err
	}

	u := s.client.endpoint("sites")
	req, err := http.NewRequestWithContext(ctx, "POST", u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var site Site
	err = s.client.do(req, &site)
	return &site, err
}
