package collectednotes

import (
	"context"
	"fmt"
	"net/http"
)

// SearchService handles free-text search across a site's notes.
type SearchService struct {
	client *Client
}

// Notes searches a site's notes for the given term. The term is URI
// encoded as-is; paging and visibility filtering follow ListOptions.
func (s *SearchService) Notes(ctx context.Context, siteID int64, term string, opts *ListOptions) ([]Note, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes/search", siteID))
	q := opts.values()
	q.Set("term", term)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var notes []Note
	err = s.client.do(req, &notes)
	return notes, err
}
