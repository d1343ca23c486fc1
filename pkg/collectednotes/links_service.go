package collectednotes

import (
	"context"
	"fmt"
	"net/http"
)

// LinksService exposes the hyperlinks the service extracted from a note.
type LinksService struct {
	client *Client
}

// List returns the extracted links as structured entities.
func (s *LinksService) List(ctx context.Context, siteID, noteID int64) ([]Link, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes/%d/links.json", siteID, noteID))
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var links []Link
	err = s.client.do(req, &links)
	return links, err
}

// HTML returns the extracted links as a pre-rendered HTML fragment.
func (s *LinksService) HTML(ctx context.Context, siteID, noteID int64) (string, error) {
	if err := s.client.requireAuth(); err != nil {
		return "", err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes/%d/links", siteID, noteID))
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return "", err
	}

	var fragment string
	err = s.client.do(req, &fragment)
	return fragment, err
}
