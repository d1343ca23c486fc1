package collectednotes

import (
	"context"
	"net/http"
)

// AccountsService handles account-level endpoints.
type AccountsService struct {
	client *Client
}

// Me returns the authenticated user's profile.
func (s *AccountsService) Me(ctx context.Context) (*User, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint("accounts/me")
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var user User
	err = s.client.do(req, &user)
	return &user, err
}
