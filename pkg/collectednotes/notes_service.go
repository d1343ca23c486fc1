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

// NotesService handles reading and writing notes.
type NotesService struct {
	client *Client
}

// ListOptions narrows paginated note listings. The zero value (or nil)
// means page 1 with no visibility filter.
type ListOptions struct {
	Page       int
	Visibility Visibility
}

func (o *ListOptions) values() url.Values {
	v := url.Values{}
	page := 1
	if o != nil && o.Page > 0 {
		page = o.Page
	}
	v.Set("page", strconv.Itoa(page))
	if o != nil && o.Visibility != "" {
		v.Set("visibility", string(o.Visibility))
	}
	return v
}

// Get fetches one public note as a typed structure.
func (s *NotesService) Get(ctx context.Context, sitePath, notePath string) (*Note, error) {
	u := s.client.endpoint(fmt.Sprintf("%s/%s.json", sitePath, notePath))
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var note Note
	err = s.client.do(req, &note)
	return &note, err
}

// GetMarkdown fetches one public note's raw markdown source, byte for byte.
func (s *NotesService) GetMarkdown(ctx context.Context, sitePath, notePath string) (string, error) {
	return s.getRaw(ctx, sitePath, notePath, "md")
}

// GetText fetches one public note as plain text, byte for byte.
func (s *NotesService) GetText(ctx context.Context, sitePath, notePath string) (string, error) {
	return s.getRaw(ctx, sitePath, notePath, "text")
}

func (s *NotesService) getRaw(ctx context.Context, sitePath, notePath, ext string) (string, error) {
	u := s.client.endpoint(fmt.Sprintf("%s/%s.%s", sitePath, notePath, ext))
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return "", err
	}

	var content string
	err = s.client.do(req, &content)
	return content, err
}

// Latest lists one page of a site's notes, private and unlisted ones
// included. opts may be nil for page 1 with no visibility filter.
func (s *NotesService) Latest(ctx context.Context, siteID int64, opts *ListOptions) ([]Note, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes", siteID))
	u.RawQuery = opts.values().Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var notes []Note
	err = s.client.do(req, &notes)
	return notes, err
}

// Create publishes a new note. A zero siteID targets the account's first
// site. The body must start with a markdown heading so the service can
// derive a title and URL slug; an empty visibility defaults to private.
// Validation failures are reported before any request is made.
func (s *NotesService) Create(ctx context.Context, siteID int64, body string, visibility Visibility) (*Note, error) {
	path := "notes/add"
	if siteID != 0 {
		path = fmt.Sprintf("sites/%d/notes", siteID)
	}
	return s.sendNote(ctx, path, body, visibility)
}

// Update replaces an existing note's body and visibility. The service
// responds with the freshly served note. Same validation rule as Create.
func (s *NotesService) Update(ctx context.Context, siteID, noteID int64, body string, visibility Visibility) (*Note, error) {
	return s.sendNote(ctx, fmt.Sprintf("sites/%d/notes/%d", siteID, noteID), body, visibility)
}

func (s *NotesService) sendNote(ctx context.Context, path, body string, visibility Visibility) (*Note, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}
	if err := validateNoteBody(body); err != nil {
		return nil, err
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, &ValidationError{Field: "visibility", Reason: fmt.Sprintf("unknown value %q", visibility)}
	}

	payload, err := json.Marshal(struct {
		Note noteParams `json:"note"`
	}{Note: noteParams{Body: body, Visibility: visibility}})
	if err != nil {
		return nil, err
	}

	u := s.client.endpoint(path)
	req, err := http.NewRequestWithContext(ctx, "POST", u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var note Note
	err = s.client.do(req, &note)
	return &note, err
}

// Destroy deletes a note. The raw response is returned rather than a
// parsed body so the caller can branch on status; deletion is idempotent
// at the resource level.
func (s *NotesService) Destroy(ctx context.Context, siteID, noteID int64) (*Response, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes/%d", siteID, noteID))
	req, err := http.NewRequestWithContext(ctx, "DELETE", u.String(), nil)
	if err != nil {
		return nil, err
	}

	return s.client.doRaw(req)
}

// Reorder persists a new ordering for a site's notes and returns the
// order as stored. The service is expected to apply the order as given,
// so the result normally equals ids.
func (s *NotesService) Reorder(ctx context.Context, siteID int64, ids []int64) ([]int64, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids})
	if err != nil {
		return nil, err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes/reorder", siteID))
	req, err := http.NewRequestWithContext(ctx, "POST", u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var ordered []int64
	err = s.client.do(req, &ordered)
	return ordered, err
}

// Body fetches a note together with its HTML body as rendered by the
// service.
func (s *NotesService) Body(ctx context.Context, siteID, noteID int64) (*NoteWithBody, error) {
	if err := s.client.requireAuth(); err != nil {
		return nil, err
	}

	u := s.client.endpoint(fmt.Sprintf("sites/%d/notes/%d/body", siteID, noteID))
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	var nb NoteWithBody
	err = s.client.do(req, &nb)
	return &nb, err
}
