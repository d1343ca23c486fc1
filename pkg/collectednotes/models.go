package collectednotes

import "time"

// Visibility classifies who can reach a note.
type Visibility string

const (
	// VisibilityPrivate notes are visible only to the authenticated owner.
	VisibilityPrivate Visibility = "private"
	// VisibilityPublic notes are listed on the site.
	VisibilityPublic Visibility = "public"
	// VisibilityPublicUnlisted notes are reachable by direct link only.
	VisibilityPublicUnlisted Visibility = "public_unlisted"
	// VisibilityPublicSite notes are served through the API only when the
	// site has a custom domain configured.
	VisibilityPublicSite Visibility = "public_site"
)

// Valid reports whether v is one of the four documented values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityPublicUnlisted, VisibilityPublicSite:
		return true
	}
	return false
}

// Note is a single piece of content owned by a site and user. Notes are
// produced and owned by the service; the client never mutates one in place.
type Note struct {
	ID         int64      `json:"id"`
	SiteID     int64      `json:"site_id"`
	UserID     int64      `json:"user_id"`
	Body       string     `json:"body"`
	Path       string     `json:"path"`
	Headline   string     `json:"headline"`
	Title      string     `json:"title"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Visibility Visibility `json:"visibility"`
	URL        string     `json:"url"`
	Poster     *string    `json:"poster"`
	Curated    bool       `json:"curated"`
	Ordering   int        `json:"ordering"`
}

// Site is a named collection of notes with its own publishing settings.
type Site struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Headline        string    `json:"headline"`
	About           string    `json:"about"`
	Host            *string   `json:"host"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	SitePath        string    `json:"site_path"`
	Published       bool      `json:"published"`
	TinyLetter      string    `json:"tinyletter"`
	Domain          string    `json:"domain"`
	WebhookURL      string    `json:"webhook_url"`
	PaymentPlatform *string   `json:"payment_platform"`
	IsPremium       bool      `json:"is_premium"`
	TotalNotes      int       `json:"total_notes"`
}

// User is the account that owns sites and notes.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Banned    bool      `json:"banned"`
	AvatarKey string    `json:"avatar_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link is a hyperlink the service extracted from a note's body.
type Link struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"` // "internal" or "external"
	Host      string    `json:"host"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SitePage pairs a site with one page of its notes, as served by the
// public site endpoint. The page size is decided by the service; callers
// paginate by re-requesting with an incremented page until the note list
// comes back empty.
type SitePage struct {
	Site  Site   `json:"site"`
	Notes []Note `json:"notes"`
}

// NoteWithBody pairs a note with its HTML body as rendered by the service.
type NoteWithBody struct {
	Note Note   `json:"note"`
	Body string `json:"body"`
}

// noteParams is the request payload for note creation and updates.
type noteParams struct {
	Body       string     `json:"body"`
	Visibility Visibility `json:"visibility"`
}

// CreateSiteParams is the request payload for creating a site.
type CreateSiteParams struct {
	Name     string `json:"name"`
	Headline string `json:"headline,omitempty"`
	About    string `json:"about,omitempty"`
	SitePath string `json:"site_path,omitempty"`
}
