package collectednotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noteJSON = `{
	"id": 1,
	"site_id": 1,
	"user_id": 1,
	"body": "# Suerte\nLa suerte de mi vida",
	"path": "suerte",
	"headline": "La suerte de mi vida",
	"title": "Suerte",
	"created_at": "2020-01-05T23:11:54.000Z",
	"updated_at": "2020-01-05T23:12:06.000Z",
	"visibility": "public",
	"url": "https://collectednotes.com/esacrosa/suerte",
	"poster": null,
	"curated": false,
	"ordering": 1
}`

func newTestClient(t *testing.T, handler http.Handler) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test@example.com", "test-token", WithBaseURL(server.URL))
	require.NoError(t, err)
	return server, client
}

func TestClient_Notes_Get(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa/suerte.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		fmt.Fprint(w, noteJSON)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewPublicClient(WithBaseURL(server.URL))
	require.NoError(t, err)

	note, err := client.Notes.Get(context.Background(), "esacrosa", "suerte")
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)
	assert.Equal(t, VisibilityPublic, note.Visibility)
	assert.Equal(t, "Suerte", note.Title)
	assert.Nil(t, note.Poster)
	assert.Equal(t, 2020, note.CreatedAt.Year())
}

func TestClient_Notes_Get_NoAuthHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa/suerte.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, noteJSON)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewPublicClient(WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Notes.Get(context.Background(), "esacrosa", "suerte")
	require.NoError(t, err)
}

func TestClient_Notes_GetMarkdown(t *testing.T) {
	raw := "# Suerte\nLa suerte de mi vida\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa/suerte.md", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		fmt.Fprint(w, raw)
	})
	_, client := newTestClient(t, mux)

	body, err := client.Notes.GetMarkdown(context.Background(), "esacrosa", "suerte")
	require.NoError(t, err)
	assert.Equal(t, raw, body)
}

func TestClient_Notes_GetText(t *testing.T) {
	raw := "Suerte\nLa suerte de mi vida\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa/suerte.text", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, raw)
	})
	_, client := newTestClient(t, mux)

	body, err := client.Notes.GetText(context.Background(), "esacrosa", "suerte")
	require.NoError(t, err)
	assert.Equal(t, raw, body)
}

func TestClient_Sites_Get_Defaults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "public", r.URL.Query().Get("visibility"))
		fmt.Fprintf(w, `{"site": {"id": 1, "site_path": "esacrosa"}, "notes": [%s]}`, noteJSON)
	})
	_, client := newTestClient(t, mux)

	page, err := client.Sites.Get(context.Background(), "esacrosa", nil)
	require.NoError(t, err)
	assert.Equal(t, "esacrosa", page.Site.SitePath)
	require.Len(t, page.Notes, 1)
	assert.Equal(t, int64(1), page.Notes[0].ID)
}

func TestClient_Sites_Get_VisibilityConstraint(t *testing.T) {
	var requests int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, client := newTestClient(t, mux)

	_, err := client.Sites.Get(context.Background(), "esacrosa", &SitePageOptions{Visibility: VisibilityPrivate})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "visibility", verr.Field)
	assert.Zero(t, requests)
}

func TestClient_Sites_List(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "test@example.com test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[{"id": 1, "name": "Blog", "site_path": "esacrosa", "total_notes": 3}]`)
	})
	_, client := newTestClient(t, mux)

	sites, err := client.Sites.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "Blog", sites[0].Name)
	assert.Equal(t, 3, sites[0].TotalNotes)
}

func TestClient_Sites_Create(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		var payload struct {
			Site CreateSiteParams `json:"site"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Notebook", payload.Site.Name)
		fmt.Fprint(w, `{"id": 2, "name": "Notebook", "site_path": "notebook"}`)
	})
	_, client := newTestClient(t, mux)

	site, err := client.Sites.Create(context.Background(), CreateSiteParams{Name: "Notebook"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), site.ID)
}

func TestClient_Notes_Latest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "private", r.URL.Query().Get("visibility"))
		fmt.Fprintf(w, `[%s]`, noteJSON)
	})
	_, client := newTestClient(t, mux)

	notes, err := client.Notes.Latest(context.Background(), 1, &ListOptions{Page: 2, Visibility: VisibilityPrivate})
	require.NoError(t, err)
	require.Len(t, notes, 1)
}

func TestClient_Notes_Create(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload struct {
			Note struct {
				Body       string     `json:"body"`
				Visibility Visibility `json:"visibility"`
			} `json:"note"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "# Hello", payload.Note.Body)
		assert.Equal(t, VisibilityPublic, payload.Note.Visibility)
		fmt.Fprint(w, noteJSON)
	})
	_, client := newTestClient(t, mux)

	note, err := client.Notes.Create(context.Background(), 1, "# Hello", VisibilityPublic)
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)
}

func TestClient_Notes_Create_FirstSite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/add", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		fmt.Fprint(w, noteJSON)
	})
	_, client := newTestClient(t, mux)

	_, err := client.Notes.Create(context.Background(), 0, "# Hello", VisibilityPrivate)
	require.NoError(t, err)
}

func TestClient_Notes_Create_ValidatesBodyBeforeNetwork(t *testing.T) {
	var requests int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, client := newTestClient(t, mux)

	_, err := client.Notes.Create(context.Background(), 1, "no heading here", VisibilityPublic)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "body", verr.Field)
	assert.Zero(t, requests)
}

func TestClient_Notes_Update(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/2", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		fmt.Fprint(w, noteJSON)
	})
	_, client := newTestClient(t, mux)

	note, err := client.Notes.Update(context.Background(), 1, 2, "# Updated", VisibilityPublic)
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)
}

func TestClient_Notes_Update_ValidatesBodyBeforeNetwork(t *testing.T) {
	var requests int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, client := newTestClient(t, mux)

	_, err := client.Notes.Update(context.Background(), 1, 2, "missing heading", VisibilityPublic)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, requests)
}

func TestClient_Notes_Destroy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/2", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusOK)
		// deliberately empty body
	})
	_, client := newTestClient(t, mux)

	resp, err := client.Notes.Destroy(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Empty(t, resp.Body)
}

func TestClient_Notes_Destroy_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, client := newTestClient(t, mux)

	resp, err := client.Notes.Destroy(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClient_Notes_Reorder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/reorder", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		var payload struct {
			IDs []int64 `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []int64{2, 3, 1}, payload.IDs)
		fmt.Fprint(w, `[2, 3, 1]`)
	})
	_, client := newTestClient(t, mux)

	ordered, err := client.Notes.Reorder(context.Background(), 1, []int64{2, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, ordered)
}

func TestClient_Notes_Body(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/2/body", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"note": %s, "body": "<h1>Suerte</h1>"}`, noteJSON)
	})
	_, client := newTestClient(t, mux)

	nb, err := client.Notes.Body(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nb.Note.ID)
	assert.Equal(t, "<h1>Suerte</h1>", nb.Body)
}

func TestClient_Search_Notes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "la suerte", r.URL.Query().Get("term"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		fmt.Fprintf(w, `[%s]`, noteJSON)
	})
	_, client := newTestClient(t, mux)

	notes, err := client.Search.Notes(context.Background(), 1, "la suerte", nil)
	require.NoError(t, err)
	require.Len(t, notes, 1)
}

func TestClient_Links_List(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/2/links.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 7, "note_id": 2, "url": "https://example.com", "kind": "external", "host": "example.com", "title": "Example"}]`)
	})
	_, client := newTestClient(t, mux)

	links, err := client.Links.List(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "external", links[0].Kind)
}

func TestClient_Links_HTML(t *testing.T) {
	fragment := `<ul><li><a href="https://example.com">Example</a></li></ul>`
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/1/notes/2/links", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fragment)
	})
	_, client := newTestClient(t, mux)

	html, err := client.Links.HTML(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, fragment, html)
}

func TestClient_Accounts_Me(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1, "email": "test@example.com", "name": "Test", "role": "basic", "banned": false}`)
	})
	_, client := newTestClient(t, mux)

	user, err := client.Accounts.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.Banned)
}

func TestClient_PublicClient_RequiresCredentials(t *testing.T) {
	var requests int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewPublicClient(WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Sites.List(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = client.Accounts.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)

	assert.Zero(t, requests)
}

func TestClient_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa/missing.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	_, client := newTestClient(t, mux)

	_, err := client.Notes.Get(context.Background(), "esacrosa", "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, apiErr.IsClientError())
}

func TestClient_DecodeError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esacrosa/broken.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": `)
	})
	_, client := newTestClient(t, mux)

	_, err := client.Notes.Get(context.Background(), "esacrosa", "broken")
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*APIError)))
}
