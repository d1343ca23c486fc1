package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collectednotes/collectednotes-go/pkg/collectednotes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedTestNote(id int64) string {
	return fmt.Sprintf(`{
		"id": %d,
		"site_id": 1,
		"user_id": 1,
		"body": "# Note %d",
		"path": "note-%d",
		"title": "Note %d",
		"created_at": "2020-01-05T23:11:54.000Z",
		"updated_at": "2020-01-05T23:12:06.000Z",
		"visibility": "public",
		"url": "https://collectednotes.com/blog/note-%d"
	}`, id, id, id, id, id)
}

func newFeedServer(t *testing.T, failBodyID int64) *collectednotes.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/blog.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"site": {"id": 1, "name": "Blog", "headline": "Words", "site_path": "blog"}, "notes": [%s, %s]}`,
			feedTestNote(1), feedTestNote(2))
	})
	mux.HandleFunc("/accounts/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1, "email": "author@example.com", "name": "Author"}`)
	})
	for _, id := range []int64{1, 2} {
		mux.HandleFunc(fmt.Sprintf("/sites/1/notes/%d/body", id), func(w http.ResponseWriter, r *http.Request) {
			if id == failBodyID {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			fmt.Fprintf(w, `{"note": %s, "body": "<h1>Note %d</h1>"}`, feedTestNote(id), id)
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := collectednotes.NewClient("author@example.com", "token", collectednotes.WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestGenerator_JSONFeed(t *testing.T) {
	client := newFeedServer(t, 0)

	out, err := NewGenerator(client, "blog").JSONFeed(context.Background())
	require.NoError(t, err)

	var f struct {
		Version string `json:"version"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Items []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			ContentHTML string `json:"content_html"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &f))

	assert.Equal(t, "https://jsonfeed.org/version/1.1", f.Version)
	assert.Equal(t, "Blog", f.Title)
	require.Len(t, f.Authors, 1)
	assert.Equal(t, "Author", f.Authors[0].Name)

	// item order follows the site page
	require.Len(t, f.Items, 2)
	assert.Equal(t, "Note 1", f.Items[0].Title)
	assert.Equal(t, "<h1>Note 1</h1>", f.Items[0].ContentHTML)
	assert.Equal(t, "Note 2", f.Items[1].Title)
}

func TestGenerator_JSONFeed_FailsWholeOnSubRequestError(t *testing.T) {
	client := newFeedServer(t, 2)

	_, err := NewGenerator(client, "blog").JSONFeed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note bodies")
}
