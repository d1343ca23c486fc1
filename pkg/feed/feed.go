// Package feed composes several Collected Notes API calls into a JSON Feed
// (https://jsonfeed.org/version/1.1) document for a site.
//
// Generation is a plain fan-out: the site page and the account profile are
// fetched concurrently, then every note's rendered body is fetched
// concurrently. One failing sub-request fails the whole generation.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/collectednotes/collectednotes-go/pkg/collectednotes"
	"golang.org/x/sync/errgroup"
)

// Generator renders feeds for one site through an authenticated client.
type Generator struct {
	client   *collectednotes.Client
	sitePath string
}

// NewGenerator creates a feed generator for the given site path. The
// client must be authenticated: rendered note bodies and the author
// profile are only served to the account owner.
func NewGenerator(client *collectednotes.Client, sitePath string) *Generator {
	return &Generator{client: client, sitePath: sitePath}
}

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	HomePageURL string         `json:"home_page_url"`
	FeedURL     string         `json:"feed_url"`
	Authors     []jsonAuthor   `json:"authors,omitempty"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonAuthor struct {
	Name string `json:"name"`
}

type jsonFeedItem struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	ContentHTML   string `json:"content_html"`
	DatePublished string `json:"date_published"`
	DateModified  string `json:"date_modified"`
}

// JSONFeed fetches the site's first page of public notes and renders them
// as a JSON Feed document. Note order on the page is preserved in the
// feed items.
func (g *Generator) JSONFeed(ctx context.Context) (string, error) {
	var (
		page *collectednotes.SitePage
		user *collectednotes.User
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		page, err = g.client.Sites.Get(egCtx, g.sitePath, nil)
		return err
	})
	eg.Go(func() error {
		var err error
		user, err = g.client.Accounts.Me(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return "", fmt.Errorf("fetching site %s: %w", g.sitePath, err)
	}

	bodies := make([]*collectednotes.NoteWithBody, len(page.Notes))
	eg, egCtx = errgroup.WithContext(ctx)
	for i, note := range page.Notes {
		eg.Go(func() error {
			var err error
			bodies[i], err = g.client.Notes.Body(egCtx, page.Site.ID, note.ID)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return "", fmt.Errorf("fetching note bodies for %s: %w", g.sitePath, err)
	}

	homeURL := fmt.Sprintf("%s/%s", collectednotes.DefaultBaseURL, page.Site.SitePath)
	f := jsonFeed{
		Version:     "https://jsonfeed.org/version/1.1",
		Title:       page.Site.Name,
		Description: page.Site.Headline,
		HomePageURL: homeURL,
		FeedURL:     homeURL + "/feed.json",
		Authors:     []jsonAuthor{{Name: user.Name}},
		Items:       make([]jsonFeedItem, len(page.Notes)),
	}
	for i, note := range page.Notes {
		f.Items[i] = jsonFeedItem{
			ID:            note.URL,
			URL:           note.URL,
			Title:         note.Title,
			ContentHTML:   bodies[i].Body,
			DatePublished: note.CreatedAt.Format(time.RFC3339),
			DateModified:  note.UpdatedAt.Format(time.RFC3339),
		}
	}

	out, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
