package collectednotes

import (
	"context"
	"sync"
)

// The package-level read helpers share one credential-less client, so
// fetching public content needs no client construction at all.
var defaultPublic = sync.OnceValue(func() *Client {
	c, err := NewPublicClient()
	if err != nil {
		// DefaultBaseURL is a valid constant; parsing it cannot fail.
		panic(err)
	}
	return c
})

// Read fetches one public note as a typed structure.
func Read(ctx context.Context, sitePath, notePath string) (*Note, error) {
	return defaultPublic().Notes.Get(ctx, sitePath, notePath)
}

// ReadMarkdown fetches one public note's raw markdown source.
func ReadMarkdown(ctx context.Context, sitePath, notePath string) (string, error) {
	return defaultPublic().Notes.GetMarkdown(ctx, sitePath, notePath)
}

// ReadText fetches one public note as plain text.
func ReadText(ctx context.Context, sitePath, notePath string) (string, error) {
	return defaultPublic().Notes.GetText(ctx, sitePath, notePath)
}

// GetSite fetches a site's metadata plus one page of its public notes.
func GetSite(ctx context.Context, sitePath string, opts *SitePageOptions) (*SitePage, error) {
	return defaultPublic().Sites.Get(ctx, sitePath, opts)
}
