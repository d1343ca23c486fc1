package cnmcp

import (
	"context"
	"fmt"

	"github.com/collectednotes/collectednotes-go/pkg/collectednotes"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Helper to get arguments map
func getArgs(req mcp.CallToolRequest) map[string]interface{} {
	args, ok := req.Params.Arguments.(map[string]interface{})
	if !ok {
		return make(map[string]interface{})
	}
	return args
}

func listOptions(args map[string]interface{}) *collectednotes.ListOptions {
	opts := &collectednotes.ListOptions{}
	if page, ok := args["page"].(float64); ok {
		opts.Page = int(page)
	}
	if visibility, ok := args["visibility"].(string); ok {
		opts.Visibility = collectednotes.Visibility(visibility)
	}
	return opts
}

// ReadNoteTool returns the tool definition
func ReadNoteTool() mcp.Tool {
	return mcp.NewTool("cn_read_note",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("Read a public note from a Collected Notes site"),
		mcp.WithString("site", mcp.Required(), mcp.Description("Site path, e.g. 'blog'")),
		mcp.WithString("note", mcp.Required(), mcp.Description("Note path, e.g. 'my-first-note'")),
		mcp.WithString("format", mcp.Description("Response format: json (default), md, or text")),
	)
}

// ReadNoteHandler returns the tool handler
func ReadNoteHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		site, _ := args["site"].(string)
		note, _ := args["note"].(string)
		format, _ := args["format"].(string)

		switch format {
		case "md":
			body, err := client.Notes.GetMarkdown(ctx, site, note)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to read note: %v", err)), nil
			}
			return mcp.NewToolResultText(body), nil
		case "text":
			body, err := client.Notes.GetText(ctx, site, note)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to read note: %v", err)), nil
			}
			return mcp.NewToolResultText(body), nil
		default:
			n, err := client.Notes.Get(ctx, site, note)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to read note: %v", err)), nil
			}
			return mcp.NewToolResultJSON(n)
		}
	}
}

func RegisterReadNote(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(ReadNoteTool(), ReadNoteHandler(client))
}

// GetSiteTool returns the tool definition
func GetSiteTool() mcp.Tool {
	return mcp.NewTool("cn_get_site",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("Get a site's metadata plus one page of its public notes"),
		mcp.WithString("site", mcp.Required(), mcp.Description("Site path")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
		mcp.WithString("visibility", mcp.Description("Visibility filter: public (default) or public_site")),
	)
}

// GetSiteHandler returns the tool handler
func GetSiteHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		site, _ := args["site"].(string)

		opts := &collectednotes.SitePageOptions{}
		if page, ok := args["page"].(float64); ok {
			opts.Page = int(page)
		}
		if visibility, ok := args["visibility"].(string); ok {
			opts.Visibility = collectednotes.Visibility(visibility)
		}

		sp, err := client.Sites.Get(ctx, site, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get site: %v", err)), nil
		}
		return mcp.NewToolResultJSON(sp)
	}
}

func RegisterGetSite(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(GetSiteTool(), GetSiteHandler(client))
}

// ListSitesTool returns the tool definition
func ListSitesTool() mcp.Tool {
	return mcp.NewTool("cn_list_sites",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("List the sites owned by the authenticated account"),
	)
}

// ListSitesHandler returns the tool handler
func ListSitesHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sites, err := client.Sites.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list sites: %v", err)), nil
		}
		return mcp.NewToolResultJSON(sites)
	}
}

func RegisterListSites(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(ListSitesTool(), ListSitesHandler(client))
}

// LatestNotesTool returns the tool definition
func LatestNotesTool() mcp.Tool {
	return mcp.NewTool("cn_latest_notes",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("List one page of a site's notes, private and unlisted included"),
		mcp.WithNumber("site_id", mcp.Required(), mcp.Description("Site ID")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
		mcp.WithString("visibility", mcp.Description("Visibility filter: private, public, public_unlisted, public_site")),
	)
}

// LatestNotesHandler returns the tool handler
func LatestNotesHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		siteID, ok := args["site_id"].(float64)
		if !ok {
			return mcp.NewToolResultError("site_id must be a number"), nil
		}

		notes, err := client.Notes.Latest(ctx, int64(siteID), listOptions(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
		}
		return mcp.NewToolResultJSON(notes)
	}
}

func RegisterLatestNotes(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(LatestNotesTool(), LatestNotesHandler(client))
}

// SearchNotesTool returns the tool definition
func SearchNotesTool() mcp.Tool {
	return mcp.NewTool("cn_search_notes",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("Search a site's notes for a free-text term"),
		mcp.WithNumber("site_id", mcp.Required(), mcp.Description("Site ID")),
		mcp.WithString("term", mcp.Required(), mcp.Description("Search term")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
	)
}

// SearchNotesHandler returns the tool handler
func SearchNotesHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		siteID, ok := args["site_id"].(float64)
		if !ok {
			return mcp.NewToolResultError("site_id must be a number"), nil
		}
		term, _ := args["term"].(string)

		notes, err := client.Search.Notes(ctx, int64(siteID), term, listOptions(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to search notes: %v", err)), nil
		}
		return mcp.NewToolResultJSON(notes)
	}
}

func RegisterSearchNotes(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(SearchNotesTool(), SearchNotesHandler(client))
}

// CreateNoteTool returns the tool definition
func CreateNoteTool() mcp.Tool {
	return mcp.NewTool("cn_create_note",
		mcp.WithDescription("Create a note; the body must start with a markdown heading ('# ')"),
		mcp.WithString("body", mcp.Required(), mcp.Description("Markdown body")),
		mcp.WithString("visibility", mcp.Description("Visibility: private (default), public, public_unlisted, public_site")),
		mcp.WithNumber("site_id", mcp.Description("Site ID; omit to post to the account's first site")),
	)
}

// CreateNoteHandler returns the tool handler
func CreateNoteHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		body, ok := args["body"].(string)
		if !ok {
			return mcp.NewToolResultError("body must be a string"), nil
		}
		visibility, _ := args["visibility"].(string)
		siteID, _ := args["site_id"].(float64)

		note, err := client.Notes.Create(ctx, int64(siteID), body, collectednotes.Visibility(visibility))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create note: %v", err)), nil
		}
		return mcp.NewToolResultJSON(note)
	}
}

func RegisterCreateNote(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(CreateNoteTool(), CreateNoteHandler(client))
}

// UpdateNoteTool returns the tool definition
func UpdateNoteTool() mcp.Tool {
	return mcp.NewTool("cn_update_note",
		mcp.WithDescription("Replace a note's body and visibility"),
		mcp.WithNumber("site_id", mcp.Required(), mcp.Description("Site ID")),
		mcp.WithNumber("note_id", mcp.Required(), mcp.Description("Note ID")),
		mcp.WithString("body", mcp.Required(), mcp.Description("New markdown body; must start with '# '")),
		mcp.WithString("visibility", mcp.Description("Visibility: private (default), public, public_unlisted, public_site")),
	)
}

// UpdateNoteHandler returns the tool handler
func UpdateNoteHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		siteID, ok := args["site_id"].(float64)
		if !ok {
			return mcp.NewToolResultError("site_id must be a number"), nil
		}
		noteID, ok := args["note_id"].(float64)
		if !ok {
			return mcp.NewToolResultError("note_id must be a number"), nil
		}
		body, _ := args["body"].(string)
		visibility, _ := args["visibility"].(string)

		note, err := client.Notes.Update(ctx, int64(siteID), int64(noteID), body, collectednotes.Visibility(visibility))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to update note: %v", err)), nil
		}
		return mcp.NewToolResultJSON(note)
	}
}

func RegisterUpdateNote(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(UpdateNoteTool(), UpdateNoteHandler(client))
}

// DeleteNoteTool returns the tool definition
func DeleteNoteTool() mcp.Tool {
	return mcp.NewTool("cn_delete_note",
		mcp.WithDescription("Delete a note"),
		mcp.WithNumber("site_id", mcp.Required(), mcp.Description("Site ID")),
		mcp.WithNumber("note_id", mcp.Required(), mcp.Description("Note ID")),
	)
}

// DeleteNoteHandler returns the tool handler
func DeleteNoteHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		siteID, ok := args["site_id"].(float64)
		if !ok {
			return mcp.NewToolResultError("site_id must be a number"), nil
		}
		noteID, ok := args["note_id"].(float64)
		if !ok {
			return mcp.NewToolResultError("note_id must be a number"), nil
		}

		resp, err := client.Notes.Destroy(ctx, int64(siteID), int64(noteID))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to delete note: %v", err)), nil
		}
		if !resp.OK() {
			return mcp.NewToolResultError(fmt.Sprintf("delete rejected: %s", resp.Status)), nil
		}
		return mcp.NewToolResultText("Note deleted successfully"), nil
	}
}

func RegisterDeleteNote(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(DeleteNoteTool(), DeleteNoteHandler(client))
}

// MeTool returns the tool definition
func MeTool() mcp.Tool {
	return mcp.NewTool("cn_me",
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("Get the authenticated user's profile"),
	)
}

// MeHandler returns the tool handler
func MeHandler(client *collectednotes.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, err := client.Accounts.Me(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get profile: %v", err)), nil
		}
		return mcp.NewToolResultJSON(user)
	}
}

func RegisterMe(s *server.MCPServer, client *collectednotes.Client) {
	s.AddTool(MeTool(), MeHandler(client))
}
