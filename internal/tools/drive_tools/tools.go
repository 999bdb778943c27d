package drive_tools

import (
	"context"

	"github.com/mcptools/google-toolbox/internal/drive"
	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// Service is the Drive surface the tools call. Implemented by
// drive.Client; tests substitute a fake.
type Service interface {
	Search(ctx context.Context, query string, pageSize int64, pageToken string) (*drive.SearchResult, error)
	ReadFile(ctx context.Context, fileID string) (*drive.FileContent, error)
}

// Provider yields the Drive service when a tool actually runs.
type Provider func(ctx context.Context) (Service, error)

// Definitions returns the Drive tool set.
func Definitions(provide Provider) []toolbox.Definition {
	return []toolbox.Definition{
		{
			Name:         "search_gdrive",
			Description:  "Search for files in Google Drive by name, optionally narrowed by file type words in the query",
			Service:      "drive",
			Operation:    "search",
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "query", Type: toolbox.TypeString, Description: "Free-text search; empty lists all files"},
				{Name: "page_size", Type: toolbox.TypeInt, Default: int64(10), Description: "Results per page (1-100)"},
				{Name: "page_token", Type: toolbox.TypeString, Description: "Token from a previous page of results"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.Search(ctx, args.String("query"), args.Int("page_size"), args.String("page_token"))
			},
		},
		{
			Name:         "read_gdrive_file",
			Description:  "Read a Google Drive file's content; Workspace files are exported to a text format",
			Service:      "drive",
			Operation:    "read",
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "file_id", Type: toolbox.TypeString, Required: true, Description: "ID of the file to read"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.ReadFile(ctx, args.String("file_id"))
			},
		},
	}
}
