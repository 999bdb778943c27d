package search_tools

import (
	"context"

	"github.com/mcptools/google-toolbox/internal/search"
	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// Service is the web search surface the tool calls. Implemented by
// search.Client; tests substitute a fake.
type Service interface {
	Search(ctx context.Context, query string, num int64) (*search.Result, error)
}

// Provider yields the search service when the tool actually runs.
type Provider func(ctx context.Context) (Service, error)

// Definitions returns the web search tool set. Search uses an API key,
// not OAuth, so the tool does not require credentials.
func Definitions(provide Provider) []toolbox.Definition {
	return []toolbox.Definition{
		{
			Name:        "search_google",
			Description: "Search the web with Google and return titles, links and snippets",
			Service:     "search",
			Operation:   "query",
			Schema: toolbox.Schema{
				{Name: "query", Type: toolbox.TypeString, Required: true, Description: "Search query"},
				{Name: "num_results", Type: toolbox.TypeInt, Default: int64(5), Description: "Number of results to return (1-10)"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.Search(ctx, args.String("query"), args.Int("num_results"))
			},
		},
	}
}
