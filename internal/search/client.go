package search

import (
	"context"
	"fmt"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const (
	// DefaultNumResults is returned when the caller does not say how
	// many hits they want.
	DefaultNumResults = 5

	// maxNumResults is the API's per-request ceiling.
	maxNumResults = 10
)

// Client wraps the Custom Search service for one search engine.
type Client struct {
	svc      *customsearch.Service
	engineID string
}

// NewClient creates a search client using the given API key and custom
// search engine ID.
func NewClient(ctx context.Context, apiKey, engineID string) (*Client, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Custom Search service: %w", err)
	}
	return &Client{svc: svc, engineID: engineID}, nil
}

// Search runs a web query and returns up to num hits. num is clamped to
// the API's 1..10 range, defaulting to DefaultNumResults.
func (c *Client) Search(ctx context.Context, query string, num int64) (*Result, error) {
	num = clampNum(num)

	res, err := c.svc.Cse.List().
		Q(query).
		Cx(c.engineID).
		Num(num).
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := &Result{Items: make([]Item, 0, len(res.Items))}
	if res.SearchInformation != nil {
		out.TotalResults = res.SearchInformation.TotalResults
	}
	for _, item := range res.Items {
		out.Items = append(out.Items, Item{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return out, nil
}

func clampNum(n int64) int64 {
	if n <= 0 {
		return DefaultNumResults
	}
	if n > maxNumResults {
		return maxNumResults
	}
	return n
}
