package search

// Item is one web search hit.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}

// Result is the outcome of one search query.
type Result struct {
	Items        []Item `json:"items"`
	TotalResults string `json:"total_results,omitempty"`
}
