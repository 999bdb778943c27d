package drive

// FileInfo is the metadata returned for each search hit.
type FileInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	ModifiedTime string `json:"modified_time,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Files         []FileInfo `json:"files"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

// FileContent is the content of a read file. Content holds the text
// verbatim when IsText is set, base64-encoded bytes otherwise. MimeType
// reflects the delivered content: for exported Workspace files it is the
// export format, not the stored one.
type FileContent struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
	IsText   bool   `json:"is_text"`
}
