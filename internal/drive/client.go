package drive

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/mcptools/google-toolbox/internal/toolbox"
)

const (
	// workspacePrefix marks Google Workspace native files, which have no
	// byte content and must be exported instead of downloaded.
	workspacePrefix = "application/vnd.google-apps"

	minPageSize = 1
	maxPageSize = 100
)

// exportFormats maps a Workspace file type to its text-friendly export
// format. Types not listed here cannot be read by the toolbox.
var exportFormats = map[string]string{
	workspacePrefix + ".document":     "text/markdown",
	workspacePrefix + ".spreadsheet":  "text/csv",
	workspacePrefix + ".presentation": "text/plain",
	workspacePrefix + ".drawing":      "image/png",
}

// Client wraps the Google Drive service.
type Client struct {
	svc *drive.Service
}

// NewClient creates a Drive client over the given authenticated HTTP
// client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Search returns one page of files matching the free-text query, most
// recently modified first. pageSize is clamped to the API's 1..100
// range; pageToken continues a previous page.
func (c *Client) Search(ctx context.Context, query string, pageSize int64, pageToken string) (*SearchResult, error) {
	if pageSize < minPageSize {
		pageSize = minPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	call := c.svc.Files.List().
		Q(buildQuery(query)).
		PageSize(pageSize).
		OrderBy("modifiedTime desc").
		Fields("nextPageToken, files(id, name, mimeType, modifiedTime, size)")
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := &SearchResult{
		Files:         make([]FileInfo, 0, len(res.Files)),
		NextPageToken: res.NextPageToken,
	}
	for _, f := range res.Files {
		out.Files = append(out.Files, FileInfo{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
		})
	}
	return out, nil
}

// ReadFile returns a file's content. Workspace files are exported to
// their mapped text format; regular files are downloaded, with binary
// content base64-encoded.
func (c *Client) ReadFile(ctx context.Context, fileID string) (*FileContent, error) {
	meta, err := c.svc.Files.Get(fileID).Fields("name, mimeType").Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(meta.MimeType, workspacePrefix) {
		return c.exportFile(ctx, fileID, meta)
	}
	return c.downloadFile(ctx, fileID, meta)
}

// exportFile converts a Workspace file to its export format.
func (c *Client) exportFile(ctx context.Context, fileID string, meta *drive.File) (*FileContent, error) {
	exportMime, ok := exportFormats[meta.MimeType]
	if !ok {
		return nil, toolbox.Errorf(toolbox.KindUnsupportedType,
			"file %q has type %s, which has no text export", meta.Name, meta.MimeType)
	}

	res, err := c.svc.Files.Export(fileID, exportMime).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return encodeContent(meta.Name, exportMime, data), nil
}

// downloadFile fetches a regular file's bytes.
func (c *Client) downloadFile(ctx context.Context, fileID string, meta *drive.File) (*FileContent, error) {
	res, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return encodeContent(meta.Name, meta.MimeType, data), nil
}

// encodeContent wraps raw bytes as text or base64 depending on the
// delivered MIME type.
func encodeContent(name, mimeType string, data []byte) *FileContent {
	if isTextMime(mimeType) {
		return &FileContent{Name: name, MimeType: mimeType, Content: string(data), IsText: true}
	}
	return &FileContent{
		Name:     name,
		MimeType: mimeType,
		Content:  base64.StdEncoding.EncodeToString(data),
	}
}

// isTextMime reports whether content of this type is safe to return
// verbatim.
func isTextMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || mimeType == "application/json"
}

// buildQuery turns free text into a Drive search expression. The text
// matches file names; type words widen the match to the corresponding
// Workspace type. Trashed files are always excluded.
func buildQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "trashed = false"
	}

	escaped := strings.ReplaceAll(query, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)

	conditions := []string{fmt.Sprintf("name contains '%s'", escaped)}

	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "sheet"):
		conditions = append(conditions, fmt.Sprintf("mimeType = '%s.spreadsheet'", workspacePrefix))
	case strings.Contains(lower, "doc"):
		conditions = append(conditions, fmt.Sprintf("mimeType = '%s.document'", workspacePrefix))
	case strings.Contains(lower, "presentation"), strings.Contains(lower, "slide"):
		conditions = append(conditions, fmt.Sprintf("mimeType = '%s.presentation'", workspacePrefix))
	}

	return fmt.Sprintf("(%s) and trashed = false", strings.Join(conditions, " or "))
}
