package drive

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "empty query lists everything",
			query: "",
			want:  "trashed = false",
		},
		{
			name:  "plain name search",
			query: "budget",
			want:  "(name contains 'budget') and trashed = false",
		},
		{
			name:  "sheet hint adds spreadsheet type",
			query: "budget sheet",
			want:  "(name contains 'budget sheet' or mimeType = 'application/vnd.google-apps.spreadsheet') and trashed = false",
		},
		{
			name:  "doc hint adds document type",
			query: "design doc",
			want:  "(name contains 'design doc' or mimeType = 'application/vnd.google-apps.document') and trashed = false",
		},
		{
			name:  "slide hint adds presentation type",
			query: "kickoff slides",
			want:  "(name contains 'kickoff slides' or mimeType = 'application/vnd.google-apps.presentation') and trashed = false",
		},
		{
			name:  "quotes are escaped",
			query: "bob's notes",
			want:  `(name contains 'bob\'s notes') and trashed = false`,
		},
		{
			name:  "backslashes are escaped",
			query: `a\b`,
			want:  `(name contains 'a\\b') and trashed = false`,
		},
		{
			name:  "surrounding whitespace trimmed",
			query: "   report   ",
			want:  "(name contains 'report') and trashed = false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildQuery(tt.query))
		})
	}
}

func TestExportFormats(t *testing.T) {
	assert.Equal(t, "text/markdown", exportFormats["application/vnd.google-apps.document"])
	assert.Equal(t, "text/csv", exportFormats["application/vnd.google-apps.spreadsheet"])
	assert.Equal(t, "text/plain", exportFormats["application/vnd.google-apps.presentation"])
	assert.Equal(t, "image/png", exportFormats["application/vnd.google-apps.drawing"])

	_, ok := exportFormats["application/vnd.google-apps.form"]
	assert.False(t, ok, "forms have no text export")
}

func TestEncodeContentText(t *testing.T) {
	fc := encodeContent("notes.txt", "text/plain", []byte("hello"))

	assert.True(t, fc.IsText)
	assert.Equal(t, "hello", fc.Content)
	assert.Equal(t, "text/plain", fc.MimeType)
}

func TestEncodeContentJSON(t *testing.T) {
	fc := encodeContent("data.json", "application/json", []byte(`{"a":1}`))

	assert.True(t, fc.IsText)
	assert.Equal(t, `{"a":1}`, fc.Content)
}

func TestEncodeContentBinary(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	fc := encodeContent("logo.png", "image/png", raw)

	assert.False(t, fc.IsText)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), fc.Content)
}

func TestIsTextMime(t *testing.T) {
	assert.True(t, isTextMime("text/plain"))
	assert.True(t, isTextMime("text/csv"))
	assert.True(t, isTextMime("application/json"))
	assert.False(t, isTextMime("image/png"))
	assert.False(t, isTextMime("application/pdf"))
}
