package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// headerValue returns the named header from a message's payload, or ""
// when absent. Header name matching is case-insensitive per RFC 2822.
func headerValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// extractBody walks the MIME tree and returns the first text/plain part,
// falling back to text/html when the message carries no plain part at
// all. Returns "" when the message has no textual body.
func extractBody(msg *gmail.Message) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	if body := findPart(msg.Payload, "text/plain"); body != "" {
		return body
	}
	return findPart(msg.Payload, "text/html")
}

// findPart depth-first searches the part tree for the given MIME type
// and returns its decoded body data.
func findPart(part *gmail.MessagePart, mimeType string) string {
	if part == nil {
		return ""
	}
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body.Data)
	}
	for _, sub := range part.Parts {
		if body := findPart(sub, mimeType); body != "" {
			return body
		}
	}
	return ""
}

// decodeBody decodes Gmail's base64url body data, tolerating standard
// base64 which some messages carry.
func decodeBody(data string) string {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.StdEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}

// encodeRFC2047 encodes a header value for non-ASCII content (umlauts,
// CJK) per RFC 2047. ASCII-only values pass through untouched.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
