package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmail "google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Quarterly report"},
				{Name: "From", Value: "alice@example.com"},
			},
		},
	}

	assert.Equal(t, "Quarterly report", headerValue(msg, "Subject"))
	assert.Equal(t, "Quarterly report", headerValue(msg, "subject"))
	assert.Equal(t, "alice@example.com", headerValue(msg, "From"))
	assert.Equal(t, "", headerValue(msg, "Reply-To"))
	assert.Equal(t, "", headerValue(nil, "Subject"))
}

func TestExtractBodySinglePart(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: b64("hello world")},
		},
	}

	assert.Equal(t, "hello world", extractBody(msg))
}

func TestExtractBodyMultipartPrefersPlainText(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/html",
					Body:     &gmail.MessagePartBody{Data: b64("<p>hello</p>")},
				},
				{
					MimeType: "text/plain",
					Body:     &gmail.MessagePartBody{Data: b64("hello")},
				},
			},
		},
	}

	assert.Equal(t, "hello", extractBody(msg))
}

func TestExtractBodyNestedMultipart(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "multipart/alternative",
					Parts: []*gmail.MessagePart{
						{
							MimeType: "text/plain",
							Body:     &gmail.MessagePartBody{Data: b64("nested body")},
						},
					},
				},
				{
					MimeType: "application/pdf",
					Body:     &gmail.MessagePartBody{AttachmentId: "att-1"},
				},
			},
		},
	}

	assert.Equal(t, "nested body", extractBody(msg))
}

func TestExtractBodyFallsBackToHTML(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/html",
					Body:     &gmail.MessagePartBody{Data: b64("<p>only html</p>")},
				},
			},
		},
	}

	assert.Equal(t, "<p>only html</p>", extractBody(msg))
}

func TestExtractBodyNoTextualPart(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "application/octet-stream",
			Body:     &gmail.MessagePartBody{AttachmentId: "att-1"},
		},
	}

	assert.Equal(t, "", extractBody(msg))
}

func TestDecodeBodyStandardBase64Fallback(t *testing.T) {
	// Standard base64 with padding that URLEncoding rejects when the
	// payload contains + or / characters.
	raw := []byte{0xfb, 0xff, 0xfe}
	std := base64.StdEncoding.EncodeToString(raw)
	assert.Equal(t, string(raw), decodeBody(std))
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "plain ascii subject", encodeRFC2047("plain ascii subject"))

	encoded := encodeRFC2047("Grüße aus Köln")
	assert.Contains(t, encoded, "=?UTF-8?b?")
	assert.NotContains(t, encoded, "ü")
}
