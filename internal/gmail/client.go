package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mcptools/google-toolbox/internal/logging"
	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// Client wraps the Gmail Users service for a single mailbox ("me").
type Client struct {
	svc    *gmail.UsersService
	logger *slog.Logger
}

// NewClient creates a Gmail client over the given authenticated HTTP
// client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{svc: svc.Users, logger: slog.Default()}, nil
}

// ListMessages returns up to maxResults messages matching the Gmail
// query, newest first. Only metadata is fetched per message, keeping the
// per-message cost low.
func (c *Client) ListMessages(ctx context.Context, query string, maxResults int64) ([]MessageSummary, error) {
	req := c.svc.Messages.List("me").MaxResults(maxResults)
	if query != "" {
		req = req.Q(query)
	}
	res, err := req.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	summaries := make([]MessageSummary, 0, len(res.Messages))
	for _, ref := range res.Messages {
		msg, err := c.svc.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("Subject", "From", "To", "Date").
			Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summarize(msg))
	}
	return summaries, nil
}

// SearchMessages returns up to maxResults messages matching the query,
// each with its plain-text body extracted from the MIME tree.
func (c *Client) SearchMessages(ctx context.Context, query string, maxResults int64) ([]MessageDetail, error) {
	res, err := c.svc.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	details := make([]MessageDetail, 0, len(res.Messages))
	for _, ref := range res.Messages {
		msg, err := c.svc.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		details = append(details, MessageDetail{
			MessageSummary: summarize(msg),
			Cc:             headerValue(msg, "Cc"),
			Body:           extractBody(msg),
			Labels:         msg.LabelIds,
		})
	}
	return details, nil
}

// SendMessage composes and sends an email. Recipient addresses are
// validated before anything leaves the machine; a malformed address is a
// send error, not an upstream one.
func (c *Client) SendMessage(ctx context.Context, msg OutgoingMessage) (*SendResult, error) {
	raw, err := composeRaw(msg)
	if err != nil {
		return nil, err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	// Recipients are PII; log only a correlatable hash.
	c.logger.Debug("email sent",
		slog.String("message_id", sent.Id),
		logging.UserHash(msg.To[0]),
	)
	return &SendResult{MessageID: sent.Id, ThreadID: sent.ThreadId}, nil
}

// ModifyLabels adds and removes labels on a message. Labels may be given
// by ID or by display name; an unknown label fails validation before the
// message is touched, so no partial change is ever applied.
func (c *Client) ModifyLabels(ctx context.Context, messageID string, add, remove []string) (*ModifyResult, error) {
	labels, err := c.svc.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]string, len(labels.Labels)*2)
	var known []string
	for _, l := range labels.Labels {
		byKey[strings.ToLower(l.Id)] = l.Id
		byKey[strings.ToLower(l.Name)] = l.Id
		known = append(known, l.Name)
	}

	resolve := func(names []string) ([]string, error) {
		ids := make([]string, 0, len(names))
		for _, n := range names {
			id, ok := byKey[strings.ToLower(n)]
			if !ok {
				return nil, toolbox.Errorf(toolbox.KindValidation,
					"unknown label %q; available labels: %s", n, strings.Join(known, ", "))
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	addIDs, err := resolve(add)
	if err != nil {
		return nil, err
	}
	removeIDs, err := resolve(remove)
	if err != nil {
		return nil, err
	}

	modified, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    addIDs,
		RemoveLabelIds: removeIDs,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return &ModifyResult{MessageID: modified.Id, Labels: modified.LabelIds}, nil
}

// summarize collapses a Gmail message into its envelope view.
func summarize(msg *gmail.Message) MessageSummary {
	return MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  headerValue(msg, "Subject"),
		From:     headerValue(msg, "From"),
		To:       headerValue(msg, "To"),
		Date:     headerValue(msg, "Date"),
		Snippet:  msg.Snippet,
	}
}

// composeRaw builds the base64url-encoded RFC 2822 message.
func composeRaw(msg OutgoingMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", toolbox.Errorf(toolbox.KindSend, "at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", toolbox.Errorf(toolbox.KindSend, "subject is required")
	}
	if msg.Body == "" {
		return "", toolbox.Errorf(toolbox.KindSend, "body is required")
	}
	for _, addr := range concat(msg.To, msg.Cc, msg.Bcc) {
		if _, err := mail.ParseAddress(addr); err != nil {
			return "", toolbox.Errorf(toolbox.KindSend, "invalid recipient address %q", addr)
		}
	}

	var b strings.Builder
	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")
	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(msg.Bcc, ", "))
		b.WriteString("\r\n")
	}
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")
	if msg.IsHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
