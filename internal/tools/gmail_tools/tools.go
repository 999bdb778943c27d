package gmail_tools

import (
	"context"

	"github.com/mcptools/google-toolbox/internal/gmail"
	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// Service is the Gmail surface the tools call. Implemented by
// gmail.Client; tests substitute a fake.
type Service interface {
	ListMessages(ctx context.Context, query string, maxResults int64) ([]gmail.MessageSummary, error)
	SearchMessages(ctx context.Context, query string, maxResults int64) ([]gmail.MessageDetail, error)
	SendMessage(ctx context.Context, msg gmail.OutgoingMessage) (*gmail.SendResult, error)
	ModifyLabels(ctx context.Context, messageID string, add, remove []string) (*gmail.ModifyResult, error)
}

// Provider yields the Gmail service when a tool actually runs, so the
// service is only built once credentials are known to be good.
type Provider func(ctx context.Context) (Service, error)

// Definitions returns the Gmail tool set.
func Definitions(provide Provider) []toolbox.Definition {
	return []toolbox.Definition{
		{
			Name:         "list_emails",
			Description:  "List recent emails from the Gmail inbox, optionally filtered by a Gmail search query",
			Service:      "gmail",
			Operation:    "list",
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "query", Type: toolbox.TypeString, Description: "Gmail search query (e.g. 'is:unread', 'from:alice@example.com')"},
				{Name: "max_results", Type: toolbox.TypeInt, Default: int64(10), Description: "Maximum number of emails to return"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.ListMessages(ctx, args.String("query"), args.Int("max_results"))
			},
		},
		{
			Name:         "search_emails",
			Description:  "Search emails with a Gmail query and return full message bodies",
			Service:      "gmail",
			Operation:    "search",
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "query", Type: toolbox.TypeString, Required: true, Description: "Gmail search query"},
				{Name: "max_results", Type: toolbox.TypeInt, Default: int64(10), Description: "Maximum number of emails to return"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.SearchMessages(ctx, args.String("query"), args.Int("max_results"))
			},
		},
		{
			Name:         "send_email",
			Description:  "Compose and send an email from the Gmail account",
			Service:      "gmail",
			Operation:    "send",
			Mutating:     true,
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "to", Type: toolbox.TypeStringList, Required: true, Description: "Recipient addresses (comma-separated or list)"},
				{Name: "subject", Type: toolbox.TypeString, Required: true, Description: "Email subject"},
				{Name: "body", Type: toolbox.TypeString, Required: true, Description: "Email body (plain text)"},
				{Name: "cc", Type: toolbox.TypeStringList, Description: "Cc addresses"},
				{Name: "bcc", Type: toolbox.TypeStringList, Description: "Bcc addresses"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.SendMessage(ctx, gmail.OutgoingMessage{
					To:      args.StringList("to"),
					Cc:      args.StringList("cc"),
					Bcc:     args.StringList("bcc"),
					Subject: args.String("subject"),
					Body:    args.String("body"),
				})
			},
		},
		{
			Name:         "modify_email",
			Description:  "Add or remove labels on an email (archive, mark read, move to folder)",
			Service:      "gmail",
			Operation:    "modify",
			Mutating:     true,
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "id", Type: toolbox.TypeString, Required: true, Description: "Message ID to modify"},
				{Name: "add_labels", Type: toolbox.TypeStringList, Description: "Labels to add, by name or ID"},
				{Name: "remove_labels", Type: toolbox.TypeStringList, Description: "Labels to remove, by name or ID"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				add := args.StringList("add_labels")
				remove := args.StringList("remove_labels")
				if len(add) == 0 && len(remove) == 0 {
					return nil, toolbox.Errorf(toolbox.KindValidation,
						"at least one of add_labels or remove_labels is required")
				}
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.ModifyLabels(ctx, args.String("id"), add, remove)
			},
		},
	}
}
