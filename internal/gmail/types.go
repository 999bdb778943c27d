package gmail

// MessageSummary is the lightweight view of a message: envelope headers
// plus the Gmail-generated snippet, no body.
type MessageSummary struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	To       string `json:"to,omitempty"`
	Date     string `json:"date"`
	Snippet  string `json:"snippet,omitempty"`
}

// MessageDetail extends the summary with the extracted plain-text body
// and the message's current labels.
type MessageDetail struct {
	MessageSummary
	Cc     string   `json:"cc,omitempty"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// OutgoingMessage describes an email to be composed and sent.
type OutgoingMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

// SendResult reports the identifiers of a successfully sent message.
type SendResult struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
}

// ModifyResult reports the labels on a message after a label change.
type ModifyResult struct {
	MessageID string   `json:"message_id"`
	Labels    []string `json:"labels"`
}
