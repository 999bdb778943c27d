// Package gmail provides a client for the Gmail API.
//
// The client covers the mailbox operations the toolbox exposes:
//   - Listing messages by query (lightweight, headers and snippet only)
//   - Searching messages with full plain-text body extraction
//   - Sending email (RFC 2822 composition with RFC 2047 subjects)
//   - Label changes on individual messages
//
// Authentication is injected: the client is built over an HTTP client
// whose transport presents the current OAuth access token, so tokens
// refreshed mid-session are picked up without recreating the client.
package gmail
