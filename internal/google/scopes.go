package google

// DefaultOAuthScopes are the Google OAuth scopes the toolbox needs.
//
// The scopes provide access to:
//   - Gmail: read, send, modify (label changes)
//   - Google Calendar: full access
//   - Google Drive: read-only plus per-file access
//
// Web search uses an API key, not OAuth, so it needs no scope here.
var DefaultOAuthScopes = []string{
	// Gmail scopes
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.modify",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar",

	// Google Drive scopes
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/drive.readonly",
}
