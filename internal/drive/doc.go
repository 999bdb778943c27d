// Package drive provides a client for the Google Drive API.
//
// Search builds a Drive query from free text: the text matches against
// file names, and words like "sheet" or "presentation" narrow the search
// to the corresponding Google Workspace type. Trashed files are always
// excluded.
//
// Reading a file adapts to its type. Google Workspace files are exported
// to a text-friendly format (Docs to Markdown, Sheets to CSV); regular
// files are downloaded as-is, with binary content base64-encoded.
// Workspace types without a sensible export are rejected rather than
// returning garbage bytes.
package drive
