// Package search provides a client for the Google Custom Search API.
//
// Unlike the other service adapters, search authenticates with an API
// key and a search engine ID rather than OAuth, so it works without any
// user credential.
package search
