// Package session persists archive API access tokens and derives what the
// current user may do from them.
//
// Tokens are stored per API base URL as JSON files under the credentials
// directory, readable only by the owner. Token claims are decoded without
// verification; the API remains the authority on whether a token is valid.
package session
