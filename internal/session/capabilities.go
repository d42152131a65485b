package session

import "time"

// Capabilities is what the current user may do. It is resolved once per
// invocation and handed to commands and views.
type Capabilities struct {
	// IsAdmin is true while a non-expired access token is held. The API
	// only issues tokens to administrators.
	IsAdmin bool

	Subject   string
	ExpiresAt time.Time
}

// Anonymous is the zero Capabilities.
var Anonymous = Capabilities{}

// FromCredential derives capabilities from a stored credential.
func FromCredential(c Credential) Capabilities {
	if c.AccessToken == "" || c.IsExpired() {
		return Anonymous
	}
	return Capabilities{
		IsAdmin:   true,
		Subject:   c.Subject,
		ExpiresAt: c.ExpiresAt,
	}
}

// Describe renders the capabilities for humans.
func (c Capabilities) Describe() string {
	if !c.IsAdmin {
		return "not logged in"
	}
	who := c.Subject
	if who == "" {
		who = "admin"
	}
	if c.ExpiresAt.IsZero() {
		return "logged in as " + who
	}
	return "logged in as " + who + " until " + c.ExpiresAt.Local().Format(time.RFC1123)
}
