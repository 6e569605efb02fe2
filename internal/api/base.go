package api

import "time"

// DefaultBaseURL is the single source of truth for the CLI API target.
const DefaultBaseURL = "http://localhost:8080"

// NewDefaultClient builds a client pointed at the default forum URL.
func NewDefaultClient(session string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, session, timeout...)
}
