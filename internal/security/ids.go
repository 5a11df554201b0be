package security

import "github.com/google/uuid"

// NewResponseID returns a random identifier for a webhook response
func NewResponseID() string {
	return uuid.New().String()
}

// NewSessionID returns a random identifier for a locally started conversation
func NewSessionID() string {
	return "local-" + uuid.New().String()
}
