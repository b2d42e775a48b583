package giazero

import "time"

// Session holds the state of a single agent run: the system prompt and the
// accumulated conversation. It lives only for the process lifetime.
type Session struct {
	ID           string
	Messages     []Message
	SystemPrompt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
