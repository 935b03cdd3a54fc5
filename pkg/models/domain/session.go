package domain

// Message is one conversation turn.
type Message struct {
	Role    string
	Content string
}

// Session holds per-conversation state: message history, uploaded file
// references by type, and free-form metadata.
type Session struct {
	ID       string
	Messages []Message
	Files    map[string]string
	Metadata map[string]any
}
