package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationRef identifies a conversation persisted on the backend. The
// client caches these read-only and never patches them locally.
type ConversationRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// ChatMessage is one entry of a loaded conversation history.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Language pairs a backend language code with its display name.
type Language struct {
	Code string
	Name string
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
