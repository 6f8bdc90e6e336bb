package relay

import "time"

// Message is a single role-tagged entry in a conversation. Messages are
// immutable once appended to a History; ordering is chronological and
// insertion order is conversation order.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// UserMessage creates a user-role Message stamped with the given time.
func UserMessage(content string, at time.Time) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: at}
}

// AssistantMessage creates an assistant-role Message stamped with the given time.
func AssistantMessage(content string, at time.Time) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: at}
}

// SystemMessage creates a system-role Message stamped with the given time.
func SystemMessage(content string, at time.Time) Message {
	return Message{Role: RoleSystem, Content: content, Timestamp: at}
}
