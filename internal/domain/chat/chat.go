package chat

import "strings"

// Message is one chat exchange: the user's text and the assistant's reply.
type Message struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// DefaultTopic is used when no topic can be derived from anywhere.
const DefaultTopic = "general knowledge"

// TopicFromHistory derives a quiz topic from the most recent turn that has
// user text. Falls back to DefaultTopic when the history holds nothing usable.
func TopicFromHistory(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].User == "" {
			continue
		}
		topic := strings.TrimSpace(history[i].User + " " + history[i].Text)
		if topic != "" {
			return topic
		}
	}
	return DefaultTopic
}
