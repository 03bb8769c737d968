package gateway

import (
	"context"
	"fmt"
	"strings"

	"boris-chat/internal/llm"
)

// ContextWindow is the number of prior turns re-sent with each request.
// Fixed policy inherited from the original interface; not configurable.
const ContextWindow = 10

// GetResponse turns a new user utterance plus recent history into one
// assistant utterance. Each call is a fresh stateless request: the remote
// side has no memory, so the window is flattened to text and re-sent
// every time. Failures never escape — they come back as a descriptive
// response string so the conversation log stays the single channel for
// all outcomes.
func GetResponse(ctx context.Context, client llm.Client, newMessage string, history []llm.Message) string {
	prompt := BuildPrompt(newMessage, history)

	resp, err := client.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	if err != nil {
		return fmt.Sprintf("Error getting response: %v", err)
	}
	return resp.Content
}

// BuildPrompt renders at most the last ContextWindow entries of history
// as "role: content" lines, oldest first, and appends the new utterance
// after a blank line. With no history the utterance goes out verbatim.
func BuildPrompt(newMessage string, history []llm.Message) string {
	recent := history
	if len(recent) > ContextWindow {
		recent = recent[len(recent)-ContextWindow:]
	}
	if len(recent) == 0 {
		return newMessage
	}

	lines := make([]string, 0, len(recent))
	for _, m := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n") + "\n\n" + newMessage
}
