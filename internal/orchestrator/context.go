package orchestrator

import "github.com/reaxo/reaxo/pkg/api"

// sharedContext builds the generic conversation seed for models without
// their own prior answer: the previous prompt plus the first non-error,
// non-empty response of the previous turn (response order, which is the
// catalog-ordered participant snapshot of that turn), then the new prompt.
func sharedContext(prev *Turn, prompt string) []api.ChatMessage {
	var messages []api.ChatMessage
	if prev != nil {
		messages = append(messages, api.ChatMessage{Role: api.RoleUser, Content: prev.Prompt})
		for _, r := range prev.Responses {
			if r.Content != "" && r.Err == "" {
				messages = append(messages, api.ChatMessage{Role: api.RoleAssistant, Content: r.Content})
				break
			}
		}
	}
	return append(messages, api.ChatMessage{Role: api.RoleUser, Content: prompt})
}

// modelContext gives a model its own prior answer when it succeeded in the
// previous turn, replacing the shared assistant message; otherwise the
// shared seed is used unmodified.
func modelContext(prev *Turn, modelID, prompt string, shared []api.ChatMessage) []api.ChatMessage {
	if prev == nil {
		return shared
	}
	for _, r := range prev.Responses {
		if r.ModelID == modelID && r.Content != "" && r.Err == "" {
			return []api.ChatMessage{
				{Role: api.RoleUser, Content: prev.Prompt},
				{Role: api.RoleAssistant, Content: r.Content},
				{Role: api.RoleUser, Content: prompt},
			}
		}
	}
	return shared
}
