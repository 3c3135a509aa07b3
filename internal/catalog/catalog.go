// Package catalog is the static table of models offered by the comparison
// dashboard. It is loaded once at process start and never mutated; identity
// is the model id and no two entries share one.
package catalog

// Model describes one selectable model plus its display metadata.
type Model struct {
	ID            string
	Name          string
	Provider      string
	Description   string
	InputCost     string
	OutputCost    string
	ContextWindow string
	Color         string
}

// ProviderLogos maps a provider name to its logo asset path.
var ProviderLogos = map[string]string{
	"Google":    "/logos/google.png",
	"Anthropic": "/logos/anthropic.png",
	"Meta":      "/logos/meta.png",
	"Zhipu":     "/logos/zhipu.png",
	"Moonshot":  "/logos/moonshot.png",
	"Kimi":      "/logos/kimi.png",
	"OpenAI":    "/logos/openai.png",
	"DeepSeek":  "/logos/deepseek.png",
	"xAI":       "/logos/xai.png",
	"Alibaba":   "/logos/alibaba.png",
}

var models = []Model{
	// Google Gemini
	{ID: "gemini-3-pro-preview", Name: "Gemini 3 Pro", Provider: "Google", Description: "Latest Gemini 3 Pro preview model", InputCost: "$2", OutputCost: "$12", ContextWindow: "1M tokens", Color: "33"},
	{ID: "gemini-3-flash-preview", Name: "Gemini 3 Flash", Provider: "Google", Description: "Fast Gemini 3 preview model", InputCost: "$0.5", OutputCost: "$3", ContextWindow: "1M tokens", Color: "33"},
	{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Provider: "Google", Description: "Advanced reasoning and analysis", InputCost: "$1.25", OutputCost: "$10", ContextWindow: "1M tokens", Color: "33"},
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: "Google", Description: "Fast and affordable", InputCost: "$0.3", OutputCost: "$2.5", ContextWindow: "1M tokens", Color: "33"},
	{ID: "gemini-2.5-flash-lite", Name: "Gemini 2.5 Flash Lite", Provider: "Google", Description: "Ultra-fast lightweight model", InputCost: "$0.1", OutputCost: "$0.4", ContextWindow: "1M tokens", Color: "33"},
	// Anthropic Claude
	{ID: "claude-sonnet-4-5", Name: "Claude Sonnet 4.5", Provider: "Anthropic", Description: "Most intelligent Claude model", InputCost: "$3.3", OutputCost: "$16.5", ContextWindow: "1M tokens", Color: "208"},
	{ID: "claude-haiku-4-5", Name: "Claude Haiku 4.5", Provider: "Anthropic", Description: "Fast and efficient Claude", InputCost: "$1.1", OutputCost: "$5.5", ContextWindow: "1M tokens", Color: "208"},
	// OpenAI
	{ID: "gpt-5", Name: "GPT-5", Provider: "OpenAI", Description: "Most capable GPT model", InputCost: "$1.25", OutputCost: "$10", ContextWindow: "400k tokens", Color: "42"},
	{ID: "gpt-5-mini", Name: "GPT-5 Mini", Provider: "OpenAI", Description: "Efficient GPT-5 variant", InputCost: "$0.25", OutputCost: "$2", ContextWindow: "400k tokens", Color: "42"},
	{ID: "gpt-4.1", Name: "GPT-4.1", Provider: "OpenAI", Description: "Enhanced GPT-4 model", InputCost: "$2", OutputCost: "$8", ContextWindow: "1M tokens", Color: "42"},
	{ID: "gpt-4.1-mini", Name: "GPT-4.1 Mini", Provider: "OpenAI", Description: "Compact GPT-4.1", InputCost: "$0.4", OutputCost: "$1.6", ContextWindow: "1M tokens", Color: "42"},
	{ID: "gpt-4o", Name: "GPT-4o", Provider: "OpenAI", Description: "Multimodal GPT-4", InputCost: "$2.5", OutputCost: "$10", ContextWindow: "128k tokens", Color: "42"},
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Provider: "OpenAI", Description: "Compact multimodal model", InputCost: "$0.15", OutputCost: "$0.6", ContextWindow: "128k tokens", Color: "42"},
	// xAI
	{ID: "grok-4-fast-non-reasoning", Name: "Grok 4 Fast", Provider: "xAI", Description: "Fast non-reasoning Grok", InputCost: "$0.2", OutputCost: "$0.5", ContextWindow: "2M tokens", Color: "196"},
	// DeepSeek
	{ID: "deepseek-v3.2", Name: "DeepSeek V3.2", Provider: "DeepSeek", Description: "Advanced open-source model", InputCost: "$0.27", OutputCost: "$0.4", ContextWindow: "164k tokens", Color: "135"},
	// GLM
	{ID: "glm-4.6", Name: "GLM 4.6", Provider: "Zhipu", Description: "Chinese-English bilingual", InputCost: "$0.45", OutputCost: "$1.9", ContextWindow: "205k tokens", Color: "205"},
	// Kimi
	{ID: "kimi-k2-thinking", Name: "Kimi K2 Thinking", Provider: "Moonshot", Description: "Reasoning-focused model", InputCost: "$0.55", OutputCost: "$2.5", ContextWindow: "N/A", Color: "51"},
	// Meta
	{ID: "llama-3.3-70b", Name: "Llama 3.3 70B", Provider: "Meta", Description: "Open-source powerhouse", InputCost: "$0.85", OutputCost: "$1.2", ContextWindow: "65k tokens", Color: "63"},
	// Qwen
	{ID: "qwen-3-32", Name: "Qwen 3 32B", Provider: "Alibaba", Description: "Efficient multilingual model", InputCost: "$0.4", OutputCost: "$0.8", ContextWindow: "N/A", Color: "214"},
	{ID: "qwen3-next", Name: "Qwen 3 Next", Provider: "Alibaba", Description: "Latest Qwen model", InputCost: "$0.14", OutputCost: "$1.1", ContextWindow: "N/A", Color: "214"},
}

// DefaultModelID is the model used when a chat request names none.
const DefaultModelID = "gemini-2.5-flash"

// defaultProviders seed the enabled set on first launch: the first catalog
// model of each listed provider.
var defaultProviders = []string{"Google", "Anthropic", "OpenAI", "xAI", "DeepSeek"}

// Models returns the catalog in source order. Callers must not mutate the
// returned slice.
func Models() []Model {
	return models
}

// Get looks up a model by id.
func Get(id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// GroupByProvider buckets the catalog by provider, preserving catalog order
// within each group.
func GroupByProvider(ms []Model) map[string][]Model {
	grouped := make(map[string][]Model)
	for _, m := range ms {
		grouped[m.Provider] = append(grouped[m.Provider], m)
	}
	return grouped
}

// Providers returns provider names in order of first appearance.
func Providers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range models {
		if !seen[m.Provider] {
			seen[m.Provider] = true
			out = append(out, m.Provider)
		}
	}
	return out
}

// DefaultEnabledIDs returns the ids enabled on a fresh session: one model
// per default provider, the first in catalog order.
func DefaultEnabledIDs() []string {
	var ids []string
	for _, p := range defaultProviders {
		for _, m := range models {
			if m.Provider == p {
				ids = append(ids, m.ID)
				break
			}
		}
	}
	return ids
}
