package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Models() {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestGet(t *testing.T) {
	m, ok := Get("gemini-2.5-flash")
	require.True(t, ok)
	assert.Equal(t, "Gemini 2.5 Flash", m.Name)
	assert.Equal(t, "Google", m.Provider)

	_, ok = Get("no-such-model")
	assert.False(t, ok)
}

func TestGroupByProviderPreservesOrder(t *testing.T) {
	grouped := GroupByProvider(Models())

	google := grouped["Google"]
	require.NotEmpty(t, google)

	// Within a group, catalog order survives.
	var lastIdx = -1
	for _, g := range google {
		idx := -1
		for i, m := range Models() {
			if m.ID == g.ID {
				idx = i
				break
			}
		}
		assert.Greater(t, idx, lastIdx)
		lastIdx = idx
	}
}

func TestProvidersFirstAppearanceOrder(t *testing.T) {
	providers := Providers()
	require.NotEmpty(t, providers)
	assert.Equal(t, "Google", providers[0])

	seen := make(map[string]bool)
	for _, p := range providers {
		assert.False(t, seen[p])
		seen[p] = true
	}
}

func TestDefaultEnabledIDs(t *testing.T) {
	ids := DefaultEnabledIDs()
	require.Len(t, ids, 5)

	// One model per default provider, each the provider's first entry.
	providers := make(map[string]bool)
	for _, id := range ids {
		m, ok := Get(id)
		require.True(t, ok)
		assert.False(t, providers[m.Provider])
		providers[m.Provider] = true
	}
	assert.Contains(t, ids, "gemini-3-pro-preview")
	assert.Contains(t, ids, "claude-sonnet-4-5")
	assert.Contains(t, ids, "gpt-5")
}

func TestDefaultModelExists(t *testing.T) {
	_, ok := Get(DefaultModelID)
	assert.True(t, ok)
}

func TestEveryProviderHasLogo(t *testing.T) {
	for _, p := range Providers() {
		assert.Contains(t, ProviderLogos, p)
	}
}
