package generativeAI

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured_NilClient(t *testing.T) {
	var ai *AIClient
	assert.False(t, ai.Configured())
	assert.False(t, (&AIClient{}).Configured())
}

func TestIsUsableKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"sdk placeholder", "sk-...", false},
		{"env example placeholder", "your-api-key", false},
		{"changeme placeholder", "changeme", false},
		{"too short", "abc", false},
		{"plausible key", "AIzaSyExampleKey123", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isUsableKey(tc.key))
		})
	}
}

func TestChatHistoryContents(t *testing.T) {
	t.Run("maps stored roles onto wire roles", func(t *testing.T) {
		contents := chatHistoryContents([]ChatTurn{
			{Role: "user", Text: "Tell me about Boracay"},
			{Role: "assistant", Text: "Boracay is a small island in Aklan."},
			{Role: "user", Text: "How do I get there?"},
		})

		require.Len(t, contents, 3)
		assert.Equal(t, "user", contents[0].Role)
		assert.Equal(t, "model", contents[1].Role)
		assert.Equal(t, "user", contents[2].Role)

		require.Len(t, contents[1].Parts, 1)
		assert.Equal(t, "Boracay is a small island in Aklan.", contents[1].Parts[0].Text)
	})

	t.Run("empty history yields no seed contents", func(t *testing.T) {
		assert.Nil(t, chatHistoryContents(nil))
	})
}
