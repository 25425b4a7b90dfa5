package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"héllo wörld", 6, "héllo…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.max), "TruncateRunes(%q, %d)", tt.in, tt.max)
	}
}

func TestWrappedLineCount(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  int
	}{
		{"", 10, 1},
		{"short", 10, 1},
		{"exactly ten", 11, 1},
		{"this line wraps", 10, 2},
		{"two\nlines", 10, 2},
		{"a\n\nb", 10, 3},
		{"anything", 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrappedLineCount(tt.value, tt.width), "WrappedLineCount(%q, %d)", tt.value, tt.width)
	}
}

func TestSortedLanguages(t *testing.T) {
	langs := sortedLanguages(map[string]string{
		"zh-cn": "Chinese (Simplified)",
		"ar":    "Arabic",
		"en":    "English",
	})

	assert.Equal(t, "Arabic", langs[0].Name)
	assert.Equal(t, "Chinese (Simplified)", langs[1].Name)
	assert.Equal(t, "English", langs[2].Name)
	assert.Equal(t, "ar", langs[0].Code)
}

func TestConversationIDOrDefault(t *testing.T) {
	m, _ := newTestModel(t)

	// With no active conversation a fresh id is minted and kept, so
	// consecutive voice turns land in the same thread.
	minted := m.conversationIDOrDefault()
	assert.NotEmpty(t, minted)
	assert.Equal(t, minted, m.conversationIDOrDefault())

	m.ConversationID = "conv-7"
	assert.Equal(t, "conv-7", m.conversationIDOrDefault())
}
