package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `  {"key": "value"}  `,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before JSON object",
			input:    "Here are my suggestions:\n{\"title\": \"Backend Engineer\"}",
			expected: `{"title": "Backend Engineer"}`,
		},
		{
			name:     "trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"rewritten_bullet": "Cut p99 {latency} by 40%", "n": {"x": "}"}}`,
			expected: `{"rewritten_bullet": "Cut p99 {latency} by 40%", "n": {"x": "}"}}`,
		},
		{
			name:     "escaped quotes",
			input:    `Result: {"message": "He said \"hi\" {"}`,
			expected: `{"message": "He said \"hi\" {"}`,
		},
		{
			name:     "no JSON at all",
			input:    "  sorry, I cannot help with that  ",
			expected: "sorry, I cannot help with that",
		},
		{
			name:     "unterminated object is returned as-is",
			input:    `{"key": "value"`,
			expected: `{"key": "value"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(`{"a": {"b": 1}} tail`))
	assert.Equal(t, "", extractJSONObject("not json"))
	assert.Equal(t, "", extractJSONObject(""))
	assert.Equal(t, "", extractJSONObject(`{"open": true`))
}
