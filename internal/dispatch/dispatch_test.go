package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_RequiresGenkit(t *testing.T) {
	_, err := New(Config{ModelName: "googleai/gemini-2.5-flash"})
	assert.Error(t, err)
}

func TestExtractQuestion(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		fallback string
		want     string
	}{
		{
			name:     "question present",
			input:    map[string]any{"question": "What are your opening hours?"},
			fallback: "original",
			want:     "What are your opening hours?",
		},
		{
			name:     "question missing",
			input:    map[string]any{},
			fallback: "original",
			want:     "original",
		},
		{
			name:     "question empty",
			input:    map[string]any{"question": ""},
			fallback: "original",
			want:     "original",
		},
		{
			name:     "question mistyped",
			input:    map[string]any{"question": 42},
			fallback: "original",
			want:     "original",
		},
		{
			name:     "input not a map",
			input:    "plain string",
			fallback: "original",
			want:     "original",
		},
		{
			name:     "nil input",
			input:    nil,
			fallback: "original",
			want:     "original",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractQuestion(tt.input, tt.fallback))
		})
	}
}
