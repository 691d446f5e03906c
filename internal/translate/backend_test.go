package translate

import (
	"strings"
	"testing"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
)

func TestParseChunkResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		langs   []string
	}{
		{
			name:  "plain json",
			input: `{"es": {"title": "Hola", "content": "<p>Hola</p>"}}`,
			langs: []string{"es"},
		},
		{
			name: "json code fence",
			input: "```json\n" +
				`{"es": {"title": "Hola", "content": "<p>Hola</p>"}}` + "\n```",
			langs: []string{"es"},
		},
		{
			name: "bare code fence",
			input: "```\n" +
				`{"fr": {"title": "Salut", "content": "<p>Salut</p>"}}` + "\n```",
			langs: []string{"fr"},
		},
		{
			name: "surrounding prose",
			input: "Here are the translations:\n" +
				`{"de": {"title": "Hallo", "content": "<p>Hallo</p>"}}` +
				"\nLet me know if you need more.",
			langs: []string{"de"},
		},
		{
			name:  "multiple languages",
			input: `{"es": {"title": "A", "content": "B"}, "fr": {"title": "C", "content": "D"}}`,
			langs: []string{"es", "fr"},
		},
		{
			name:    "not json",
			input:   "I cannot translate this content.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			input:   `{"es": {"title": "Hola"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChunkResponse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseChunkResponse: %v", err)
			}
			for _, lang := range tt.langs {
				if _, ok := got[lang]; !ok {
					t.Errorf("missing language %q in %v", lang, got)
				}
			}
		})
	}
}

func TestBuildChunkPrompt(t *testing.T) {
	canonical := model.Translation{
		Title:           "Original Title",
		Content:         "<p>Body</p>",
		MetaTitle:       "Meta T",
		MetaDescription: "Meta D",
		UpdatedAt:       time.Now(),
	}

	prompt := buildChunkPrompt(canonical, []string{"es", "fr"})

	for _, want := range []string{"es, fr", "Original Title", "<p>Body</p>", "Meta T", "Meta D"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
