package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"already slug", "hello-world", "hello-world"},
		{"accents", "Café Résumé", "cafe-resume"},
		{"umlauts", "Über München", "uber-munchen"},
		{"punctuation", "What's New in 2026?", "what-s-new-in-2026"},
		{"multiple spaces", "too   many   spaces", "too-many-spaces"},
		{"leading and trailing", "  padded title  ", "padded-title"},
		{"special chars only", "!!!", ""},
		{"mixed symbols", "50% Off: Photos & Cutouts", "50-off-photos-cutouts"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
