package textfilter

import "testing"

func TestFilter(t *testing.T) {
	f := NewNarrationFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase word",
			input:    "The goblin shouts a damn curse.",
			expected: "The goblin shouts a dang curse.",
		},
		{
			name:     "uppercase preserved",
			input:    "DAMN the torpedoes!",
			expected: "DANG the torpedoes!",
		},
		{
			name:     "title case preserved",
			input:    "Hell awaits below.",
			expected: "Heck awaits below.",
		},
		{
			name:     "word boundaries respected",
			input:    "The assassin crept past the classroom.",
			expected: "The assassin crept past the classroom.",
		},
		{
			name:     "clean text unchanged",
			input:    "The tavern is warm and quiet.",
			expected: "The tavern is warm and quiet.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Filter(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestContainsProfanity(t *testing.T) {
	f := NewNarrationFilter()
	if !f.ContainsProfanity("What the hell was that?") {
		t.Error("expected profanity detected")
	}
	if f.ContainsProfanity("A quiet evening at the inn.") {
		t.Error("expected clean text to pass")
	}
}

func TestShouldFilter(t *testing.T) {
	for _, rating := range []string{"G", "pg", "PG13", "pg-13"} {
		if !ShouldFilter(rating) {
			t.Errorf("expected filtering for rating %q", rating)
		}
	}
	for _, rating := range []string{"R", "", "unrated"} {
		if ShouldFilter(rating) {
			t.Errorf("expected no filtering for rating %q", rating)
		}
	}
}
