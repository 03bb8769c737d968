package llm

import "testing"

func TestNewGeminiRejectsEmptyKey(t *testing.T) {
	if _, err := NewGemini("", "", ""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
	if _, err := NewGemini("   ", "", ""); err == nil {
		t.Fatalf("expected error for blank api key")
	}
}

func TestNewGeminiDefaults(t *testing.T) {
	c, err := NewGemini("test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, c.Model())
	}
}
