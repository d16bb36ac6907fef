package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/config"
)

func TestNewClientDisabledWithoutKey(t *testing.T) {
	client := NewClient(config.AIConfig{})
	if client.Enabled() {
		t.Fatal("client without api key should be disabled")
	}
	if _, err := client.Complete(context.Background(), "sys", "user"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("want ErrDisabled got %v", err)
	}
}

func TestNewClientEnabledWithKey(t *testing.T) {
	client := NewClient(config.AIConfig{APIKey: "sk-test", BaseURL: "https://api.deepseek.com"})
	if !client.Enabled() {
		t.Fatal("client with api key should be enabled")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"plain array", `[1,2]`, `[1,2]`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced bare", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", `Here you go: {"a":1} hope that helps`, `{"a":1}`},
		{"no json", "sorry, I cannot do that", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
