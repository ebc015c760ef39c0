package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		wantErr bool
	}{
		{"default model", OpenRouterConfig{APIKey: "sk-or-studio", Model: DefaultConfig().OpenRouter.Model}, false},
		{"vendor qualified model", OpenRouterConfig{APIKey: "sk-or-studio", Model: "anthropic/claude-3-haiku"}, false},
		{"custom base URL", OpenRouterConfig{APIKey: "sk-or-studio", Model: "google/gemini-2.5-flash", BaseURL: "https://router.studio.example/v1"}, false},
		{"missing key", OpenRouterConfig{Model: "google/gemini-2.5-flash"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Model ids go through unchanged, no friendly-name mapping.
			if p.ModelID() != tt.cfg.Model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.cfg.Model)
			}
		})
	}
}

func TestOpenRouterProvider_DraftRoundTrip(t *testing.T) {
	const draft = "Gentile Avv. Russo, confermo l'appuntamento di giovedì alle 10:00."

	var gotModel, gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "gen-studio",
			"object": "chat.completion",
			"model":  body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": draft},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 52, "completion_tokens": 18, "total_tokens": 70},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-studio",
		Model:   "google/gemini-2.5-flash",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithPurpose(t.Context(), PurposeAssist)
	resp, err := p.Generate(ctx, Request{
		System:   "You help an office assistant draft short replies.",
		Messages: []Message{{Role: RoleUser, Content: "Draft a reply to Avv. Russo about Thursday's meeting."}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != draft {
		t.Errorf("text = %q", resp.Text)
	}
	if len(resp.Content) != 0 {
		t.Errorf("free-text request should not carry JSON content, got %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 70 {
		t.Errorf("total tokens = %d, want 70", resp.Usage.TotalTokens)
	}
	if gotModel != "google/gemini-2.5-flash" {
		t.Errorf("model sent = %q", gotModel)
	}
	if gotAuth != "Bearer sk-or-studio" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if !strings.HasSuffix(gotPath, "/chat/completions") {
		t.Errorf("path = %q", gotPath)
	}
}
