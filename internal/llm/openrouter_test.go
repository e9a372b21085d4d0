package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func openRouterServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestOpenRouterComplete(t *testing.T) {
	t.Run("successful_completion", func(t *testing.T) {
		var gotAuth string
		var gotBody chatRequest
		server := openRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": "  Meals & Entertainment  "}},
				},
			})
		})

		client := NewOpenRouterClient("test-key", "x-ai/grok-4.1-fast:free").WithBaseURL(server.URL)
		got, err := client.Complete(context.Background(), Request{
			System:      "You are an accountant.",
			User:        "Categorize this.",
			MaxTokens:   50,
			Temperature: 0.3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Meals & Entertainment" {
			t.Errorf("answer = %q, want trimmed content", got)
		}
		if gotAuth != "Bearer test-key" {
			t.Errorf("auth header = %q", gotAuth)
		}
		if gotBody.Model != "x-ai/grok-4.1-fast:free" {
			t.Errorf("model = %q", gotBody.Model)
		}
		if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", gotBody.Messages)
		}
	})

	t.Run("non_200_status", func(t *testing.T) {
		server := openRouterServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		})

		client := NewOpenRouterClient("test-key", "model").WithBaseURL(server.URL)
		if _, err := client.Complete(context.Background(), Request{User: "hi"}); err == nil {
			t.Fatal("expected error for 429 response")
		}
	})

	t.Run("empty_choices", func(t *testing.T) {
		server := openRouterServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		})

		client := NewOpenRouterClient("test-key", "model").WithBaseURL(server.URL)
		_, err := client.Complete(context.Background(), Request{User: "hi"})
		if err != ErrEmptyResponse {
			t.Fatalf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("blank_content", func(t *testing.T) {
		server := openRouterServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": "   "}},
				},
			})
		})

		client := NewOpenRouterClient("test-key", "model").WithBaseURL(server.URL)
		_, err := client.Complete(context.Background(), Request{User: "hi"})
		if err != ErrEmptyResponse {
			t.Fatalf("expected ErrEmptyResponse, got %v", err)
		}
	})
}

func TestNewOpenRouterClients(t *testing.T) {
	clients := NewOpenRouterClients("key", []string{"a", "b", "c"})
	if len(clients) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(clients))
	}
	if clients[0].Name() != "openrouter/a" {
		t.Errorf("name = %q, want openrouter/a", clients[0].Name())
	}
}
