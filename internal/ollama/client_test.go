package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type mockEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

type mockListResponse struct {
	Models []mockModel `json:"models"`
}

type mockModel struct {
	Name string `json:"name"`
}

// newMockServer answers heartbeats, model listings and embed calls; each
// embedding is [len(input), index]
func newMockServer(t *testing.T, models ...string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/":
			w.WriteHeader(http.StatusOK)
		case "/api/tags":
			resp := mockListResponse{}
			for _, m := range models {
				resp.Models = append(resp.Models, mockModel{Name: m})
			}
			json.NewEncoder(w).Encode(resp)
		case "/api/embed":
			var req mockEmbedRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			resp := mockEmbedResponse{Model: req.Model}
			for i, text := range req.Input {
				resp.Embeddings = append(resp.Embeddings, []float32{float32(len(text)), float32(i)})
			}
			json.NewEncoder(w).Encode(resp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		model     string
		wantModel string
		wantErr   bool
	}{
		{
			name:      "with custom url and model",
			url:       "http://localhost:11434",
			model:     "custom-model",
			wantModel: "custom-model",
		},
		{
			name:      "with default url",
			url:       "",
			model:     "test-model",
			wantModel: "test-model",
		},
		{
			name:      "with all defaults",
			wantModel: DefaultModel,
		},
		{
			name:    "missing scheme",
			url:     "localhost",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, tt.model)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if client.Model() != tt.wantModel {
				t.Errorf("expected model %s, got %s", tt.wantModel, client.Model())
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	server := newMockServer(t)

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if !client.IsAvailable(context.Background()) {
		t.Error("expected mock server to be available")
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	client, err = NewClient(closedURL, "")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if client.IsAvailable(context.Background()) {
		t.Error("expected closed server to be unavailable")
	}
}

func TestEmbed(t *testing.T) {
	server := newMockServer(t)

	client, err := NewClient(server.URL, "test-model")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	t.Run("batch keeps order", func(t *testing.T) {
		got, err := client.Embed(context.Background(), []string{"a", "abc", "ab"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := [][]float64{{1, 0}, {3, 1}, {2, 2}}
		if len(got) != len(want) {
			t.Fatalf("expected %d embeddings, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
				t.Errorf("embedding %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), []string{"ok", "  "}); err == nil {
			t.Error("expected error for empty text")
		}
	})

	t.Run("no texts", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), nil); err == nil {
			t.Error("expected error for no texts")
		}
	})
}

func TestCheckModel(t *testing.T) {
	server := newMockServer(t, "nomic-embed-text:latest", "another-model")

	tests := []struct {
		name    string
		model   string
		wantErr bool
	}{
		{name: "implicit latest tag", model: "nomic-embed-text"},
		{name: "exact name", model: "another-model"},
		{name: "missing model", model: "nonexistent-model-xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(server.URL, tt.model)
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			err = client.CheckModel(context.Background())
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
