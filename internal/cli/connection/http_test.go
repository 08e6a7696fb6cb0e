package connection

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
)

func TestNewHubClient(t *testing.T) {
	tests := []struct {
		name       string
		server     string
		wantPrefix string
	}{
		{"with http prefix", "http://localhost:8080", "http://localhost:8080"},
		{"with https prefix", "https://localhost:8080", "https://localhost:8080"},
		{"without prefix", "localhost:8080", "http://localhost:8080"},
		{"trailing slash", "http://hub.example.com/", "http://hub.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHubClient(tt.server, "secret")
			if client.BaseURL() != tt.wantPrefix {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.wantPrefix)
			}
		})
	}
}

func TestHubClient_SendCommand_Request(t *testing.T) {
	var got domain.Document

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != CommandPath {
			t.Errorf("path = %q, want %q", r.URL.Path, CommandPath)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("X-Api-Key = %q, want %q", r.Header.Get("X-Api-Key"), "secret")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "telemetry-cli/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHubClient(server.URL, "secret")
	cmd := domain.SetLogLevel{NodeID: domain.NodeID(21), LogLevel: domain.LogLevelDebug}

	if err := client.SendCommand(context.Background(), cmd); err != nil {
		t.Fatalf("SendCommand() error = %v", err)
	}

	if got.Command != "set_log_level" {
		t.Errorf("command = %q", got.Command)
	}
	if got.Parameters["log_level"] != "DEBUG" {
		t.Errorf("log_level = %v", got.Parameters["log_level"])
	}
	if id, ok := got.NodeIDOf(); !ok || id != 21 {
		t.Errorf("NodeIDOf() = (%d, %v), want (21, true)", id, ok)
	}
}

func TestHubClient_Send_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantText string
	}{
		{"ok", http.StatusOK, "", nil, ""},
		{"unauthorized", http.StatusUnauthorized, "nope", domain.ErrHubUnauthorized, "401 Unauthorized - Invalid API key"},
		{"bad request", http.StatusBadRequest, "bad payload\n", domain.ErrHubClientError, "command error: 400 - bad payload"},
		{"not found", http.StatusNotFound, "", domain.ErrHubClientError, "command error: 404"},
		{"server error", http.StatusInternalServerError, "boom", domain.ErrHubServerError, "server error: 500 - boom"},
		{"bad gateway", http.StatusBadGateway, "relay down", domain.ErrHubServerError, "502 - relay down"},
		{"created is unexpected", http.StatusCreated, "", domain.ErrHubUnexpectedStatus, "unexpected response: 201"},
		{"no content is unexpected", http.StatusNoContent, "", domain.ErrHubUnexpectedStatus, "204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewHubClient(server.URL, "secret")
			err := client.SendCommand(context.Background(), domain.UpdateNode{})

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("SendCommand() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SendCommand() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestHubClient_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewHubClient(url, "secret")
	err := client.SendCommand(context.Background(), domain.UpdateProbe{})

	if !errors.Is(err, domain.ErrHubUnreachable) {
		t.Fatalf("SendCommand() error = %v, want ErrHubUnreachable", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("transport error should be kept as cause")
	}
}

func TestHubClient_WithTLSConfig(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	pool := x509.NewCertPool()
	pool.AddCert(server.Certificate())

	trusted := NewHubClient(server.URL, "secret", WithTLSConfig(&tls.Config{RootCAs: pool}))
	if err := trusted.SendCommand(context.Background(), domain.UpdateNode{}); err != nil {
		t.Fatalf("SendCommand() with trusted CA error = %v", err)
	}

	untrusted := NewHubClient(server.URL, "secret", WithTLSConfig(nil))
	err := untrusted.SendCommand(context.Background(), domain.UpdateNode{})
	if !errors.Is(err, domain.ErrHubUnreachable) {
		t.Errorf("SendCommand() without CA error = %v, want ErrHubUnreachable", err)
	}
}

func TestHubClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewHubClient(server.URL, "secret", WithTimeout(20*time.Millisecond))
	err := client.SendCommand(context.Background(), domain.RebootProbe{})

	if !errors.Is(err, domain.ErrHubUnreachable) {
		t.Errorf("SendCommand() error = %v, want ErrHubUnreachable", err)
	}
}

func TestHubClient_SendCommand_Quit(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewHubClient(server.URL, "secret")
	err := client.SendCommand(context.Background(), domain.Quit{})

	if !errors.Is(err, domain.ErrNonTransportable) {
		t.Errorf("SendCommand(Quit) error = %v, want ErrNonTransportable", err)
	}
	if called {
		t.Error("quit must not reach the hub")
	}
}

func TestHubClient_UpdateCredentials(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(APIKeyHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHubClient("http://old-hub", "old-key")
	client.UpdateCredentials(server.URL+"/", "new-key")

	if client.BaseURL() != server.URL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), server.URL)
	}
	if err := client.SendCommand(context.Background(), domain.UpdateNode{}); err != nil {
		t.Fatalf("SendCommand() error = %v", err)
	}
	if gotKey != "new-key" {
		t.Errorf("X-Api-Key = %q, want %q", gotKey, "new-key")
	}
}

func TestHubClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHubClient(server.URL, "secret")
	if err := client.SendCommand(ctx, domain.UpdateNode{}); !errors.Is(err, domain.ErrHubUnreachable) {
		t.Errorf("SendCommand() error = %v, want ErrHubUnreachable", err)
	}
}
