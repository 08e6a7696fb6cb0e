package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
)

// mockHub records documents posted to /command and answers with status.
type mockHub struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	docs   []domain.Document
	keys   []string
}

func newMockHub(t *testing.T) *mockHub {
	t.Helper()
	m := &mockHub{status: http.StatusOK}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/command" {
			http.NotFound(w, r)
			return
		}

		var doc domain.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m.mu.Lock()
		m.docs = append(m.docs, doc)
		m.keys = append(m.keys, r.Header.Get("X-Api-Key"))
		status, body := m.status, m.body
		m.mu.Unlock()

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockHub) respond(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status, m.body = status, body
}

func (m *mockHub) received() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Document(nil), m.docs...)
}

// writeConfig writes a TOML config pointing at hubURL.
func writeConfig(t *testing.T, hubURL, apiKey string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "api-key = \"" + apiKey + "\"\nhub-url = \"" + hubURL + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// testApp returns the application wired to in-memory streams. Exit errors
// are returned instead of terminating the test binary.
func testApp(stdin string) (*cli.App, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app, stdout, stderr
}

// exitCode extracts the status of an exit error, or 0 for nil.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if !errors.As(err, &ec) {
		t.Fatalf("error %v is not an exit error", err)
	}
	return ec.ExitCode()
}
