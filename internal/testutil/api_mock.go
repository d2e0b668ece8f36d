package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hbjs97/pmctl/internal/postman"
)

// MockAPIServer creates a test HTTP server for the given handler and returns its URL.
// The server is automatically closed when the test finishes.
func MockAPIServer(t *testing.T, handler http.Handler) string {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server.URL
}

// FakePostman is an in-memory Postman API.
// Requests whose X-Api-Key is not in Users get a 401.
type FakePostman struct {
	Users       map[string]postman.User
	Workspaces  []postman.Workspace
	Collections map[string][]postman.Collection // workspace id -> collections; "" for all

	mu    sync.Mutex
	Calls []string
}

// NewFakePostman creates a FakePostman that accepts the given key.
func NewFakePostman(validKey string) *FakePostman {
	return &FakePostman{
		Users: map[string]postman.User{
			validKey: {ID: 42, Username: "tester", FullName: "Test User", Email: "tester@example.com"},
		},
		Collections: make(map[string][]postman.Collection),
	}
}

// CallCount returns how many requests hit the given path.
func (f *FakePostman) CallCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == path {
			n++
		}
	}
	return n
}

// ServeHTTP implements http.Handler.
func (f *FakePostman) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.Calls = append(f.Calls, r.URL.Path)
	f.mu.Unlock()

	user, ok := f.Users[r.Header.Get("X-Api-Key")]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, PostmanErrorJSON("AuthenticationError", "Invalid API Key."))
		return
	}

	switch r.URL.Path {
	case "/me":
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	case "/workspaces":
		workspaces := f.Workspaces
		if workspaces == nil {
			workspaces = []postman.Workspace{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"workspaces": workspaces})
	case "/collections":
		collections := f.Collections[r.URL.Query().Get("workspace")]
		if collections == nil {
			collections = []postman.Collection{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"collections": collections})
	default:
		writeJSON(w, http.StatusNotFound, PostmanErrorJSON("notFound", "not found"))
	}
}

// PostmanErrorJSON returns the error body shape used by the Postman API.
func PostmanErrorJSON(name, message string) map[string]any {
	return map[string]any{"error": map[string]string{"name": name, "message": message}}
}

// StatusResponse creates a handler that always answers with the given status and body.
func StatusResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
