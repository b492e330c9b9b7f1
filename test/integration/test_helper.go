package integration

import (
	"os"
	"testing"
)

// BaseURL points at a running API server, e.g. http://localhost:8080
var BaseURL = os.Getenv("SOLTOKEN_API_URL")

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

func requireServer(t *testing.T) {
	t.Helper()
	if BaseURL == "" {
		t.Skip("SOLTOKEN_API_URL not set")
	}
}
