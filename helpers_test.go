package mockql

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/broady/mockql/mock"
)

const usersConfig = `[{"name":"/users","response":[{"id":1,"name":"Ann"}]}]`

// testServer bundles an App with the file and store behind it.
type testServer struct {
	path     string
	store    *Store
	reloader *Reloader
	app      *App
	handler  http.Handler
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer writes initial to a temporary configuration file and serves
// it with a seeded mocker.
func newTestServer(t *testing.T, initial string) *testServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "endpoints.json")
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	m := mock.New(mock.WithSeed(1), mock.WithLogger(discardLogger()))
	snap, err := LoadSnapshot(path, m)
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	store := NewStore(snap)
	reloader := NewReloader(path, store, m).WithLogger(discardLogger())
	app := NewApp(store, reloader).WithLogger(discardLogger())
	return &testServer{
		path:     path,
		store:    store,
		reloader: reloader,
		app:      app,
		handler:  app.Handler(),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
