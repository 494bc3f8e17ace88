package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/config"
	"github.com/DSM-PICK/pick-cli/session"
	"github.com/DSM-PICK/pick-cli/ui"
)

type reply struct {
	status int
	body   string
}

type call struct {
	method string
	path   string
	query  string
	body   map[string]any
}

type fixture struct {
	handlers *Handlers
	store    *config.Store
	holder   *session.Holder
	out      *bytes.Buffer

	mu    sync.Mutex
	calls []call
}

// newFixture serves routes keyed by "METHOD /path" and feeds input to the
// prompter line by line. Unknown routes answer 404.
func newFixture(t *testing.T, routes map[string]reply, input string) *fixture {
	t.Helper()
	f := &fixture{out: &bytes.Buffer{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		f.mu.Lock()
		f.calls = append(f.calls, c)
		f.mu.Unlock()

		rep, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if rep.status == 0 {
			rep.status = http.StatusOK
		}
		if rep.body == "" {
			if rep.status == http.StatusOK {
				rep.status = http.StatusNoContent
			}
			w.WriteHeader(rep.status)
			return
		}
		w.WriteHeader(rep.status)
		_, _ = w.Write([]byte(rep.body))
	}))
	t.Cleanup(srv.Close)

	f.holder = session.NewHolder()
	f.store = config.NewStore(filepath.Join(t.TempDir(), config.ConfigFileName))
	screen := ui.NewScreen(f.out)
	prompter := ui.NewReaderTerminal(strings.NewReader(input), f.out, screen)
	f.handlers = New(api.NewClient(srv.URL, f.holder, srv.Client()), prompter, screen, f.store, nil)
	f.handlers.Sleep = func(time.Duration) {}
	f.handlers.Now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local) }
	return f
}

func (f *fixture) requests(method, path string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []call
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			matched = append(matched, c)
		}
	}
	return matched
}

func (f *fixture) output() string {
	return f.out.String()
}

func TestBack(t *testing.T) {
	require.NoError(t, back(nil))
	require.NoError(t, back(ui.ErrCancelled))
	require.ErrorIs(t, back(context.Canceled), context.Canceled)
}

func TestStatusLabel(t *testing.T) {
	f := newFixture(t, nil, "")
	tests := map[string]string{
		api.StatusOK:   "상태: 승인됨",
		api.StatusNO:   "상태: 거부됨",
		api.StatusWait: "상태: 대기중",
		"":             "상태: 대기중",
	}
	for status, want := range tests {
		require.Equal(t, want, f.handlers.statusLabel(status))
	}
}
