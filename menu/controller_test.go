package menu

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/config"
	"github.com/DSM-PICK/pick-cli/handlers"
	"github.com/DSM-PICK/pick-cli/session"
	"github.com/DSM-PICK/pick-cli/ui"
)

type server struct {
	mu     sync.Mutex
	hits   map[string]int
	health int
	user   int
}

func (s *server) count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	s.mu.Lock()
	s.hits[key]++
	s.mu.Unlock()

	switch key {
	case "GET /swagger-ui/index.html":
		w.WriteHeader(s.health)
		_, _ = w.Write([]byte("<html></html>"))
	case "POST /user/login":
		_, _ = w.Write([]byte(`{"access_token":"access","refresh_token":"refresh"}`))
	case "GET /user/simple":
		w.WriteHeader(s.user)
		if s.user == http.StatusOK {
			_, _ = w.Write([]byte(`{"user_name":"홍길동","grade":2,"class_num":3,"num":14}`))
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type fixture struct {
	controller *Controller
	server     *server
	store      *config.Store
	out        *bytes.Buffer
}

func newFixture(t *testing.T, health, user int, input string) *fixture {
	t.Helper()
	f := &fixture{
		server: &server{hits: map[string]int{}, health: health, user: user},
		out:    &bytes.Buffer{},
	}
	srv := httptest.NewServer(f.server)
	t.Cleanup(srv.Close)

	f.store = config.NewStore(filepath.Join(t.TempDir(), config.ConfigFileName))
	screen := ui.NewScreen(f.out)
	prompter := ui.NewReaderTerminal(strings.NewReader(input), f.out, screen)
	h := handlers.New(api.NewClient(srv.URL, session.NewHolder(), srv.Client()), prompter, screen, f.store, nil)
	h.Sleep = func(time.Duration) {}
	f.controller = New(h)
	f.controller.Sleep = func(time.Duration) {}
	return f
}

func (f *fixture) saveCredentials(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Save(&config.Config{
		Credentials: &config.Credentials{AccountID: "student", Password: "secret"},
	}))
}

func TestRun_ConnectivityFailure(t *testing.T) {
	f := newFixture(t, http.StatusServiceUnavailable, http.StatusOK, "")
	f.saveCredentials(t)

	err := f.controller.Run(context.Background())

	require.ErrorIs(t, err, ErrConnectivity)
	assert.Contains(t, f.out.String(), "서버 연결 실패 - 네트워크를 확인해주세요")
	assert.Zero(t, f.server.count("POST /user/login"))
	assert.Equal(t, StateTerminated, f.controller.State())
}

func TestRun_AutoLoginReachesMenuLoop(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusOK, "7\n")
	f.saveCredentials(t)

	require.NoError(t, f.controller.Run(context.Background()))

	out := f.out.String()
	assert.NotContains(t, out, "아이디를 입력하세요")
	assert.Contains(t, out, "원하는 기능을 선택하세요")
	assert.Contains(t, out, "👤 홍길동")
	assert.Contains(t, out, "2학년 3반 14번")
	assert.Contains(t, out, "👋 안녕히 가세요!")
	assert.Equal(t, 1, f.server.count("POST /user/login"))
	assert.Equal(t, 1, f.server.count("GET /user/simple"))

	info, ok := f.controller.UserInfo()
	require.True(t, ok)
	assert.Equal(t, "홍길동", info.UserName)
	assert.Equal(t, StateTerminated, f.controller.State())
}

func TestRun_UserInfoFailureIsDegraded(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusInternalServerError, "7\n")
	f.saveCredentials(t)

	require.NoError(t, f.controller.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "사용자 정보 로드 실패")
	assert.Contains(t, out, "원하는 기능을 선택하세요")
	assert.Contains(t, out, "👋 안녕히 가세요!")
	_, ok := f.controller.UserInfo()
	assert.False(t, ok)
}

func TestRun_LoginCancelledSkipsMenu(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusOK, "\n")

	require.NoError(t, f.controller.Run(context.Background()))

	assert.Contains(t, f.out.String(), "로그인이 취소되었습니다.")
	assert.NotContains(t, f.out.String(), "원하는 기능을 선택하세요")
	assert.Zero(t, f.server.count("GET /user/simple"))
}

func TestRun_ClosedInputOnMenuExits(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusOK, "")
	f.saveCredentials(t)

	require.NoError(t, f.controller.Run(context.Background()))
	assert.Contains(t, f.out.String(), "👋 안녕히 가세요!")
}

func TestRun_HandlerFailuresKeepTheLoop(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusOK, "1\n2\n7\n")
	f.saveCredentials(t)
	var calls []Action
	f.controller.routes[ActionTimetable] = func(context.Context) error {
		calls = append(calls, ActionTimetable)
		return errors.New("boom")
	}
	f.controller.routes[ActionMeal] = func(context.Context) error {
		calls = append(calls, ActionMeal)
		panic("kaboom")
	}

	require.NoError(t, f.controller.Run(context.Background()))

	out := f.out.String()
	assert.Equal(t, []Action{ActionTimetable, ActionMeal}, calls)
	assert.Contains(t, out, "❌ 오류: boom")
	assert.Contains(t, out, "❌ 오류: kaboom")
	assert.Contains(t, out, "👋 안녕히 가세요!")
	assert.Equal(t, 1, f.server.count("GET /user/simple"), "user info is cached")
}

func TestRun_UnknownAction(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusOK, "8\n7\n")
	f.saveCredentials(t)
	f.controller.choices = append(append([]ui.Choice{}, mainChoices...), ui.Choice{Title: "🧪 실험실", Value: "lab"})

	require.NoError(t, f.controller.Run(context.Background()))
	assert.Contains(t, f.out.String(), "🚧 해당 기능은 준비 중입니다.")
}

func TestMainChoicesAreRouted(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusOK, "")
	for _, choice := range mainChoices {
		if Action(choice.Value) == ActionExit {
			continue
		}
		_, ok := f.controller.routes[Action(choice.Value)]
		assert.True(t, ok, choice.Value)
	}
}
