package menu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/handlers"
	"github.com/DSM-PICK/pick-cli/ui"
)

type Action string

const (
	ActionTimetable   Action = "timetable"
	ActionMeal        Action = "meal"
	ActionEarlyReturn Action = "early_return"
	ActionApplication Action = "application"
	ActionClassroom   Action = "classroom"
	ActionSettings    Action = "settings"
	ActionExit        Action = "exit"
)

type State string

const (
	StateConnecting      State = "connecting"
	StateAuthenticating  State = "authenticating"
	StateLoadingUserInfo State = "loading_user_info"
	StateMenuLoop        State = "menu_loop"
	StateTerminated      State = "terminated"
)

const bannerDelay = 2 * time.Second

// ErrConnectivity ends the session before login when the server is not
// reachable.
var ErrConnectivity = errors.New("server unreachable")

var mainChoices = []ui.Choice{
	{Title: "📚 시간표+자감쌤", Value: string(ActionTimetable)},
	{Title: "🍽️  주말 급식 신청", Value: string(ActionMeal)},
	{Title: "🏃 조기 귀가", Value: string(ActionEarlyReturn)},
	{Title: "🚪 외출 신청", Value: string(ActionApplication)},
	{Title: "🏠 교실 이동", Value: string(ActionClassroom)},
	{Title: "⚙️  설정", Value: string(ActionSettings)},
	{Title: "🚪 종료", Value: string(ActionExit)},
}

// Controller drives one interactive session from the connectivity probe to
// the farewell.
type Controller struct {
	api      *api.Client
	handlers *handlers.Handlers
	prompter ui.Prompter
	screen   *ui.Screen

	choices []ui.Choice
	routes  map[Action]func(ctx context.Context) error

	Sleep func(time.Duration)

	mu       sync.Mutex
	state    State
	userInfo *api.UserInfo
}

func New(h *handlers.Handlers) *Controller {
	c := &Controller{
		api:      h.API,
		handlers: h,
		prompter: h.Prompter,
		screen:   h.Screen,
		choices:  mainChoices,
		Sleep:    time.Sleep,
		state:    StateConnecting,
	}
	c.routes = map[Action]func(ctx context.Context) error{
		ActionTimetable:   h.Timetable,
		ActionMeal:        h.WeekendMeal,
		ActionEarlyReturn: h.EarlyReturn,
		ActionApplication: h.Application,
		ActionClassroom:   h.Classroom,
		ActionSettings:    h.Settings,
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	log.Debugf("session: %s -> %s", c.state, state)
	c.state = state
}

// UserInfo returns the cached user, if it was loaded.
func (c *Controller) UserInfo() (api.UserInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userInfo == nil {
		return api.UserInfo{}, false
	}
	return *c.userInfo, true
}

func (c *Controller) setUserInfo(info api.UserInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userInfo = &info
}

// Run walks the session states and returns once the session terminates.
// Only a failed connectivity probe is reported as an error; a cancelled or
// failed login ends the session quietly.
func (c *Controller) Run(ctx context.Context) error {
	defer c.setState(StateTerminated)

	c.setState(StateConnecting)
	if err := c.connect(ctx); err != nil {
		return err
	}

	c.setState(StateAuthenticating)
	if err := c.handlers.Login(ctx, true); err != nil {
		log.Debugf("login ended the session: %s", err)
		return nil
	}

	c.setState(StateLoadingUserInfo)
	if err := c.loadUserInfo(ctx); err != nil {
		c.screen.Warn("사용자 정보 로드 실패")
	}

	c.setState(StateMenuLoop)
	for {
		action, err := c.showMainMenu(ctx)
		if err != nil {
			if !errors.Is(err, ui.ErrCancelled) {
				log.Errorf("main menu: %s", err)
			}
			action = ActionExit
		}
		if action == ActionExit {
			c.farewell()
			return nil
		}
		c.dispatch(ctx, action)
	}
}

func (c *Controller) connect(ctx context.Context) error {
	c.screen.Progress("네트워크 연결 확인 중...")
	if err := c.api.HealthCheck(ctx); err != nil {
		log.Debugf("health check: %s", err)
		c.screen.Fail("서버 연결 실패 - 네트워크를 확인해주세요")
		return errors.Wrap(ErrConnectivity, err.Error())
	}
	c.screen.Success("서버 연결 성공")
	return nil
}

func (c *Controller) loadUserInfo(ctx context.Context) error {
	info, err := c.api.UserSimple(ctx)
	if err != nil {
		log.Warnf("user info: %s", err)
		return err
	}
	c.setUserInfo(info)
	return nil
}

func (c *Controller) showMainMenu(ctx context.Context) (Action, error) {
	c.screen.Clear()

	info, ok := c.UserInfo()
	if !ok {
		c.screen.Progress("사용자 정보 로딩 중...")
		if err := c.loadUserInfo(ctx); err != nil {
			c.screen.Fail("사용자 정보 로드 실패")
		}
		info, ok = c.UserInfo()
	}
	if ok {
		c.screen.Box(c.screen.Color().Bold("👤 "+info.UserName),
			c.screen.Color().Grey(fmt.Sprintf("%d학년 %d반 %d번", info.Grade, info.ClassNum, info.Num)))
	}

	choice, err := c.prompter.Select("원하는 기능을 선택하세요:", c.choices)
	if err != nil {
		return "", err
	}
	return Action(choice), nil
}

func (c *Controller) dispatch(ctx context.Context, action Action) {
	handle, ok := c.routes[action]
	if !ok {
		c.screen.Clear()
		c.screen.Box(c.screen.Color().Yellow("🚧 해당 기능은 준비 중입니다."))
		c.Sleep(bannerDelay)
		return
	}
	if err := c.guard(ctx, handle); err != nil {
		log.Errorf("%s: %s", action, err)
		c.screen.Clear()
		c.screen.Box(c.screen.Color().Red("❌ 오류: " + err.Error()))
		c.Sleep(bannerDelay)
	}
}

// guard runs a handler and turns a panic into an error so one screen cannot
// end the session.
func (c *Controller) guard(ctx context.Context, handle func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return handle(ctx)
}

func (c *Controller) farewell() {
	c.screen.Clear()
	c.screen.Box(c.screen.Color().Yellow("👋 안녕히 가세요!"))
}
