package handlers

import (
	"errors"
	"time"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/config"
	"github.com/DSM-PICK/pick-cli/ui"
	"github.com/DSM-PICK/pick-cli/updater"
)

const (
	pauseShort  = 1500 * time.Millisecond
	pauseNormal = 2 * time.Second

	continueMessage = "Enter를 눌러 계속..."
)

// Handlers carries what every feature screen needs. Each screen renders its
// own API failures and returns to the menu; only unexpected errors are
// returned.
type Handlers struct {
	API      *api.Client
	Prompter ui.Prompter
	Screen   *ui.Screen
	Store    *config.Store
	Updater  *updater.Checker

	Sleep func(time.Duration)
	Now   func() time.Time
}

func New(client *api.Client, prompter ui.Prompter, screen *ui.Screen, store *config.Store, checker *updater.Checker) *Handlers {
	return &Handlers{
		API:      client,
		Prompter: prompter,
		Screen:   screen,
		Store:    store,
		Updater:  checker,
		Sleep:    time.Sleep,
		Now:      time.Now,
	}
}

func (h *Handlers) pause(d time.Duration) {
	if h.Sleep != nil {
		h.Sleep(d)
	}
}

// back turns a closed prompt into a plain return to the menu.
func back(err error) error {
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	return err
}

func (h *Handlers) title(text string, paint func(msg interface{}, styles ...string) string) {
	h.Screen.Clear()
	h.Screen.Box(paint(text))
}

// statusLabel renders an approval status and the color to paint it with.
func (h *Handlers) statusLabel(status string) string {
	c := h.Screen.Color()
	switch status {
	case api.StatusOK:
		return c.Green("상태: 승인됨")
	case api.StatusNO:
		return c.Red("상태: 거부됨")
	default:
		return c.Yellow("상태: 대기중")
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
