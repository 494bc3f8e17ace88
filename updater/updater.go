package updater

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/DSM-PICK/pick-cli/config"
	"github.com/DSM-PICK/pick-cli/ui"
)

const (
	QuietInterval  = 24 * time.Hour
	NoticeDelay    = 3 * time.Second
	installTimeout = 30 * time.Second
	requestTimeout = 10 * time.Second
)

// Checker compares the installed version with the latest published one and
// reinstalls through the Go toolchain when asked to.
type Checker struct {
	ModulePath string
	ProxyURL   string
	HTTPClient *http.Client
	Store      *config.Store
	Prompter   ui.Prompter
	Screen     *ui.Screen

	CurrentVersion func() string
	Now            func() time.Time
	Sleep          func(time.Duration)
	Install        func(ctx context.Context, modulePath string) error
	Exit           func(code int)
}

func New(s *config.Settings, store *config.Store, prompter ui.Prompter, screen *ui.Screen) *Checker {
	return &Checker{
		ModulePath:     s.ModulePath,
		ProxyURL:       s.ProxyURL,
		HTTPClient:     &http.Client{Timeout: requestTimeout},
		Store:          store,
		Prompter:       prompter,
		Screen:         screen,
		CurrentVersion: CurrentVersion,
		Now:            time.Now,
		Sleep:          time.Sleep,
		Install:        goInstall,
		Exit:           os.Exit,
	}
}

func (c *Checker) versions(ctx context.Context) (current, latest string, err error) {
	current = c.CurrentVersion()
	if current == "" {
		return "", "", errors.Wrap(ErrVersionCheck, "installed version is unknown")
	}
	latest, err = LatestVersion(ctx, c.HTTPClient, c.ProxyURL, c.ModulePath)
	if err != nil {
		return "", "", errors.Wrap(ErrVersionCheck, err.Error())
	}
	return current, latest, nil
}

// CheckForUpdates runs the interactive update flow. A silent call does
// nothing; the silent path is CheckForUpdatesQuietly. It reports whether an
// update was installed, which normally ends the process first.
func (c *Checker) CheckForUpdates(ctx context.Context, silent bool) bool {
	if silent {
		return false
	}
	c.Screen.Progress("업데이트 확인 중...")
	current, latest, err := c.versions(ctx)
	if err != nil {
		log.Debugf("update check: %s", err)
		c.Screen.Warn("버전 확인에 실패했습니다.")
		return false
	}
	newer, err := IsNewer(latest, current)
	if err != nil {
		log.Debugf("update check: %s", err)
		c.Screen.Warn("버전 확인에 실패했습니다.")
		return false
	}
	if !newer {
		c.Screen.Success("최신 버전을 사용 중입니다.")
		return false
	}

	color := c.Screen.Color()
	c.Screen.Box(color.Yellow("🚀 새로운 버전이 있습니다!"),
		"현재 버전: "+current,
		color.Green("최신 버전: "+latest),
		"",
		color.Cyan("업데이트를 권장합니다."),
	)
	ok, err := c.Prompter.Confirm("지금 업데이트하시겠습니까?", true)
	if err != nil || !ok {
		return false
	}
	return c.performUpdate(ctx)
}

func (c *Checker) performUpdate(ctx context.Context) bool {
	c.Screen.Progress("업데이트 중...")
	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()
	if err := c.Install(ctx, c.ModulePath); err != nil {
		log.Errorf("update failed: %s", err)
		c.Screen.Fail("업데이트 실패")
		c.Screen.Fail("오류: " + err.Error())
		return false
	}
	c.Screen.Success("업데이트가 완료되었습니다!")
	c.Screen.Box(c.Screen.Color().Green("✨ 업데이트 완료!"),
		"새로운 버전이 설치되었습니다.",
		c.Screen.Color().Yellow("변경사항을 적용하려면 CLI를 다시 시작해주세요."),
	)
	c.Exit(0)
	return true
}

// CheckForUpdatesQuietly runs at most once per QuietInterval. It never
// prompts; a newer version only produces a notice. Once past the throttle it
// always records the attempt, whatever the outcome.
func (c *Checker) CheckForUpdatesQuietly(ctx context.Context) bool {
	cfg, err := c.Store.Load()
	if err != nil {
		log.Warnf("설정 로드 실패: %s", err)
	}
	now := c.Now()
	if last, ok := cfg.LastChecked(); ok && now.Sub(last) < QuietInterval {
		return false
	}

	c.notifyIfNewer(ctx)

	if err := c.Store.Update(func(cfg *config.Config) { cfg.SetLastChecked(now) }); err != nil {
		log.Warnf("설정 저장 실패: %s", err)
	}
	return false
}

func (c *Checker) notifyIfNewer(ctx context.Context) {
	current, latest, err := c.versions(ctx)
	if err != nil {
		log.Debugf("quiet update check: %s", err)
		return
	}
	newer, err := IsNewer(latest, current)
	if err != nil || !newer {
		return
	}
	color := c.Screen.Color()
	c.Screen.Box(color.Yellow("🚀 새로운 버전 "+latest+"이 있습니다!"),
		"현재 버전: "+current,
		color.Cyan("'pick --update'로 업데이트하세요."),
	)
	c.Sleep(NoticeDelay)
}

func goInstall(ctx context.Context, modulePath string) error {
	cmd := exec.CommandContext(ctx, "go", "install", modulePath+"@latest")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "go install: %s", strings.TrimSpace(string(output)))
	}
	return nil
}
