package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/config"
)

var (
	validate = validator.New()

	ErrLoginCancelled = errors.New("login cancelled")
)

// Login authenticates the session. With auto set it first tries the saved
// credentials and falls back to the interactive form. It returns
// ErrLoginCancelled when an id or password was left empty.
func (h *Handlers) Login(ctx context.Context, auto bool) error {
	cfg, err := h.Store.Load()
	if err != nil {
		log.Warnf("설정 로드 실패: %s", err)
		h.Screen.Warn("설정 로드 실패")
	}

	if auto && cfg != nil && cfg.Credentials != nil && validate.Struct(cfg.Credentials) == nil {
		h.Screen.Progress("자동 로그인 중...")
		err := h.authenticate(ctx, *cfg.Credentials)
		if err == nil {
			h.Screen.Success("자동 로그인 성공")
			h.pause(800 * time.Millisecond)
			h.Screen.Clear()
			return nil
		}
		log.Debugf("auto login: %s", err)
		h.Screen.Warn("자동 로그인 실패 - 수동 로그인을 진행합니다")
		h.pause(1200 * time.Millisecond)
		h.Screen.Clear()
	}

	h.Screen.Box(h.Screen.Color().Cyan("🏫 DSM PiCK CLI - 로그인"))
	accountID, err := h.Prompter.Input("아이디를 입력하세요:", nil)
	if err != nil || accountID == "" {
		h.Screen.Fail("로그인이 취소되었습니다.")
		return ErrLoginCancelled
	}
	password, err := h.Prompter.Password("비밀번호를 입력하세요:")
	if err != nil || password == "" {
		h.Screen.Fail("로그인이 취소되었습니다.")
		return ErrLoginCancelled
	}
	creds := config.Credentials{AccountID: accountID, Password: password}

	h.Screen.Progress("로그인 중...")
	if err := h.authenticate(ctx, creds); err != nil {
		h.Screen.Fail("로그인 실패: " + err.Error())
		h.pause(pauseNormal)
		return errors.Wrap(err, "login")
	}
	h.Screen.Success("로그인 성공!")

	save, err := h.Prompter.Confirm("다음에 자동 로그인하시겠습니까?", true)
	if err == nil && save {
		if err := h.Store.Update(func(cfg *config.Config) { cfg.Credentials = &creds }); err != nil {
			log.Warnf("설정 저장 실패: %s", err)
			h.Screen.Fail("설정 저장 실패")
		}
	}
	h.pause(time.Second)
	h.Screen.Clear()
	return nil
}

func (h *Handlers) authenticate(ctx context.Context, creds config.Credentials) error {
	tokens, err := h.API.Login(ctx, api.LoginRequest{
		AccountID:   creds.AccountID,
		Password:    creds.Password,
		DeviceToken: "",
	})
	if err != nil {
		return err
	}
	h.API.Session().Set(tokens.AccessToken)
	h.API.Session().SetRefresh(tokens.RefreshToken)
	return nil
}
