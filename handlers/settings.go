package handlers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/DSM-PICK/pick-cli/ui"
)

const expiryLayout = "2006-01-02 15:04:05"

func (h *Handlers) Settings(ctx context.Context) error {
	h.title("⚙️ 설정", h.Screen.Color().Magenta)

	action, err := h.Prompter.Select("설정을 선택하세요:", []ui.Choice{
		{Title: "🗑️  자동 로그인 정보 삭제", Value: "clear_login"},
		{Title: "🔄 업데이트 확인", Value: "check_update"},
		{Title: "🔑 세션 정보", Value: "session"},
		{Title: "🔙 돌아가기", Value: "back"},
	})
	if err != nil {
		return back(err)
	}
	switch action {
	case "clear_login":
		h.clearLogin()
	case "check_update":
		h.Updater.CheckForUpdates(ctx, false)
		h.pause(pauseShort)
	case "session":
		return back(h.sessionInfo(ctx))
	}
	return nil
}

func (h *Handlers) clearLogin() {
	h.Screen.Progress("자동 로그인 정보 삭제 중...")
	cleared, err := h.Store.Clear()
	switch {
	case err != nil:
		log.Warnf("설정 삭제 실패: %s", err)
		h.Screen.Fail("삭제 실패")
	case cleared:
		h.Screen.Success("자동 로그인 정보가 삭제되었습니다.")
	default:
		h.Screen.Info("삭제할 정보가 없습니다.")
	}
	h.pause(pauseShort)
}

// sessionInfo shows what the access token claims about itself and offers a
// refresh when a refresh token is held. The claims are not verified.
func (h *Handlers) sessionInfo(ctx context.Context) error {
	holder := h.API.Session()
	claims, err := holder.Claims()
	if err != nil {
		log.Debugf("session claims: %s", err)
		h.Screen.Warn("세션 정보를 읽을 수 없습니다.")
		h.pause(pauseShort)
		return nil
	}

	expiry := "-"
	if !claims.ExpiresAt.IsZero() {
		expiry = claims.ExpiresAt.Local().Format(expiryLayout)
		if claims.ExpiresAt.Before(h.Now()) {
			expiry = h.Screen.Color().Red(expiry + " (만료됨)")
		}
	}
	h.Screen.Box(h.Screen.Color().Bold("🔑 세션 정보"),
		"사용자: "+orDash(claims.Subject),
		"만료 시각: "+expiry,
	)

	refreshToken, ok := holder.Refresh()
	if !ok {
		return h.Prompter.Wait(continueMessage)
	}
	refresh, err := h.Prompter.Confirm("세션을 갱신하시겠습니까?", false)
	if err != nil || !refresh {
		return err
	}

	h.Screen.Progress("세션 갱신 중...")
	tokens, err := h.API.RefreshToken(ctx, refreshToken)
	if err != nil {
		h.Screen.Fail("갱신 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}
	holder.Set(tokens.AccessToken)
	if tokens.RefreshToken != "" {
		holder.SetRefresh(tokens.RefreshToken)
	}
	h.Screen.Success("세션이 갱신되었습니다.")
	h.pause(pauseShort)
	return nil
}
