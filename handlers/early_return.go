package handlers

import (
	"context"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/ui"
	"github.com/DSM-PICK/pick-cli/utils"
)

var requestChoices = []ui.Choice{
	{Title: "📝 새로 신청하기", Value: "create"},
	{Title: "📋 내 신청 조회", Value: "view"},
	{Title: "🔙 돌아가기", Value: "back"},
}

func (h *Handlers) EarlyReturn(ctx context.Context) error {
	h.title("🏃 조기 귀가", h.Screen.Color().Yellow)

	action, err := h.Prompter.Select("원하는 작업을 선택하세요:", requestChoices)
	if err != nil {
		return back(err)
	}
	switch action {
	case "create":
		return back(h.createEarlyReturn(ctx))
	case "view":
		return back(h.viewEarlyReturn(ctx))
	}
	return nil
}

func (h *Handlers) createEarlyReturn(ctx context.Context) error {
	reason, err := h.Prompter.Input("조기 귀가 사유를 입력하세요:", utils.ValidateRequired("사유를 입력해주세요"))
	if err != nil {
		return err
	}
	start, err := h.Prompter.Input("시작 시간 (HH:MM):", utils.ValidateClock)
	if err != nil {
		return err
	}

	h.Screen.Progress("조기 귀가 신청 중...")
	if err := h.API.CreateEarlyReturn(ctx, api.EarlyReturnRequest{Reason: reason, Start: start}); err != nil {
		h.Screen.Fail("신청 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}
	h.Screen.Success("조기 귀가 신청이 완료되었습니다!")
	h.pause(pauseNormal)
	return nil
}

func (h *Handlers) viewEarlyReturn(ctx context.Context) error {
	h.Screen.Progress("조기 귀가 신청 내역 조회 중...")
	earlyReturn, err := h.API.MyEarlyReturn(ctx)
	if err != nil {
		h.Screen.Fail("조회 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}

	date := earlyReturn.Date
	if date == "" && earlyReturn.StartDate != "" {
		date = earlyReturn.StartDate + " ~ " + earlyReturn.EndDate
	}
	h.Screen.Box(h.Screen.Color().Bold("📋 내 조기 귀가 신청 내역"),
		"사유: "+orDash(earlyReturn.Reason),
		"날짜: "+orDash(date),
		"시간: "+orDash(earlyReturn.StartTime)+" ~ "+orDash(earlyReturn.EndTime),
		"담당 선생님: "+orDash(earlyReturn.TeacherName),
		h.statusLabel(earlyReturn.Status),
	)
	return h.Prompter.Wait(continueMessage)
}
