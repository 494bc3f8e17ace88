package handlers

import (
	"context"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/ui"
	"github.com/DSM-PICK/pick-cli/utils"
)

// Application handles outside-leave requests, either by clock time or by
// class period.
func (h *Handlers) Application(ctx context.Context) error {
	h.title("🚪 외출 신청", h.Screen.Color().Green)

	action, err := h.Prompter.Select("원하는 작업을 선택하세요:", requestChoices)
	if err != nil {
		return back(err)
	}
	switch action {
	case "create":
		return back(h.createApplication(ctx))
	case "view":
		return back(h.viewApplication(ctx))
	}
	return nil
}

func (h *Handlers) createApplication(ctx context.Context) error {
	reason, err := h.Prompter.Input("외출 사유를 입력하세요:", utils.ValidateRequired("사유를 입력해주세요"))
	if err != nil {
		return err
	}
	kind, err := h.Prompter.Select("신청 유형을 선택하세요:", []ui.Choice{
		{Title: "⏰ 시간 기준 (TIME)", Value: api.ApplicationTypeTime},
		{Title: "📚 교시 기준 (PERIOD)", Value: api.ApplicationTypePeriod},
	})
	if err != nil {
		return err
	}

	req := api.ApplicationRequest{Reason: reason, ApplicationType: kind}
	if kind == api.ApplicationTypeTime {
		if req.Start, err = h.Prompter.Input("시작 시간 (HH:MM):", utils.ValidateClock); err != nil {
			return err
		}
		if req.End, err = h.Prompter.Input("종료 시간 (HH:MM):", utils.ValidateClock); err != nil {
			return err
		}
	} else {
		start, end, err := h.askPeriods("시작 교시 (1-10):", "종료 교시 (1-10):")
		if err != nil {
			return err
		}
		if err := utils.ValidatePeriodRange(start, end); err != nil {
			h.Screen.Fail(err.Error())
			h.pause(pauseNormal)
			return nil
		}
		req.Start, req.End = utils.PeriodLabel(start), utils.PeriodLabel(end)
	}

	h.Screen.Progress("외출 신청 중...")
	if err := h.API.CreateApplication(ctx, req); err != nil {
		h.Screen.Fail("신청 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}
	h.Screen.Success("외출 신청이 완료되었습니다!")
	h.pause(pauseNormal)
	return nil
}

func (h *Handlers) viewApplication(ctx context.Context) error {
	h.Screen.Progress("외출 신청 내역 조회 중...")
	application, err := h.API.MyApplication(ctx)
	if err != nil {
		h.Screen.Fail("조회 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}

	h.Screen.Box(h.Screen.Color().Bold("📋 내 외출 신청 내역"),
		"사유: "+orDash(application.Reason),
		"기간: "+orDash(application.StartDate)+" ~ "+orDash(application.EndDate),
		"시간: "+orDash(application.StartTime)+" ~ "+orDash(application.EndTime),
		"담당 선생님: "+orDash(application.TeacherName),
		h.statusLabel(application.Status),
	)
	return h.Prompter.Wait(continueMessage)
}

func (h *Handlers) askPeriods(startMessage, endMessage string) (int, int, error) {
	startText, err := h.Prompter.Input(startMessage, utils.ValidatePeriod)
	if err != nil {
		return 0, 0, err
	}
	endText, err := h.Prompter.Input(endMessage, utils.ValidatePeriod)
	if err != nil {
		return 0, 0, err
	}
	start, err := utils.ParsePeriod(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := utils.ParsePeriod(endText)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
