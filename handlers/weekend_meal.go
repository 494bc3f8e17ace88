package handlers

import (
	"context"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/ui"
)

// WeekendMeal shows the current opt-in and lets the student change it. The
// status is not fetched again after a change.
func (h *Handlers) WeekendMeal(ctx context.Context) error {
	h.title("🍽️ 주말 급식 신청", h.Screen.Color().Blue)

	h.Screen.Progress("주말 급식 상태 확인 중...")
	status, err := h.API.WeekendMealStatus(ctx)
	if err != nil {
		h.Screen.Fail("오류: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}

	c := h.Screen.Color()
	current := c.Yellow("미신청")
	if status.Status == api.StatusOK {
		current = c.Green("신청됨")
	}
	h.Screen.Box("현재 상태: " + c.Bold(current))

	action, err := h.Prompter.Select("어떤 작업을 하시겠습니까?", []ui.Choice{
		{Title: "✅ 신청하기", Value: api.StatusOK},
		{Title: "❌ 취소하기", Value: api.StatusNO},
		{Title: "🔙 돌아가기", Value: "back"},
	})
	if err != nil {
		return back(err)
	}
	if action == "back" {
		return nil
	}

	h.Screen.Progress("상태 변경 중...")
	if err := h.API.ChangeWeekendMealStatus(ctx, action); err != nil {
		h.Screen.Fail("변경 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}
	h.Screen.Success("상태가 변경되었습니다!")
	h.pause(pauseShort)
	return nil
}
