package handlers

import (
	"context"
	"strconv"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/ui"
	"github.com/DSM-PICK/pick-cli/utils"
)

// moveTable lists the rooms a student may move to, one slice per floor.
var moveTable = [][]string{
	{"산학협력부", "새롬홀", "무한 상상실", "청죽관", "탁구실", "운동장", "밴드부실"},
	{
		"3-1", "3-2", "3-3", "3-4",
		"세미나실 2-1", "세미나실 2-2", "세미나실 2-3",
		"SW 1실", "SW 2실", "SW 3실",
		"본부교무실", "제 3교무실", "카페테리아", "창조실", "방송실", "진로 상담실", "여자 헬스장",
	},
	{
		"2-1", "2-2", "2-3", "2-4",
		"세미나실 3-1", "세미나실 3-2", "세미나실 3-3",
		"보안 1실", "보안 2실", "제 2교무실", "그린존", "남자 헬스장",
	},
	{
		"1-1", "1-2", "1-3", "1-4",
		"세미나실 4-1", "세미나실 4-2", "세미나실 4-3", "세미나실 4-4",
		"임베 1실", "임베 2실", "제 1교무실",
	},
	{"음악실", "상담실", "수학실", "과학실", "음악 준비실"},
}

func (h *Handlers) Classroom(ctx context.Context) error {
	h.title("🏠 교실 이동", h.Screen.Color().Magenta)

	action, err := h.Prompter.Select("원하는 작업을 선택하세요:", []ui.Choice{
		{Title: "🚀 교실 이동 신청", Value: "move"},
		{Title: "📍 현재 위치 조회", Value: "view"},
		{Title: "🔙 돌아가기", Value: "back"},
	})
	if err != nil {
		return back(err)
	}
	switch action {
	case "move":
		return back(h.moveClassroom(ctx))
	case "view":
		return back(h.viewClassroom(ctx))
	}
	return nil
}

func (h *Handlers) moveClassroom(ctx context.Context) error {
	floors := make([]ui.Choice, 0, len(moveTable))
	for idx := range moveTable {
		floor := strconv.Itoa(idx + 1)
		floors = append(floors, ui.Choice{Title: floor + "층", Value: floor})
	}
	selected, err := h.Prompter.Select("층수를 선택하세요:", floors)
	if err != nil {
		return err
	}
	floor, err := strconv.Atoi(selected)
	if err != nil {
		return err
	}

	rooms := make([]ui.Choice, 0, len(moveTable[floor-1]))
	for _, room := range moveTable[floor-1] {
		rooms = append(rooms, ui.Choice{Title: room, Value: room})
	}
	classroom, err := h.Prompter.Select("교실을 선택하세요:", rooms)
	if err != nil {
		return err
	}

	start, end, err := h.askPeriods("시작 교시를 입력하세요 (1-10):", "종료 교시를 입력하세요 (1-10):")
	if err != nil {
		return err
	}
	if err := utils.ValidatePeriodRange(start, end); err != nil {
		h.Screen.Fail(err.Error())
		h.pause(pauseNormal)
		return nil
	}

	h.Screen.Progress("교실 이동 신청 중...")
	err = h.API.MoveClassroom(ctx, api.ClassroomMoveRequest{
		Floor:         floor,
		ClassroomName: classroom,
		Start:         utils.PeriodLabel(start),
		End:           utils.PeriodLabel(end),
	})
	if err != nil {
		h.Screen.Fail("이동 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}
	h.Screen.Success("교실 이동 신청이 완료되었습니다!")
	h.pause(pauseNormal)
	return nil
}

func (h *Handlers) viewClassroom(ctx context.Context) error {
	h.Screen.Progress("현재 위치 조회 중...")
	location, err := h.API.MyClassroomMove(ctx)
	if err != nil {
		h.Screen.Fail("조회 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}
	h.Screen.Box(h.Screen.Color().Bold("📍 현재 위치"), orDash(location.ClassroomName))
	return h.Prompter.Wait(continueMessage)
}
