package handlers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/utils"
)

const dateLayout = "2006-01-02"

// Timetable shows today's periods and the self-study supervisors. Both are
// fetched concurrently and either failure fails the screen.
func (h *Handlers) Timetable(ctx context.Context) error {
	h.title("📚 시간표+자감쌤", h.Screen.Color().Blue)
	date := h.Now().Format(dateLayout)

	h.Screen.Progress("시간표 로딩 중...")
	var (
		timetable api.Timetable
		teachers  []api.SelfStudyTeacher
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		timetable, err = h.API.TodayTimetable(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		teachers, err = h.API.TodaySelfStudyTeachers(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Screen.Fail("시간표 로드 실패: " + err.Error())
		h.pause(pauseNormal)
		return nil
	}

	c := h.Screen.Color()
	h.Screen.Box(c.Blue("📅 " + timetable.Date))
	periods := make([][]string, 0, len(timetable.Timetables))
	for _, period := range timetable.Timetables {
		subject := period.SubjectName
		if subject == "" {
			subject = "정보 없음"
		}
		periods = append(periods, []string{utils.PeriodLabel(period.Index + 1), subject})
	}
	h.Screen.Table([]string{"교시", "과목"}, periods)

	h.Screen.Println()
	h.Screen.Println(c.Cyan("👀 자습감독선생님"))
	if len(teachers) == 0 {
		h.Screen.Println("자감쌤이 없습니다")
	} else {
		rows := make([][]string, 0, len(teachers))
		for _, teacher := range teachers {
			rows = append(rows, []string{fmt.Sprintf("%d층", teacher.Floor), teacher.TeacherName + " 선생님"})
		}
		h.Screen.Table([]string{"층", "선생님"}, rows)
	}
	return back(h.Prompter.Wait(continueMessage))
}
