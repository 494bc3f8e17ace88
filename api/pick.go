package api

import (
	"context"
	"net/http"
)

const headerRefreshToken = "X-Refresh-Token"

func (c *Client) Login(ctx context.Context, body LoginRequest) (TokenResponse, error) {
	return Fetch[TokenResponse](ctx, c, Request{Path: "/user/login", Method: http.MethodPost, Body: body})
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	header := http.Header{}
	header.Set(headerRefreshToken, refreshToken)
	return Fetch[TokenResponse](ctx, c, Request{Path: "/user/refresh", Method: http.MethodPut, Header: header})
}

func (c *Client) UserSimple(ctx context.Context) (UserInfo, error) {
	return Fetch[UserInfo](ctx, c, Request{Path: "/user/simple", Method: http.MethodGet})
}

func (c *Client) ChangeWeekendMealStatus(ctx context.Context, status string) error {
	return c.Send(ctx, Request{
		Path:   "/weekend-meal/my-status",
		Method: http.MethodPatch,
		Params: map[string]any{"status": status},
	})
}

func (c *Client) WeekendMealStatus(ctx context.Context) (MealStatus, error) {
	return Fetch[MealStatus](ctx, c, Request{Path: "/weekend-meal/my", Method: http.MethodGet})
}

// TodaySelfStudyTeachers takes the date as YYYY-MM-DD.
func (c *Client) TodaySelfStudyTeachers(ctx context.Context, date string) ([]SelfStudyTeacher, error) {
	return Fetch[[]SelfStudyTeacher](ctx, c, Request{
		Path:   "/self-study/today",
		Method: http.MethodGet,
		Params: map[string]any{"date": date},
	})
}

func (c *Client) CreateEarlyReturn(ctx context.Context, body EarlyReturnRequest) error {
	return c.Send(ctx, Request{Path: "/early-return/create", Method: http.MethodPost, Body: body})
}

func (c *Client) MyEarlyReturn(ctx context.Context) (EarlyReturn, error) {
	return Fetch[EarlyReturn](ctx, c, Request{Path: "/early-return/my", Method: http.MethodGet})
}

func (c *Client) MoveClassroom(ctx context.Context, body ClassroomMoveRequest) error {
	return c.Send(ctx, Request{Path: "/class-room/move", Method: http.MethodPost, Body: body})
}

func (c *Client) MyClassroomMove(ctx context.Context) (ClassroomMove, error) {
	return Fetch[ClassroomMove](ctx, c, Request{Path: "/class-room/move", Method: http.MethodGet})
}

func (c *Client) CreateApplication(ctx context.Context, body ApplicationRequest) error {
	return c.Send(ctx, Request{Path: "/application", Method: http.MethodPost, Body: body})
}

func (c *Client) MyApplication(ctx context.Context) (Application, error) {
	return Fetch[Application](ctx, c, Request{Path: "/application/my", Method: http.MethodGet})
}

func (c *Client) TodayTimetable(ctx context.Context) (Timetable, error) {
	return Fetch[Timetable](ctx, c, Request{Path: "/timetable/today", Method: http.MethodGet})
}
