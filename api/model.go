package api

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginRequest struct {
	AccountID   string `json:"account_id" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DeviceToken string `json:"device_token"`
}

type UserInfo struct {
	UserName string `json:"user_name"`
	Grade    int    `json:"grade"`
	ClassNum int    `json:"class_num"`
	Num      int    `json:"num"`
	Profile  string `json:"profile"`
}

// Status values shared by the weekend meal and the approval flows.
const (
	StatusOK   = "OK"
	StatusNO   = "NO"
	StatusWait = "WAIT"
)

type MealStatus struct {
	Status string `json:"status"`
}

type SelfStudyTeacher struct {
	Floor       int    `json:"floor"`
	Grade       int    `json:"grade,omitempty"`
	ClassNum    int    `json:"class_num,omitempty"`
	TeacherName string `json:"teacher_name"`
}

type EarlyReturnRequest struct {
	Reason string `json:"reason" validate:"required"`
	Start  string `json:"start" validate:"required"`
}

type EarlyReturn struct {
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	TeacherName string `json:"teacher_name"`
}

type ClassroomMoveRequest struct {
	Floor         int    `json:"floor" validate:"min=1,max=5"`
	ClassroomName string `json:"classroom_name" validate:"required"`
	Start         string `json:"start" validate:"required"`
	End           string `json:"end" validate:"required"`
}

type ClassroomMove struct {
	Floor         int    `json:"floor"`
	ClassroomName string `json:"classroom_name"`
	Start         string `json:"start"`
	End           string `json:"end"`
}

const (
	ApplicationTypeTime   = "TIME"
	ApplicationTypePeriod = "PERIOD"
)

type ApplicationRequest struct {
	Reason          string `json:"reason" validate:"required"`
	Start           string `json:"start" validate:"required"`
	End             string `json:"end" validate:"required"`
	ApplicationType string `json:"application_type" validate:"oneof=TIME PERIOD"`
}

type Application struct {
	Reason      string `json:"reason"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	TeacherName string `json:"teacher_name"`
}

type Period struct {
	// Index is the zero-based period slot; 0 is 1교시.
	Index       int    `json:"-"`
	SubjectName string `json:"subject_name"`
}

type Timetable struct {
	Date       string  `json:"date"`
	Timetables Periods `json:"timetables"`
}
