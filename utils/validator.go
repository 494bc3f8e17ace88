package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	MinPeriod = 1
	MaxPeriod = 10
)

var clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ValidateRequired rejects blank input.
func ValidateRequired(message string) func(string) error {
	return func(value string) error {
		if govalidator.IsNull(strings.TrimSpace(value)) {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// ValidateClock accepts HH:MM.
func ValidateClock(value string) error {
	if !clockRe.MatchString(strings.TrimSpace(value)) {
		return fmt.Errorf("HH:MM 형식으로 입력해주세요")
	}
	return nil
}

// ParsePeriod parses a class period and checks it is within 1-10.
func ParsePeriod(value string) (int, error) {
	period, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !govalidator.InRangeInt(period, MinPeriod, MaxPeriod) {
		return 0, fmt.Errorf("%d-%d 사이의 교시를 입력해주세요", MinPeriod, MaxPeriod)
	}
	return period, nil
}

// ValidatePeriod is ParsePeriod shaped as a prompt validator.
func ValidatePeriod(value string) error {
	_, err := ParsePeriod(value)
	return err
}

// ValidatePeriodRange rejects a start period after the end period.
func ValidatePeriodRange(start, end int) error {
	if start > end {
		return fmt.Errorf("시작 교시가 종료 교시보다 클 수 없습니다.")
	}
	return nil
}

// PeriodLabel renders a period the way the server expects it, e.g. "3교시".
func PeriodLabel(period int) string {
	return strconv.Itoa(period) + "교시"
}
