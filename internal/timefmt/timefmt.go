// Package timefmt 在界面格式（YYYY-MM-DD、24 小时制 HH:MM）与接口格式
// （DD-MM-YYYY、12 小时制 h:mm AM/PM）之间转换考试日期与时间。
//
// ToAPIDate / ToUIDate / To12Hour / To24Hour 均为尽力转换：空输入返回空串，
// 无法识别的输入原样返回，不报错。需要严格校验时使用 Parse* 系列函数。
package timefmt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// APIDateLayout 接口日期格式 DD-MM-YYYY
	APIDateLayout = "02-01-2006"
	// UIDateLayout 界面日期格式 YYYY-MM-DD
	UIDateLayout = "2006-01-02"
)

var (
	ErrInvalidAPIDate = errors.New("date must be DD-MM-YYYY")
	ErrInvalidAPITime = errors.New("time must be h:mm AM/PM")
)

var twelveHourPattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// ── 日期 ──

// ToAPIDate YYYY-MM-DD → DD-MM-YYYY
func ToAPIDate(uiDate string) string {
	if uiDate == "" {
		return ""
	}
	parts := strings.Split(uiDate, "-")
	if len(parts) != 3 {
		return uiDate
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// ToUIDate DD-MM-YYYY → YYYY-MM-DD
func ToUIDate(apiDate string) string {
	if apiDate == "" {
		return ""
	}
	parts := strings.Split(apiDate, "-")
	if len(parts) != 3 {
		return apiDate
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// ParseAPIDate 严格解析 DD-MM-YYYY
func ParseAPIDate(s string) (time.Time, error) {
	t, err := time.Parse(APIDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAPIDate, s)
	}
	return t, nil
}

// FormatAPIDate 格式化为 DD-MM-YYYY
func FormatAPIDate(t time.Time) string {
	return t.Format(APIDateLayout)
}

// ── 时间 ──

// To12Hour HH:MM → h:mm AM|PM
// 0 点为 12 AM，12 点为 12 PM；分钟补零
func To12Hour(uiTime string) string {
	if uiTime == "" {
		return ""
	}
	hour, minute, ok := split24(uiTime)
	if !ok {
		return uiTime
	}
	return FormatAPITime(hour, minute)
}

// To24Hour h:mm AM|PM → HH:MM
// 不匹配 12 小时制格式时视为已是 24 小时制，原样返回
func To24Hour(apiTime string) string {
	m := twelveHourPattern.FindStringSubmatch(apiTime)
	if m == nil {
		return apiTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	hour %= 12
	if strings.EqualFold(m[3], "PM") {
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseAPITime 严格解析 h:mm AM|PM，返回 24 小时制的时和分
func ParseAPITime(s string) (hour, minute int, err error) {
	m := twelveHourPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAPITime, s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAPITime, s)
	}
	hour %= 12
	if strings.EqualFold(m[3], "PM") {
		hour += 12
	}
	return hour, minute, nil
}

// FormatAPITime 24 小时制时分 → h:mm AM|PM
func FormatAPITime(hour, minute int) string {
	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// ToAPITimes 成对转换开始/结束时间到接口格式
func ToAPITimes(start, end string) (string, string) {
	return To12Hour(start), To12Hour(end)
}

// ToUITimes 成对转换开始/结束时间到界面格式
func ToUITimes(start, end string) (string, string) {
	return To24Hour(start), To24Hour(end)
}

// split24 解析 HH:MM（小时 0-23，分钟 00-59）
func split24(s string) (int, int, bool) {
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(mm) != 2 || hh == "" || len(hh) > 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
