package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDays   Type = "days"
	TypeRemind Type = "remind"
	TypeGoto   Type = "goto"
	TypeShow   Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title   string
	Segment model.DaySegment
}

type DaysArgs struct {
	Days model.WeekdaySet
}

// RemindArgs carries a reminder mutation for the selected habit: either Off,
// or a time plus lead-minutes offset.
type RemindArgs struct {
	Off    bool
	At     model.ClockTime
	Offset model.ReminderOffset
}

// GotoArgs moves the selected date: an absolute day, today, or a relative
// day offset.
type GotoArgs struct {
	Date     *time.Time
	Today    bool
	DeltaDay int
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Days   *DaysArgs
	Remind *RemindArgs
	Goto   *GotoArgs
	Show   *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDays:
		return parseDays(input, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	segment := model.SegmentMorning
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "seg:") {
			seg, err := parseSegment(strings.TrimPrefix(strings.ToLower(arg), "seg:"))
			if err != nil {
				return Command{}, err
			}
			segment = seg
			continue
		}
		titleParts = append(titleParts, arg)
	}
	title := strings.TrimSpace(strings.Join(titleParts, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Segment: segment}}, nil
}

func parseSegment(raw string) (model.DaySegment, error) {
	switch raw {
	case "morning":
		return model.SegmentMorning, nil
	case "afternoon":
		return model.SegmentAfternoon, nil
	case "evening":
		return model.SegmentEvening, nil
	default:
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown segment: %s", raw)}
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

func parseDays(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "days requires a weekday list or 'all'"}
	}
	joined := strings.ToLower(strings.Join(args, ","))
	if joined == "all" || joined == "every,day" || joined == "everyday" {
		return Command{Type: TypeDays, Raw: raw, Days: &DaysArgs{Days: model.EveryDay()}}, nil
	}
	var set model.WeekdaySet
	for _, name := range strings.Split(joined, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown weekday: %s", name)}
		}
		set = set.With(day)
	}
	if set.IsEmpty() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "days requires at least one weekday"}
	}
	return Command{Type: TypeDays, Raw: raw, Days: &DaysArgs{Days: set}}, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remind requires a time or 'off'"}
	}
	if strings.ToLower(args[0]) == "off" {
		return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{Off: true}}, nil
	}
	at, err := model.ParseClockTime(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad reminder time: %s", args[0])}
	}
	offset := model.OffsetAtTime
	for _, arg := range args[1:] {
		lower := strings.ToLower(arg)
		if !strings.HasPrefix(lower, "in:") {
			continue
		}
		var minutes int
		if _, err := fmt.Sscanf(strings.TrimPrefix(lower, "in:"), "%d", &minutes); err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad offset: %s", arg)}
		}
		offset = model.ReminderOffset(minutes)
		if !offset.IsValid() {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("offset must be 0, 5, 15, 30 or 60, got %d", minutes)}
		}
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{At: at, Offset: offset}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date, 'today', or +/-N"}
	}
	arg := strings.ToLower(args[0])
	if arg == "today" {
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Today: true}}, nil
	}
	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		var delta int
		if _, err := fmt.Sscanf(arg, "%d", &delta); err != nil || delta == 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad day offset: %s", args[0])}
		}
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{DeltaDay: delta}}, nil
	}
	date, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad date: %s", args[0])}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: &date}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: strings.ToLower(args[0])}}, nil
}
