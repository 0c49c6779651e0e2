package tracker

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/storage"
)

func dayKey(t time.Time) string {
	return t.Format(storage.DayLayout)
}

func toStorageHabit(h model.Habit) storage.Habit {
	out := storage.Habit{
		ID:                   h.ID,
		Title:                h.Title,
		Segment:              string(h.Segment),
		Repeating:            h.Repeating,
		Weekdays:             int(h.Weekdays),
		NotificationsEnabled: h.NotificationsEnabled,
		NotificationOffset:   int(h.NotificationOffset),
		Position:             h.Position,
		CreatedAt:            h.CreatedAt,
	}
	if h.SpecificDate != nil {
		day := dayKey(*h.SpecificDate)
		out.SpecificDay = &day
	}
	if h.VisualTime != nil {
		visual := h.VisualTime.String()
		out.VisualTime = &visual
	}
	if h.NotificationTime != nil {
		notif := h.NotificationTime.String()
		out.NotificationTime = &notif
	}
	return out
}

func fromStorageHabit(in storage.Habit) (model.Habit, error) {
	out := model.Habit{
		ID:                   in.ID,
		Title:                in.Title,
		Segment:              model.DaySegment(in.Segment),
		Repeating:            in.Repeating,
		Weekdays:             model.WeekdaySet(in.Weekdays),
		NotificationsEnabled: in.NotificationsEnabled,
		NotificationOffset:   model.ReminderOffset(in.NotificationOffset),
		Position:             in.Position,
		CreatedAt:            in.CreatedAt,
	}
	if in.SpecificDay != nil {
		day, err := time.ParseInLocation(storage.DayLayout, *in.SpecificDay, time.Local)
		if err != nil {
			return model.Habit{}, fmt.Errorf("habit %s specific day: %w", in.ID, err)
		}
		out.SpecificDate = &day
	}
	if in.VisualTime != nil {
		visual, err := model.ParseClockTime(*in.VisualTime)
		if err != nil {
			return model.Habit{}, fmt.Errorf("habit %s visual time: %w", in.ID, err)
		}
		out.VisualTime = &visual
	}
	if in.NotificationTime != nil {
		notif, err := model.ParseClockTime(*in.NotificationTime)
		if err != nil {
			return model.Habit{}, fmt.Errorf("habit %s notification time: %w", in.ID, err)
		}
		out.NotificationTime = &notif
	}
	return out, nil
}

func fromStorageCompletion(in storage.Completion) (model.Completion, error) {
	day, err := time.ParseInLocation(storage.DayLayout, in.Day, time.Local)
	if err != nil {
		return model.Completion{}, fmt.Errorf("completion %s day: %w", in.ID, err)
	}
	return model.Completion{
		ID:        in.ID,
		HabitID:   in.HabitID,
		Day:       day,
		Completed: in.Completed,
	}, nil
}
