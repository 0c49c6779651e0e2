package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) renderHabitsView() string {
	tally := m.dailyTally()
	items := make([]views.HabitItemData, 0, len(m.Habits.Entries))
	for _, entry := range m.Habits.Entries {
		h := entry.Habit
		item := views.HabitItemData{
			ID:      h.ID,
			Title:   h.Title,
			Segment: string(h.Segment),
			Due:     h.IsDue(m.SelectedDate),
			Done:    entry.Done,
		}
		if h.VisualTime != nil {
			item.Time = h.VisualTime.String()
		}
		if h.Schedulable() {
			item.Reminder = reminderLabel(h)
		}
		items = append(items, item)
	}
	return views.RenderHabitsPanel(views.HabitsPanelData{
		DateLabel:    m.SelectedDate.Format("Mon 2006-01-02"),
		ListView:     m.habitList.View(),
		Items:        items,
		SelectedID:   m.SelectedHabitID,
		ProgressView: m.dayProgress.ViewAs(tally.Fraction()),
		Completed:    tally.Completed,
		Total:        tally.Total,
	})
}

func reminderLabel(h model.Habit) string {
	if h.NotificationTime == nil {
		return ""
	}
	if h.NotificationOffset == 0 {
		return h.NotificationTime.String()
	}
	return fmt.Sprintf("%s-%dm", h.NotificationTime, int(h.NotificationOffset))
}

func (m Model) renderHistoryView() string {
	months := make([]views.MonthGridData, 0, len(m.History.Months))
	for _, month := range m.History.Months {
		months = append(months, views.MonthGridData{
			Label:       monthLabel(month),
			DaysInMonth: daysIn(month.Year, month.Month),
			Done:        month.Days,
		})
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		HabitTitle: m.History.HabitTitle,
		TableView:  m.historyTable.View(),
		Months:     months,
		Cursor:     m.History.Cursor,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := notify.Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
