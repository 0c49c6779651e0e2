package views

import (
	"fmt"
	"strings"
)

type HabitItemData struct {
	ID       string
	Title    string
	Segment  string
	Time     string
	Reminder string
	Due      bool
	Done     bool
}

type HabitsPanelData struct {
	DateLabel    string
	ListView     string
	Items        []HabitItemData
	SelectedID   string
	ProgressView string
	Completed    int
	Total        int
}

type MonthGridData struct {
	Label       string
	DaysInMonth int
	Done        []int
}

type HistoryPanelData struct {
	HabitTitle string
	TableView  string
	Months     []MonthGridData
	Cursor     int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("habits for %s:\n", data.DateLabel))
	b.WriteString("actions: [j/k]move [space]done [a]add [D]delete [h/l]day [t]today [H]history\n")
	if data.Total > 0 {
		b.WriteString(fmt.Sprintf("progress: %s %d/%d\n", data.ProgressView, data.Completed, data.Total))
	} else {
		b.WriteString("progress: nothing due\n")
	}
	b.WriteString(data.ListView + "\n")
	for _, segment := range []string{"Morning", "Afternoon", "Evening"} {
		renderSegmentSection(&b, segment, data.Items, data.SelectedID)
	}
	return strings.TrimSpace(b.String())
}

func renderSegmentSection(b *strings.Builder, segment string, items []HabitItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", segment))
	count := 0
	for _, item := range items {
		if item.Segment != segment {
			continue
		}
		count++
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, checkbox(item), item.Title))
		if item.Time != "" {
			b.WriteString(fmt.Sprintf(" @%s", item.Time))
		}
		if item.Reminder != "" {
			b.WriteString(fmt.Sprintf(" bell:%s", item.Reminder))
		}
		if !item.Due {
			b.WriteString(" (not due)")
		}
		b.WriteString("\n")
	}
	if count == 0 {
		b.WriteString("  (none)\n")
	}
}

func checkbox(item HabitItemData) string {
	if item.Done {
		return "[x]"
	}
	return "[ ]"
}

// RenderHistoryPanel draws one month grid per month with activity. Done days
// show as their number, the rest as dots.
func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("history: %s\n", data.HabitTitle))
	b.WriteString("actions: [h/l]month [esc]back\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Months) == 0 {
		b.WriteString("(no completions yet)")
		return strings.TrimSpace(b.String())
	}
	for i, month := range data.Months {
		marker := " "
		if i == data.Cursor {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s %s (%d done):\n", marker, month.Label, len(month.Done)))
		b.WriteString(renderMonthGrid(month))
	}
	return strings.TrimSpace(b.String())
}

func renderMonthGrid(month MonthGridData) string {
	done := make(map[int]bool, len(month.Done))
	for _, day := range month.Done {
		done[day] = true
	}
	var b strings.Builder
	for day := 1; day <= month.DaysInMonth; day++ {
		if done[day] {
			b.WriteString(fmt.Sprintf("%3d", day))
		} else {
			b.WriteString("  .")
		}
		if day%7 == 0 {
			b.WriteString("\n")
		}
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
