package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hwetherall/innovera-email-analysis/store"
)

// truncate shortens a string to a max length, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatEmailDate formats the date for display in the email list.
func formatEmailDate(t time.Time) string {
	if t.IsZero() {
		return "???"
	}
	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
		return t.Local().Format("15:04")
	}
	return t.Local().Format("Jan02")
}

// directionGlyph marks which way the email traveled relative to the
// personal address.
func directionGlyph(direction string) string {
	if direction == "outbound" {
		return "→"
	}
	return "←"
}

// formatEmailListItem renders one email as a 4-line box for the list view.
// itemTextWidth is the width available for text inside the box lines.
func formatEmailListItem(email store.Email, isSelected bool, itemTextWidth int) string {
	var boxCharStyle, subjectStyle, secondaryTextStyle lipgloss.Style
	if isSelected {
		boxCharStyle = SelectedBoxCharStyle
		subjectStyle = SelectedSubjectStyle
		secondaryTextStyle = SelectedSecondaryTextStyle
	} else {
		boxCharStyle = NormalBoxCharStyle
		subjectStyle = NormalSubjectStyle
		secondaryTextStyle = NormalSecondaryTextStyle
	}

	subject := email.Subject
	if subject == "" {
		subject = "(No Subject)"
	}
	paddedSubject := fmt.Sprintf("%-*s", itemTextWidth, truncate(subject, itemTextWidth))

	dateStr := formatEmailDate(email.Date)
	counterpart := fmt.Sprintf("%s %s", directionGlyph(email.Direction), email.Counterpart)
	maxCounterpartLen := itemTextWidth - len(dateStr) - 1
	if maxCounterpartLen < 1 {
		counterpart = ""
		dateStr = truncate(dateStr, itemTextWidth)
	} else {
		counterpart = truncate(counterpart, maxCounterpartLen)
	}
	secondLine := dateStr
	if counterpart != "" {
		secondLine = fmt.Sprintf("%s %s", counterpart, dateStr)
	}
	paddedSecondLine := fmt.Sprintf("%-*s", itemTextWidth, truncate(secondLine, itemTextWidth))

	horizontalBar := strings.Repeat(BoxHorizontal, itemTextWidth+2)
	lines := []string{
		boxCharStyle.Render(BoxTopLeft + horizontalBar + BoxTopRight),
		fmt.Sprintf("%s %s %s",
			boxCharStyle.Render(BoxVertical),
			subjectStyle.Render(paddedSubject),
			boxCharStyle.Render(BoxVertical)),
		fmt.Sprintf("%s %s %s",
			boxCharStyle.Render(BoxVertical),
			secondaryTextStyle.Render(paddedSecondLine),
			boxCharStyle.Render(BoxVertical)),
		boxCharStyle.Render(BoxBottomLeft + horizontalBar + BoxBottomRight),
	}
	return EmailListItemStyle.Render(strings.Join(lines, "\n"))
}
