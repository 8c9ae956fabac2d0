// Package report renders read-only views over the synced email store: a
// text statistics report and CSV/plain-text dumps of the correspondence.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/hwetherall/innovera-email-analysis/store"
)

// Render writes the statistics report. emails must be in chronological
// order, as returned by store.List.
func Render(w io.Writer, stats store.Stats, emails []store.Email) error {
	var b strings.Builder

	b.WriteString("Email Correspondence Report\n")
	b.WriteString("===========================\n\n")
	fmt.Fprintf(&b, "Total emails synced: %d\n", stats.Total)
	fmt.Fprintf(&b, "Outbound: %d\n", stats.Outbound)
	fmt.Fprintf(&b, "Inbound: %d\n", stats.Inbound)
	fmt.Fprintf(&b, "Distinct counterparts: %d\n", stats.DistinctCounterparts)

	if stats.Total > 0 {
		fmt.Fprintf(&b, "Date range: %s to %s\n",
			stats.Earliest.Format("2006-01-02"), stats.Latest.Format("2006-01-02"))
	}

	if len(stats.PerCounterpart) > 0 {
		b.WriteString("\nEmails per counterpart:\n")
		for _, cc := range stats.PerCounterpart {
			fmt.Fprintf(&b, "  - %s: %d\n", cc.Counterpart, cc.Count)
		}
	}

	if hour, ok := BusiestHour(emails); ok {
		fmt.Fprintf(&b, "\nMost active hour: %02d:00\n", hour)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// BusiestHour returns the hour of day (0-23) with the most emails. The
// second return is false when there are no emails. Ties resolve to the
// earliest hour.
func BusiestHour(emails []store.Email) (int, bool) {
	if len(emails) == 0 {
		return 0, false
	}
	var counts [24]int
	for _, e := range emails {
		counts[e.Date.Hour()]++
	}
	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] > counts[best] {
			best = h
		}
	}
	return best, true
}

// WriteCSV dumps the correspondence as CSV with one row per email. Body
// whitespace is collapsed so rows stay on one line in spreadsheet tools.
func WriteCSV(w io.Writer, emails []store.Email) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"counterpart", "date", "time", "subject", "body", "direction"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range emails {
		record := []string{
			e.Counterpart,
			e.Date.Format("2006-01-02"),
			e.Date.Format("15:04:05"),
			e.Subject,
			collapseWhitespace(e.Body),
			e.Direction,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", e.MessageID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText dumps the correspondence in a human-readable log format.
func WriteText(w io.Writer, emails []store.Email) error {
	var b strings.Builder
	b.WriteString("Email Communications Log\n")
	b.WriteString("========================\n\n")
	for _, e := range emails {
		fmt.Fprintf(&b, "Date: %s\n", e.Date.Format("2006-01-02"))
		fmt.Fprintf(&b, "Time: %s\n", e.Date.Format("15:04:05"))
		fmt.Fprintf(&b, "Counterpart: %s (%s)\n", e.Counterpart, e.Direction)
		fmt.Fprintf(&b, "Subject: %s\n", e.Subject)
		b.WriteString(strings.Repeat("-", 50) + "\n")
		b.WriteString(e.Body + "\n")
		b.WriteString(strings.Repeat("=", 80) + "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// collapseWhitespace joins all whitespace runs into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
