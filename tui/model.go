// Package tui is a read-only terminal browser over the synced email store,
// with a list/preview dashboard and a focused single-email view.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hwetherall/innovera-email-analysis/store"
)

type viewState int

const (
	viewDashboard viewState = iota
	viewFocusedEmail
)

const (
	emailListItemHeight = 4
	minListPaneWidth    = 30
	minPreviewPaneWidth = 40
)

type Model struct {
	emails []store.Email // newest first

	selectedIdx      int
	viewportTopLine  int
	previewScrollPos int

	currentView   viewState
	width, height int
}

// NewModel builds the viewer over a snapshot of the store, newest first.
func NewModel(emails []store.Email) Model {
	sorted := make([]store.Email, len(emails))
	copy(sorted, emails)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return Model{emails: sorted, currentView: viewDashboard}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectedVisible()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		switch m.currentView {
		case viewDashboard:
			switch msg.String() {
			case "up", "k":
				if m.selectedIdx > 0 {
					m.selectedIdx--
					m.ensureSelectedVisible()
					m.previewScrollPos = 0
				}
			case "down", "j":
				if m.selectedIdx < len(m.emails)-1 {
					m.selectedIdx++
					m.ensureSelectedVisible()
					m.previewScrollPos = 0
				}
			case "enter":
				if len(m.emails) > 0 {
					m.currentView = viewFocusedEmail
				}
			case "K":
				if m.previewScrollPos > 0 {
					m.previewScrollPos--
				}
			case "J":
				if len(m.emails) > 0 {
					bodyLines := strings.Split(normalizeNewlines(m.emails[m.selectedIdx].Body), "\n")
					if m.previewScrollPos < len(bodyLines)-1 {
						m.previewScrollPos++
					}
				}
			}
		case viewFocusedEmail:
			if msg.String() == "esc" {
				m.currentView = viewDashboard
			}
		}
	}
	return m, nil
}

func (m *Model) ensureSelectedVisible() {
	if len(m.emails) == 0 {
		m.viewportTopLine = 0
		return
	}
	itemsThatFit := m.numItemsThatFitInList()
	if itemsThatFit <= 0 {
		m.viewportTopLine = m.selectedIdx
		return
	}
	if m.selectedIdx < m.viewportTopLine {
		m.viewportTopLine = m.selectedIdx
	} else if m.selectedIdx >= m.viewportTopLine+itemsThatFit {
		m.viewportTopLine = m.selectedIdx - itemsThatFit + 1
	}
	if m.viewportTopLine < 0 {
		m.viewportTopLine = 0
	}
	maxTop := len(m.emails) - itemsThatFit
	if maxTop < 0 {
		maxTop = 0
	}
	if m.viewportTopLine > maxTop {
		m.viewportTopLine = maxTop
	}
}

func (m Model) numItemsThatFitInList() int {
	statusBarHeight := 1
	titleHeight := lipgloss.Height(EmailListTitleStyle.Render(" "))
	available := m.height - statusBarHeight - titleHeight
	if available < 0 {
		available = 0
	}
	return available / emailListItemHeight
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing terminal size..."
	}

	contentHeight := m.height - 1 // status bar
	if contentHeight < 0 {
		contentHeight = 0
	}

	var mainView string
	switch m.currentView {
	case viewDashboard:
		listWidth := int(float64(m.width) * 0.35)
		if listWidth < minListPaneWidth {
			listWidth = minListPaneWidth
		}
		if listWidth > m.width-minPreviewPaneWidth && m.width > minPreviewPaneWidth {
			listWidth = m.width - minPreviewPaneWidth
		}
		if listWidth > m.width {
			listWidth = m.width
		}
		previewWidth := m.width - listWidth
		if previewWidth < 0 {
			previewWidth = 0
		}
		mainView = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderEmailList(listWidth, contentHeight),
			m.renderPreviewPane(previewWidth, contentHeight),
		)
	case viewFocusedEmail:
		mainView = m.renderFocusedEmailView(m.width, contentHeight)
	}

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mainView, m.renderStatusBar()))
}

func (m Model) renderEmailList(paneWidth, paneHeight int) string {
	title := EmailListTitleStyle.Render("Synced Emails")

	itemTextWidth := paneWidth - EmailListItemStyle.GetHorizontalPadding() - 4
	if itemTextWidth < 10 {
		itemTextWidth = 10
	}

	numItems := (paneHeight - lipgloss.Height(title)) / emailListItemHeight
	if numItems < 0 {
		numItems = 0
	}
	start := m.viewportTopLine
	if start < 0 {
		start = 0
	}
	end := start + numItems
	if end > len(m.emails) {
		end = len(m.emails)
	}
	if start > end {
		start = end
	}

	var items []string
	for i := start; i < end; i++ {
		items = append(items, formatEmailListItem(m.emails[i], i == m.selectedIdx, itemTextWidth))
	}

	content := strings.Join(items, "\n")
	if len(m.emails) == 0 {
		content = EmailListItemStyle.Render("(no synced emails)")
	}
	return EmailListStyle.Width(paneWidth).Height(paneHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

func (m Model) renderPreviewPane(paneWidth, paneHeight int) string {
	if paneWidth <= 0 || paneHeight <= 0 {
		return ""
	}

	if len(m.emails) == 0 {
		title := TitleStyle.Render("Home")
		empty := "\nNothing synced yet.\n\nRun the sync command first."
		return ContentBoxStyle.Width(paneWidth).Height(paneHeight).Render(
			lipgloss.JoinVertical(lipgloss.Top, title, empty),
		)
	}

	email := m.emails[m.selectedIdx]
	title := TitleStyle.Render(fmt.Sprintf("Preview: %s", truncate(email.Subject, paneWidth-12)))

	var headers strings.Builder
	headers.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Counterpart:"), HeaderValStyle.Render(email.Counterpart)))
	headers.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Direction:"), HeaderValStyle.Render(email.Direction)))
	headers.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Date:"), HeaderValStyle.Render(email.Date.Local().Format(time.RFC1123))))
	headers.WriteString("\n" + strings.Repeat("─", paneWidth/2))

	renderedHeaders := headers.String()
	bodyHeight := paneHeight - lipgloss.Height(title) - lipgloss.Height(renderedHeaders) - ContentBoxStyle.GetVerticalPadding()
	if bodyHeight < 0 {
		bodyHeight = 0
	}

	bodyLines := strings.Split(normalizeNewlines(email.Body), "\n")
	start := m.previewScrollPos
	if start > len(bodyLines)-1 {
		start = len(bodyLines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + bodyHeight
	if end > len(bodyLines) {
		end = len(bodyLines)
	}
	visibleBody := ""
	if start < end {
		visibleBody = strings.Join(bodyLines[start:end], "\n")
	}

	content := lipgloss.NewStyle().
		Width(paneWidth - ContentBoxStyle.GetHorizontalPadding()).
		MaxHeight(paneHeight - lipgloss.Height(title) - ContentBoxStyle.GetVerticalPadding()).
		Render(lipgloss.JoinVertical(lipgloss.Left, renderedHeaders, BodyStyle.Render(visibleBody)))

	return ContentBoxStyle.Width(paneWidth).Height(paneHeight).Render(
		lipgloss.JoinVertical(lipgloss.Top, title, content),
	)
}

func (m Model) renderFocusedEmailView(paneWidth, paneHeight int) string {
	if paneWidth <= 0 || paneHeight <= 0 || len(m.emails) == 0 {
		return ""
	}
	email := m.emails[m.selectedIdx]
	title := TitleStyle.Render(fmt.Sprintf("Full View: %s", truncate(email.Subject, paneWidth-15)))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("From:"), HeaderValStyle.Render(email.FromEmail)))
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("To:"), HeaderValStyle.Render(email.ToEmail)))
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Direction:"), HeaderValStyle.Render(email.Direction)))
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Date:"), HeaderValStyle.Render(email.Date.Local().Format(time.RFC1123Z))))
	b.WriteString(fmt.Sprintf("%s %s\n\n", HeaderKeyStyle.Render("Subject:"), HeaderValStyle.Render(email.Subject)))
	b.WriteString(strings.Repeat("─", paneWidth/2) + "\n\n")
	b.WriteString(BodyStyle.Render(normalizeNewlines(email.Body)))

	content := lipgloss.NewStyle().
		Width(paneWidth - ContentBoxStyle.GetHorizontalPadding()).
		MaxHeight(paneHeight - lipgloss.Height(title) - ContentBoxStyle.GetVerticalPadding()).
		Render(b.String())

	return ContentBoxStyle.Width(paneWidth).Height(paneHeight).Render(
		lipgloss.JoinVertical(lipgloss.Top, title, content),
	)
}

func (m Model) renderStatusBar() string {
	keyHints := "[Q/Ctrl+C]:Quit"
	switch m.currentView {
	case viewDashboard:
		keyHints += " | [↑↓/jk]:Nav | [Enter]:Full | [KJ]:Scroll Preview"
	case viewFocusedEmail:
		keyHints += " | [Esc]:Back"
	}
	status := fmt.Sprintf(" %d emails | %s", len(m.emails), keyHints)
	return StatusBarStyle.Width(m.width).Render(truncate(status, m.width))
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
