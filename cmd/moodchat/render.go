package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/moodchat/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	copingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Italic(true)

	crisisStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
)

func moodStyle(color sentiment.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex())).Bold(true)
}

func renderBanner() string {
	return titleStyle.Render("moodchat") + mutedStyle.Render("  type /summary, /reset, /resources or /quit")
}

func renderTurn(turn chatservice.Turn) string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("assistant> "))
	b.WriteString(assistantStyle.Render(turn.AssistantMessage.Text))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s (%.2f)\n",
		mutedStyle.Render("mood:"),
		moodStyle(turn.Mood.Color).Render(string(turn.Mood.Category)),
		turn.Mood.Polarity,
	)
	b.WriteString(copingStyle.Render("tip: " + turn.CopingSuggestion))
	return b.String()
}

func renderNotice(notice resource.Notice) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(notice.Title))
	b.WriteString("\n")
	b.WriteString(notice.Message)
	for _, ch := range notice.Channels {
		fmt.Fprintf(&b, "\n  • %s: %s", ch.Label, ch.Contact)
	}
	for _, link := range notice.Links {
		fmt.Fprintf(&b, "\n  • %s: %s", link.Title, link.URL)
	}
	if notice.Closing != "" {
		b.WriteString("\n")
		b.WriteString(notice.Closing)
	}
	return crisisStyle.Render(b.String())
}

func renderSummary(summary chatservice.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session summary"))
	fmt.Fprintf(&b, "\n  messages: %d", summary.TotalMessages)
	fmt.Fprintf(&b, "\n  duration: %d min", summary.DurationMinutes)
	if !summary.HasData {
		fmt.Fprintf(&b, "\n  overall mood: %s", summary.OverallMood)
		return b.String()
	}

	fmt.Fprintf(&b, "\n  average polarity: %.2f", summary.AveragePolarity)
	fmt.Fprintf(&b, "\n  overall mood: %s", summary.OverallMood)
	for _, bar := range summary.Distribution {
		fmt.Fprintf(&b, "\n  %-18s %s",
			moodStyle(bar.Color).Render(string(bar.Category)),
			strings.Repeat("█", bar.Count),
		)
	}
	if summary.CurrentMood != nil {
		fmt.Fprintf(&b, "\n  current mood: %s", moodStyle(summary.CurrentMood.Color).Render(string(summary.CurrentMood.Category)))
	}
	return b.String()
}
