package chat

import (
	"time"

	"github.com/zhouzirui/moodchat/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
)

// NoData is the overall mood reported for a session without mood samples.
const NoData = "no data"

// CategoryCount is one bar of the sentiment distribution.
type CategoryCount struct {
	Category sentiment.Category `json:"category"`
	Color    sentiment.Color    `json:"color"`
	Count    int                `json:"count"`
}

// TrendPoint is one point on the mood line: message number against polarity.
type TrendPoint struct {
	Index    int                `json:"index"`
	Polarity float64            `json:"polarity"`
	Category sentiment.Category `json:"category"`
	Color    sentiment.Color    `json:"color"`
}

// Summary aggregates a session's mood history. AveragePolarity is only
// meaningful when HasData is true.
type Summary struct {
	TotalMessages   int              `json:"totalMessages"`
	HasData         bool             `json:"hasData"`
	AveragePolarity float64          `json:"averagePolarity"`
	OverallMood     string           `json:"overallMood"`
	Duration        time.Duration    `json:"duration"`
	DurationMinutes int              `json:"durationMinutes"`
	Distribution    []CategoryCount  `json:"distribution"`
	Trend           []TrendPoint     `json:"trend"`
	CurrentMood     *chat.MoodSample `json:"currentMood,omitempty"`
}

// Summarize computes the aggregates as of now without touching session.
func Summarize(session chat.Session, now time.Time) Summary {
	summary := Summary{
		TotalMessages: len(session.MoodHistory),
		OverallMood:   NoData,
		Distribution:  []CategoryCount{},
		Trend:         Trend(session.MoodHistory),
		CurrentMood:   session.CurrentMood(),
	}

	summary.Duration = now.Sub(session.StartedAt)
	if summary.Duration < 0 {
		summary.Duration = 0
	}
	summary.DurationMinutes = int(summary.Duration / time.Minute)

	if summary.TotalMessages == 0 {
		return summary
	}

	counts := make(map[sentiment.Category]int, 7)
	var total float64
	for _, sample := range session.MoodHistory {
		total += sample.Polarity
		counts[sample.Category]++
	}

	summary.HasData = true
	summary.AveragePolarity = total / float64(summary.TotalMessages)
	summary.OverallMood = overallMood(summary.AveragePolarity)

	for _, category := range sentiment.Categories() {
		if n := counts[category]; n > 0 {
			summary.Distribution = append(summary.Distribution, CategoryCount{
				Category: category,
				Color:    category.Color(),
				Count:    n,
			})
		}
	}

	return summary
}

// Trend returns the chart series for the mood history, numbered from 1.
func Trend(history []chat.MoodSample) []TrendPoint {
	points := make([]TrendPoint, 0, len(history))
	for i, sample := range history {
		points = append(points, TrendPoint{
			Index:    i + 1,
			Polarity: sample.Polarity,
			Category: sample.Category,
			Color:    sample.Color,
		})
	}
	return points
}

func overallMood(avg float64) string {
	switch {
	case avg > 0:
		return "Positive"
	case avg < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Summarize is a convenience wrapper using the orchestrator's clock.
func (o *Orchestrator) Summarize(session chat.Session) Summary {
	return Summarize(session, o.now())
}
