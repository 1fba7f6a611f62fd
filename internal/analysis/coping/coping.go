// Package coping maps a mood category to a suggested coping action.
package coping

import "github.com/zhouzirui/moodchat/backend/internal/analysis/sentiment"

// DefaultSuggestion is returned for categories without a table entry.
const DefaultSuggestion = "Keep going, you are doing great!"

// strategies 每个分类至少一条建议；Select 固定返回第一条，保证同一情绪得到同一建议。
var strategies = map[sentiment.Category][]string{
	sentiment.VeryPositive: {
		"Your positive energy is wonderful! Consider journaling about what's going well to remember these feelings and moments.",
		"Share your positivity with others - it can be contagious in the best way.",
		"Use this positive momentum to tackle something you've been putting off.",
	},
	sentiment.Positive: {
		"It's great to hear you are feeling good! Try to identify what specifically is making you feel this way and do more of it.",
		"Consider expressing gratitude for the good things in your life right now.",
		"Maybe this is a good time to reach out to someone you care about.",
	},
	sentiment.SlightlyPositive: {
		"You are moving in a positive direction! Small steps can lead to big changes.",
		"Try to build on these positive feelings with a small act of self-care.",
		"Consider what small changes might help maintain this upward trend.",
	},
	sentiment.Neutral: {
		"It's perfectly okay to feel neutral. Sometimes we need these calm moments to recharge.",
		"This might be a good time for self-reflection - check in with yourself about your needs.",
		"Consider doing something that usually brings you joy, even if you don't feel like it right now.",
	},
	sentiment.SlightlyNegative: {
		"I hear that you are not feeling great. Try some deep breathing exercises.",
		"Sometimes a short walk or gentle movement can help shift our mood.",
		"Consider reaching out to a friend or family member for connection.",
	},
	sentiment.Negative: {
		"I'm sorry you are struggling right now. Remember that these feelings are temporary.",
		"Try grounding techniques: name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, and 1 you can taste.",
		"Consider reaching out to someone you trust about how you are feeling.",
	},
	sentiment.VeryNegative: {
		"I'm concerned about how you are feeling. Please consider reaching out for professional support.",
		"If you are having thoughts of self-harm, please contact a crisis hotline or a mental health professional immediately.",
		"Remember, you are not alone. There are people who care and want to help you through this.",
		"Remember: you don't have to go through this alone. Help is available.",
	},
}

// Select returns the suggestion for category. Polarity is accepted for callers
// that want to refine the choice later; the current policy ignores it.
func Select(category sentiment.Category, _ float64) string {
	list, ok := strategies[category]
	if !ok || len(list) == 0 {
		return DefaultSuggestion
	}
	return list[0]
}

// Candidates returns a copy of every suggestion listed for category.
func Candidates(category sentiment.Category) []string {
	return append([]string(nil), strategies[category]...)
}
