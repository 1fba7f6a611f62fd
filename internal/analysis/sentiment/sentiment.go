// Package sentiment scores the emotional tone of a user message and buckets
// the resulting polarity into one of seven ordered mood categories.
package sentiment

import "math"

// Category 表示情绪分箱的名称，按从积极到消极的顺序排列。
type Category string

const (
	VeryPositive     Category = "Very Positive"
	Positive         Category = "Positive"
	SlightlyPositive Category = "Slightly Positive"
	Neutral          Category = "Neutral"
	SlightlyNegative Category = "Slightly Negative"
	Negative         Category = "Negative"
	VeryNegative     Category = "Very Negative"
)

// Color is a display token understood by the presentation layers.
type Color string

const (
	Green      Color = "green"
	LightGreen Color = "light-green"
	Yellow     Color = "yellow"
	Gray       Color = "gray"
	Orange     Color = "orange"
	Red        Color = "red"
	DarkRed    Color = "dark-red"
)

var colorHex = map[Color]string{
	Green:      "#28a745",
	LightGreen: "#39fe02",
	Yellow:     "#ffc107",
	Gray:       "#6c757d",
	Orange:     "#fd7e14",
	Red:        "#dc3545",
	DarkRed:    "#721c24",
}

// Hex returns the CSS color for the token, or the neutral gray for unknown tokens.
func (c Color) Hex() string {
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return colorHex[Gray]
}

// Bin describes one polarity range and the category/color it maps to.
type Bin struct {
	Category       Category
	Color          Color
	Lower          float64
	Upper          float64
	LowerInclusive bool
	UpperInclusive bool
}

// Contains reports whether polarity falls inside the bin's range.
func (b Bin) Contains(polarity float64) bool {
	aboveLower := polarity > b.Lower || (b.LowerInclusive && polarity == b.Lower)
	belowUpper := polarity < b.Upper || (b.UpperInclusive && polarity == b.Upper)
	return aboveLower && belowUpper
}

// bins 的区间互不重叠且覆盖 [-1, 1]，边界归属与产品表格完全一致。
var bins = [...]Bin{
	{Category: VeryPositive, Color: Green, Lower: 0.6, Upper: 1.0, UpperInclusive: true},
	{Category: Positive, Color: LightGreen, Lower: 0.3, Upper: 0.6, UpperInclusive: true},
	{Category: SlightlyPositive, Color: Yellow, Lower: 0.1, Upper: 0.3, UpperInclusive: true},
	{Category: Neutral, Color: Gray, Lower: -0.1, Upper: 0.1, LowerInclusive: true, UpperInclusive: true},
	{Category: SlightlyNegative, Color: Orange, Lower: -0.3, Upper: -0.1, LowerInclusive: true},
	{Category: Negative, Color: Red, Lower: -0.6, Upper: -0.3, LowerInclusive: true},
	{Category: VeryNegative, Color: DarkRed, Lower: -1.0, Upper: -0.6, LowerInclusive: true},
}

// Bins returns a copy of the bucketing table, most positive first.
func Bins() []Bin {
	return append([]Bin(nil), bins[:]...)
}

// Categories returns the seven categories in table order.
func Categories() []Category {
	out := make([]Category, 0, len(bins))
	for _, b := range bins {
		out = append(out, b.Category)
	}
	return out
}

// Valid reports whether c is one of the seven fixed categories.
func (c Category) Valid() bool {
	for _, b := range bins {
		if b.Category == c {
			return true
		}
	}
	return false
}

// Color returns the display token bound to the category.
func (c Category) Color() Color {
	for _, b := range bins {
		if b.Category == c {
			return b.Color
		}
	}
	return Gray
}

// Bucket maps a polarity to its bin. Values outside [-1, 1] are clamped and
// NaN is treated as neutral, so every input lands in exactly one bin.
func Bucket(polarity float64) Bin {
	if math.IsNaN(polarity) {
		return bins[3]
	}
	polarity = clamp(polarity, -1, 1)
	for _, b := range bins {
		if b.Contains(polarity) {
			return b
		}
	}
	return bins[3]
}

// Result is the outcome of classifying one message.
type Result struct {
	Category     Category `json:"category"`
	Polarity     float64  `json:"polarity"`
	Subjectivity float64  `json:"subjectivity"`
	Color        Color    `json:"color"`
}

// Classify scores text with the default lexicon and buckets the polarity.
func Classify(text string) Result {
	return defaultScorer.Classify(text)
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
