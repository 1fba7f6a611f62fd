package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonreiter/govader"
)

// Scorer computes polarity with VADER and subjectivity from a word table.
// VADER covers negation, boosters and exclamation emphasis; the table only
// says how opinionated the matched words are.
type Scorer struct {
	vader        *govader.SentimentIntensityAnalyzer
	subjectivity map[string]float64
	intensifiers map[string]float64
}

// NewScorer builds a scorer over the given tables. Nil tables fall back to the
// built-in ones.
func NewScorer(subjectivity map[string]float64, intensifiers map[string]float64) *Scorer {
	if subjectivity == nil {
		subjectivity = defaultSubjectivity
	}
	if intensifiers == nil {
		intensifiers = defaultIntensifiers
	}

	return &Scorer{
		vader:        govader.NewSentimentIntensityAnalyzer(),
		subjectivity: subjectivity,
		intensifiers: intensifiers,
	}
}

var defaultScorer = NewScorer(nil, nil)

// Score returns polarity in [-1, 1] and subjectivity in [0, 1]. Blank text
// scores (0, 0).
func (s *Scorer) Score(text string) (polarity, subjectivity float64) {
	if strings.TrimSpace(text) == "" {
		return 0, 0
	}

	polarity = s.vader.PolarityScores(text).Compound
	if math.IsNaN(polarity) {
		polarity = 0
	}

	return clamp(polarity, -1, 1), s.subjectivityOf(tokenize(text))
}

// subjectivityOf averages the table value of every opinion word, scaled by an
// intensifier directly in front of it.
func (s *Scorer) subjectivityOf(tokens []string) float64 {
	var (
		sum      float64
		assessed int
	)
	for i, tok := range tokens {
		subj, ok := s.subjectivity[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if factor, ok := s.intensifiers[tokens[i-1]]; ok {
				subj *= factor
			}
		}
		sum += clamp(subj, 0, 1)
		assessed++
	}

	if assessed == 0 {
		return 0
	}
	return clamp(sum/float64(assessed), 0, 1)
}

// Classify scores text and buckets the polarity.
func (s *Scorer) Classify(text string) Result {
	polarity, subjectivity := s.Score(text)
	bin := Bucket(polarity)
	return Result{
		Category:     bin.Category,
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Color:        bin.Color,
	}
}

// tokenize lower-cases text and splits it into words. Typographic apostrophes
// are folded so "can’t" and "can't" match.
func tokenize(text string) []string {
	var (
		tokens  []string
		builder strings.Builder
	)

	flush := func() {
		if builder.Len() == 0 {
			return
		}
		word := strings.Trim(builder.String(), "'")
		if word != "" {
			tokens = append(tokens, word)
		}
		builder.Reset()
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r == '’' || r == '\'':
			builder.WriteRune('\'')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}
