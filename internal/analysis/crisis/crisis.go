// Package crisis flags messages that contain self-harm or suicidal language.
//
// Detection is a literal, case-insensitive substring match. It does not try to
// understand negation or context; a false positive only costs an extra notice.
package crisis

import "strings"

var phrases = []string{
	"suicide",
	"kill myself",
	"end it all",
	"want to die",
	"no point living",
	"hurt myself",
	"can't go on",
	"self harm",
	"better off dead",
}

// Phrases returns a copy of the configured crisis phrases.
func Phrases() []string {
	return append([]string(nil), phrases...)
}

// Detect reports whether any crisis phrase occurs in text.
func Detect(text string) bool {
	normalized := normalize(text)
	if normalized == "" {
		return false
	}
	for _, phrase := range phrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

func normalize(text string) string {
	return apostrophes.Replace(strings.ToLower(text))
}
