package resource

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a crisis contact channel.
type Kind string

const (
	Emergency         Kind = "emergency"
	CrisisText        Kind = "crisis-text"
	SuicidePrevention Kind = "suicide-prevention"
)

var requiredKinds = []Kind{Emergency, CrisisText, SuicidePrevention}

// Channel 是一条求助渠道，例如急救电话或危机短信热线。
type Channel struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Label   string `json:"label" yaml:"label"`
	Contact string `json:"contact" yaml:"contact"`
}

// Link 指向更多专业支持信息。
type Link struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Notice is the crisis-resources notice shown whenever a message is flagged.
type Notice struct {
	Locale     string    `json:"locale" yaml:"locale"`
	Title      string    `json:"title" yaml:"title"`
	Message    string    `json:"message" yaml:"message"`
	Channels   []Channel `json:"channels" yaml:"channels"`
	Links      []Link    `json:"links,omitempty" yaml:"links"`
	Closing    string    `json:"closing,omitempty" yaml:"closing"`
	Disclaimer []string  `json:"disclaimer,omitempty" yaml:"disclaimer"`
}

var (
	ErrIncompleteNotice = errors.New("crisis notice is incomplete")
	ErrNoNotice         = errors.New("no crisis notice configured")
)

// Validate 确保通知至少包含急救、危机短信与自杀预防三类渠道。
func (n Notice) Validate() error {
	if strings.TrimSpace(n.Locale) == "" {
		return fmt.Errorf("%w: locale is required", ErrIncompleteNotice)
	}
	for _, kind := range requiredKinds {
		if _, ok := n.Channel(kind); !ok {
			return fmt.Errorf("%w: locale %s has no %s channel", ErrIncompleteNotice, n.Locale, kind)
		}
	}
	return nil
}

// Channel returns the first channel of the given kind with a contact set.
func (n Notice) Channel(kind Kind) (Channel, bool) {
	for _, ch := range n.Channels {
		if ch.Kind == kind && strings.TrimSpace(ch.Contact) != "" {
			return ch, true
		}
	}
	return Channel{}, false
}

// Seed provides the built-in notices. "ke" mirrors the numbers the product
// launched with; "intl" is the fallback for unknown locales.
func Seed() []Notice {
	disclaimer := []string{
		"This chatbot is not a replacement for professional mental health care.",
		"In case of emergency or crisis, contact emergency services immediately.",
		"For persistent mental health concerns, please consult a qualified professional.",
	}

	return []Notice{
		{
			Locale:  "ke",
			Title:   "Crisis Alert",
			Message: "I'm concerned about what you have shared. Please reach out for immediate help:",
			Channels: []Channel{
				{Kind: Emergency, Label: "Emergency", Contact: "Call 999 or your local emergency number."},
				{Kind: CrisisText, Label: "Crisis Text Line", Contact: "Text 1190"},
				{Kind: SuicidePrevention, Label: "Suicide Prevention Hotline", Contact: "Contact 1199"},
			},
			Links: []Link{
				{Title: "Mental Health Hotlines Kenya", URL: "https://www.whatseatingmymind.com/emergency-hotline-numbers"},
				{Title: "Suicide Prevention Kenya", URL: "https://www.enableme.ke/en/article/suicide-emergency-numbers-and-free-counselling-centers-in-kenya-3770"},
			},
			Closing:    "You don't have to go through this alone. Help is available.",
			Disclaimer: disclaimer,
		},
		{
			Locale:  "intl",
			Title:   "Crisis Alert",
			Message: "I'm concerned about what you have shared. Please reach out for immediate help:",
			Channels: []Channel{
				{Kind: Emergency, Label: "Emergency", Contact: "Call your local emergency number."},
				{Kind: CrisisText, Label: "Crisis Text Line", Contact: "Find a local text line at https://findahelpline.com"},
				{Kind: SuicidePrevention, Label: "Suicide Prevention", Contact: "https://www.iasp.info/suicidalthoughts/"},
			},
			Closing:    "You don't have to go through this alone. Help is available.",
			Disclaimer: disclaimer,
		},
	}
}
