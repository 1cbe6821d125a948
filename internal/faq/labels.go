package faq

import (
	"math/rand/v2"
	"strings"

	"github.com/Vovarama1992/faq-orchestrator/internal/assistant"
)

const (
	fallbackPrefix = "fallback"
	faqPrefix      = "FAQ-"

	// MissingTextMarker replaces the answer text when the assistant returned
	// no usable fragment for an intent.
	MissingTextMarker = "Error: get_intent_text: Return json does not include generic and text"
)

// Label turns "FAQ-Account_Balance" into "Account Balance" when strip is set.
func Label(intent string, strip bool) string {
	if !strip {
		return intent
	}
	return strings.ReplaceAll(strings.TrimPrefix(intent, faqPrefix), "_", " ")
}

func isFallback(intent string) bool {
	return strings.HasPrefix(intent, fallbackPrefix)
}

// TextStrategy picks one answer among the fragments the assistant produced.
// It returns false when none carries text.
type TextStrategy func(fragments []assistant.Generic) (string, bool)

func FirstText(fragments []assistant.Generic) (string, bool) {
	for _, g := range fragments {
		if g.Text != "" {
			return g.Text, true
		}
	}
	return "", false
}

func RandomText(fragments []assistant.Generic) (string, bool) {
	var texts []string
	for _, g := range fragments {
		if g.Text != "" {
			texts = append(texts, g.Text)
		}
	}
	if len(texts) == 0 {
		return "", false
	}
	return texts[rand.IntN(len(texts))], true
}

// StrategyByName maps RESPONSE_TEXT_STRATEGY values; unknown names fall back to first.
func StrategyByName(name string) TextStrategy {
	if strings.EqualFold(name, "random") {
		return RandomText
	}
	return FirstText
}
