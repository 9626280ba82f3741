// FILE: pkg/rag/classifier/vocabulary.go
// PURPOSE: Detector vocabularies and the detectors built on them

package classifier

import "strings"

// Detector weights. Greeting and domain keywords are strong routing
// evidence; question shape and brevity are weaker hints.
const (
	weightGreeting      = 1.0
	weightDomainKeyword = 1.0
	weightInterrogative = 0.6
	weightBrevity       = 0.4
)

// minMeaningfulTokens is the token count below which an utterance with no
// other signal is treated as too short to act on.
const minMeaningfulTokens = 2

// greetingPhrases are matched as whole phrases at word boundaries.
var greetingPhrases = []string{
	"good morning",
	"good afternoon",
	"good evening",
	"thank you",
}

// greetingWords are matched as single tokens.
var greetingWords = []string{
	"hi",
	"hello",
	"hey",
	"greetings",
	"thanks",
	"thx",
	"bye",
	"goodbye",
}

// domainKeywords is the payment-support vocabulary. A hit means the
// utterance is about account data we hold in the knowledge base.
var domainKeywords = []string{
	"transaction",
	"limit",
	"daily",
	"monthly",
	"card",
	"payment",
	"balance",
	"account",
	"transfer",
	"withdraw",
	"deposit",
	"fee",
	"charge",
	"refund",
	"block",
	"unblock",
	"pin",
	"cvv",
	"statement",
	"history",
	"merchant",
	"authorization",
	"profile",
	"settings",
	"password",
	"security",
	"verification",
	"kyc",
	"document",
	"update",
	"support",
	"help",
	"issue",
	"problem",
	"error",
	"failed",
}

// questionWords open interrogative utterances.
var questionWords = []string{
	"what", "who", "when", "where", "why", "how", "which",
	"can", "could", "should", "would",
	"is", "are", "do", "does", "did",
}

func detectGreeting(raw, norm string, tokens []string) (Signal, bool) {
	for _, phrase := range greetingPhrases {
		if containsPhrase(norm, phrase) {
			return Signal{
				Detector: "greeting",
				Label:    LabelGreeting,
				Weight:   weightGreeting,
				Evidence: phrase,
			}, true
		}
	}
	for _, tok := range tokens {
		for _, w := range greetingWords {
			if tok == w {
				return Signal{
					Detector: "greeting",
					Label:    LabelGreeting,
					Weight:   weightGreeting,
					Evidence: w,
				}, true
			}
		}
	}
	return Signal{}, false
}

func detectDomainKeyword(raw, norm string, tokens []string) (Signal, bool) {
	var hits []string
	for _, tok := range tokens {
		for _, kw := range domainKeywords {
			if tok == kw {
				hits = append(hits, kw)
				break
			}
		}
	}
	if len(hits) == 0 {
		return Signal{}, false
	}
	return Signal{
		Detector: "domain_keyword",
		Label:    LabelRagRequired,
		Weight:   weightDomainKeyword,
		Evidence: strings.Join(hits, ","),
	}, true
}

func detectInterrogative(raw, norm string, tokens []string) (Signal, bool) {
	fired := strings.HasSuffix(strings.TrimSpace(raw), "?")
	evidence := "?"

	if !fired && len(tokens) > 0 {
		first := tokens[0]
		// "what's" counts as "what"
		if i := strings.IndexByte(first, '\''); i > 0 {
			first = first[:i]
		}
		for _, w := range questionWords {
			if first == w {
				fired = true
				evidence = w
				break
			}
		}
	}

	if !fired {
		return Signal{}, false
	}
	return Signal{
		Detector: "interrogative",
		Label:    LabelDirectAnswer,
		Weight:   weightInterrogative,
		Evidence: evidence,
	}, true
}

func detectBrevity(raw, norm string, tokens []string) (Signal, bool) {
	if len(tokens) >= minMeaningfulTokens {
		return Signal{}, false
	}
	return Signal{
		Detector: "brevity",
		Label:    LabelUnclear,
		Weight:   weightBrevity,
		Evidence: "short utterance",
	}, true
}

func containsPhrase(norm, phrase string) bool {
	idx := strings.Index(norm, phrase)
	if idx < 0 {
		return false
	}
	if idx > 0 && norm[idx-1] != ' ' {
		return false
	}
	end := idx + len(phrase)
	if end < len(norm) && norm[end] != ' ' {
		return false
	}
	return true
}
