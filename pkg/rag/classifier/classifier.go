// FILE: pkg/rag/classifier/classifier.go
// PURPOSE: Decide how an utterance should be routed before any retrieval happens

package classifier

import (
	"log"
	"sort"
	"strings"
)

// Label is the routing decision for a single utterance.
type Label string

const (
	LabelGreeting     Label = "GREETING"
	LabelRagRequired  Label = "RAG_REQUIRED"
	LabelDirectAnswer Label = "DIRECT_ANSWER"
	LabelUnclear      Label = "UNCLEAR"
)

// labelPrecedence breaks ties between labels with equal vote weight.
// Lower value wins.
var labelPrecedence = map[Label]int{
	LabelGreeting:     0,
	LabelRagRequired:  1,
	LabelDirectAnswer: 2,
	LabelUnclear:      3,
}

// Signal records a single detector that fired, for diagnostics.
type Signal struct {
	Detector string  `json:"detector"`
	Label    Label   `json:"label"`
	Weight   float64 `json:"weight"`
	Evidence string  `json:"evidence"`
}

// Result is the classifier output attached to the conversation state.
type Result struct {
	Label      Label    `json:"label"`
	Confidence float64  `json:"confidence"` // winning weight / total fired weight
	Signals    []Signal `json:"signals"`
}

// unclearFloor is the confidence reported when no detector fires at all.
const unclearFloor = 0.25

// detector inspects an utterance and votes for a label, or returns
// ok=false when it has nothing to say. raw keeps punctuation, norm and
// tokens are the output of Normalize.
type detector func(raw, norm string, tokens []string) (Signal, bool)

// Classifier scores an utterance with a fixed set of weighted detectors.
// It is stateless and safe for concurrent use.
type Classifier struct {
	detectors []detector
	logger    *log.Logger
}

func New(logger *log.Logger) *Classifier {
	return &Classifier{
		detectors: []detector{
			detectGreeting,
			detectDomainKeyword,
			detectInterrogative,
			detectBrevity,
		},
		logger: logger,
	}
}

// Classify runs every detector over the utterance and aggregates the votes.
// Each label accumulates the weight of the detectors voting for it; the
// heaviest label wins and its share of the total fired weight becomes the
// confidence. Ties fall back to label precedence.
func (c *Classifier) Classify(text string) Result {
	norm := Normalize(text)
	tokens := strings.Fields(norm)

	var signals []Signal
	for _, d := range c.detectors {
		if sig, ok := d(text, norm, tokens); ok {
			signals = append(signals, sig)
		}
	}

	if len(signals) == 0 {
		if c.logger != nil {
			c.logger.Printf("[CLASSIFY] no detector fired, label=%s confidence=%.2f", LabelUnclear, unclearFloor)
		}
		return Result{Label: LabelUnclear, Confidence: unclearFloor}
	}

	votes := make(map[Label]float64)
	var total float64
	for _, sig := range signals {
		votes[sig.Label] += sig.Weight
		total += sig.Weight
	}

	labels := make([]Label, 0, len(votes))
	for l := range votes {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if votes[labels[i]] != votes[labels[j]] {
			return votes[labels[i]] > votes[labels[j]]
		}
		return labelPrecedence[labels[i]] < labelPrecedence[labels[j]]
	})

	winner := labels[0]
	confidence := votes[winner] / total

	if c.logger != nil {
		c.logger.Printf("[CLASSIFY] label=%s confidence=%.2f signals=%d", winner, confidence, len(signals))
	}

	return Result{
		Label:      winner,
		Confidence: confidence,
		Signals:    signals,
	}
}

// Normalize lowercases the utterance and strips punctuation so detectors
// can match tokens without worrying about "hi!" vs "hi".
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\'':
			sb.WriteRune(r)
		case r == '\t', r == '\n':
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
