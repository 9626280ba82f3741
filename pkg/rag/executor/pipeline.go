// FILE: pkg/rag/executor/pipeline.go
// PURPOSE: Drive one utterance through classify -> retrieve -> generate

package executor

import (
	"context"
	"log"
	"time"

	"payment-support-be/pkg/llm"
	"payment-support-be/pkg/rag/classifier"
	"payment-support-be/pkg/rag/prompt"
	"payment-support-be/pkg/rag/response"
	"payment-support-be/pkg/rag/search"
	"payment-support-be/pkg/rag/state"
	"payment-support-be/pkg/store"
)

// DefaultHistoryWindow is how many recent turns accompany the prompt.
const DefaultHistoryWindow = 6

// PipelineExecutor owns one full routing cycle. Every cycle that starts
// ends in DONE with exactly one user/assistant pair committed, except
// when the caller's context dies first, in which case nothing commits.
type PipelineExecutor struct {
	classifier    *classifier.Classifier
	retriever     search.Retriever
	builder       *prompt.Builder
	generator     *response.Generator
	states        *state.Manager
	historyWindow int
	logger        *log.Logger
}

// NewPipelineExecutor creates a new routing pipeline
func NewPipelineExecutor(
	cls *classifier.Classifier,
	retriever search.Retriever,
	generator *response.Generator,
	logger *log.Logger,
) *PipelineExecutor {
	return &PipelineExecutor{
		classifier:    cls,
		retriever:     retriever,
		builder:       prompt.NewBuilder(),
		generator:     generator,
		states:        state.NewManager(logger),
		historyWindow: DefaultHistoryWindow,
		logger:        logger,
	}
}

// Backend stages that can fail recoverably within a cycle.
const (
	StageRetrieval  = "retrieval"
	StageGeneration = "generation"
)

// ExecutionResult contains the outcome of one routing cycle
type ExecutionResult struct {
	Reply      string
	Label      classifier.Label
	Confidence float64
	Documents  []store.Document
	// Elapsed is the wall-clock duration of the whole cycle.
	Elapsed time.Duration
	// Degraded is set when a recoverable backend failure forced a
	// fallback or ungrounded answer; FailedStages names the stages
	// that failed.
	Degraded     bool
	FailedStages []string
}

// Execute runs the complete routing cycle for one utterance. Cycles on
// the same conversation serialize on its lock.
func (p *PipelineExecutor) Execute(
	ctx context.Context,
	conv *state.Conversation,
	utterance string,
) (*ExecutionResult, error) {

	start := time.Now()

	conv.Lock()
	defer conv.Unlock()

	// A previous cycle that aborted mid-flight leaves stale transients
	if conv.Phase != state.PhaseStart {
		conv.ClearTransients()
	}
	conv.Utterance = utterance

	p.logger.Printf("[PIPELINE] session=%s utterance=%q", conv.ID, truncate(utterance, 50))

	// ═══════════════════════════════════════════════════════════════
	// PHASE 1: CLASSIFICATION
	// ═══════════════════════════════════════════════════════════════
	conv.Classification = p.classifier.Classify(utterance)
	if err := p.states.Transition(conv, state.PhaseClassified); err != nil {
		return nil, err
	}
	p.logger.Printf("[PHASE 1] label=%s confidence=%.2f",
		conv.Classification.Label, conv.Classification.Confidence)

	result := &ExecutionResult{
		Label:      conv.Classification.Label,
		Confidence: conv.Classification.Confidence,
	}

	// History snapshot taken before this cycle commits its own pair
	window := conv.History.Window(p.historyWindow)

	switch conv.Classification.Label {
	case classifier.LabelUnclear:
		// Canned clarification, no model call
		conv.Response = response.ClarifyMessage

	case classifier.LabelRagRequired:
		if err := p.runGroundedPath(ctx, conv, window, result); err != nil {
			conv.ClearTransients()
			return nil, err
		}

	case classifier.LabelGreeting:
		if err := p.runDirectPath(ctx, conv,
			p.builder.BuildGreetingMessages(window, utterance),
			response.GreetingFallback, result); err != nil {
			conv.ClearTransients()
			return nil, err
		}

	default: // LabelDirectAnswer
		if err := p.runDirectPath(ctx, conv,
			p.builder.BuildDirectMessages(window, utterance),
			response.FallbackMessage, result); err != nil {
			conv.ClearTransients()
			return nil, err
		}
	}

	// ═══════════════════════════════════════════════════════════════
	// COMMIT: exactly one turn pair per completed cycle
	// ═══════════════════════════════════════════════════════════════
	if err := p.states.Transition(conv, state.PhaseResponded); err != nil {
		conv.ClearTransients()
		return nil, err
	}

	result.Reply = conv.Response
	result.Documents = conv.Documents
	conv.History.AppendExchange(utterance, conv.Response)

	if err := p.states.Transition(conv, state.PhaseDone); err != nil {
		return nil, err
	}
	result.Elapsed = time.Since(start)
	p.logger.Printf("[PIPELINE] session=%s done in %v, history=%d turns", conv.ID, result.Elapsed, conv.History.Len())

	conv.ClearTransients()
	return result, nil
}

// runGroundedPath performs retrieval, context formatting and grounded
// generation. Retrieval failure degrades to the no-context sentinel
// instead of failing the cycle.
func (p *PipelineExecutor) runGroundedPath(
	ctx context.Context,
	conv *state.Conversation,
	window []llm.Message,
	result *ExecutionResult,
) error {
	if err := p.states.Transition(conv, state.PhaseRetrieving); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	docs, err := p.retriever.Retrieve(ctx, conv.Utterance)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.logger.Printf("[PHASE 2] retrieval failed, degrading: %v", err)
		result.Degraded = true
		result.FailedStages = append(result.FailedStages, StageRetrieval)
		docs = nil
	}
	conv.Documents = docs
	p.logger.Printf("[PHASE 2] retrieved %d documents", len(docs))

	if err := p.states.Transition(conv, state.PhaseContextFormatted); err != nil {
		return err
	}
	conv.ContextBlock = prompt.FormatContext(docs)

	if err := p.states.Transition(conv, state.PhaseGenerating); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	reply, err := p.generator.Generate(ctx, p.builder.BuildRagMessages(conv.ContextBlock, window, conv.Utterance))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.logger.Printf("[PHASE 3] generation failed, falling back: %v", err)
		result.Degraded = true
		result.FailedStages = append(result.FailedStages, StageGeneration)
		reply = response.FallbackMessage
	}
	conv.Response = reply
	return nil
}

// runDirectPath generates without retrieval. fallback is the canned
// reply used when the model cannot be reached.
func (p *PipelineExecutor) runDirectPath(
	ctx context.Context,
	conv *state.Conversation,
	messages []llm.Message,
	fallback string,
	result *ExecutionResult,
) error {
	if err := p.states.Transition(conv, state.PhaseDirectGenerating); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	reply, err := p.generator.Generate(ctx, messages)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.logger.Printf("[DIRECT] generation failed, falling back: %v", err)
		result.Degraded = true
		result.FailedStages = append(result.FailedStages, StageGeneration)
		reply = fallback
	}
	conv.Response = reply
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
