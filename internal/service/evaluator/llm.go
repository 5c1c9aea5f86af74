package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type contentGenerator interface {
	Generate(ctx context.Context, system, query string) (string, error)
}

// LLMEvaluator asks the chat model to score the answer and propose the next
// question as a single JSON object.
type LLMEvaluator struct {
	generator contentGenerator
	logger    *zap.Logger
}

// NewLLM wires the evaluator to a content generator.
func NewLLM(generator contentGenerator, logger *zap.Logger) *LLMEvaluator {
	return &LLMEvaluator{generator: generator, logger: logger}
}

const evaluatorSystemPrompt = "You are an expert technical interviewer. Return ONLY valid JSON. No other text."

const evaluatorPromptFormat = `You are evaluating a candidate in a technical interview.

QUESTION: %s
ANSWER: %s

Score 0-10 on: correctness, clarity, depth, relevance.
Give 1-2 sentences of constructive feedback.
Suggest 1 relevant follow-up question.

Return ONLY JSON:
{
  "evaluation": {"score": 8, "feedback": "Your feedback"},
  "next_question": {"question": "Follow-up question?", "type": "Technical"},
  "stop": %t
}`

// Evaluate runs the scoring prompt and parses the response against the
// contract. Scores outside [0,10] are clamped rather than rejected.
func (e *LLMEvaluator) Evaluate(ctx context.Context, question, answer string, maxQuestions, currentIndex int) (*Result, error) {
	prompt := fmt.Sprintf(evaluatorPromptFormat, question, answer, currentIndex+1 >= maxQuestions)

	raw, err := e.generator.Generate(ctx, evaluatorSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("evaluator generation: %w", err)
	}

	result, err := parseResult(raw)
	if err != nil {
		e.logger.Warn("evaluator returned malformed output",
			zap.Int("response_length", len(raw)),
			zap.Error(err))
		return nil, err
	}

	e.logger.Debug("answer evaluated",
		zap.Float64("score", result.Evaluation.Score),
		zap.Bool("stop", result.Stop))
	return result, nil
}

func parseResult(raw string) (*Result, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse evaluator response: %w", err)
	}

	if strings.TrimSpace(result.Evaluation.Feedback) == "" {
		return nil, fmt.Errorf("evaluator response missing feedback")
	}
	if !result.Stop && strings.TrimSpace(result.NextQuestion.Question) == "" {
		return nil, fmt.Errorf("evaluator response missing next question")
	}

	result.Evaluation.Score = clampScore(result.Evaluation.Score)
	return &result, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// extractJSON strips markdown fences and surrounding prose, keeping the
// outermost object. Models wrap JSON in commentary often enough that this is
// load-bearing.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}
