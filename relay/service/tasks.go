package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Laisky/zap"

	"github.com/nanokit/bedrock-relay/common/logger"
)

const codeReviewSystemPrompt = `You are an expert code reviewer. Analyze the provided code and return a JSON response with:
- issues: List of potential issues found
- suggestions: List of improvement suggestions
- best_practices: List of relevant best practices
- security_concerns: List of security considerations`

// Low temperature keeps the analysis output shape consistent across runs.
var analysisTemperature = 0.1

// CodeAnalysis is the structured result of AnalyzeCode. When the vendor reply
// is not valid JSON, Error and RawResponse are set instead and the list fields
// stay empty.
type CodeAnalysis struct {
	Issues           []any  `json:"issues,omitempty"`
	Suggestions      []any  `json:"suggestions,omitempty"`
	BestPractices    []any  `json:"best_practices,omitempty"`
	SecurityConcerns []any  `json:"security_concerns,omitempty"`
	Error            string `json:"error,omitempty"`
	RawResponse      string `json:"raw_response,omitempty"`
}

// AnalyzeCode reviews a code snippet. A vendor reply that fails to parse as
// the expected structure degrades to a raw-text passthrough rather than
// failing the call.
func (s *Service) AnalyzeCode(ctx context.Context, code, codeContext string) (*CodeAnalysis, error) {
	prompt := fmt.Sprintf("Code to analyze:\n```\n%s\n```", code)
	if codeContext != "" {
		prompt += "\nContext: " + codeContext
	}

	text, err := s.GenerateText(ctx, GenerateRequest{
		Prompt:       prompt,
		SystemPrompt: codeReviewSystemPrompt,
		Temperature:  &analysisTemperature,
		UseCache:     true,
	})
	if err != nil {
		return nil, err
	}

	var analysis CodeAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &analysis); err != nil {
		logger.Logger.Warn("analysis response is not valid JSON", zap.Error(err))
		return &CodeAnalysis{
			Error:       "failed to parse analysis",
			RawResponse: text,
		}, nil
	}
	return &analysis, nil
}

// stripCodeFence unwraps a ```json fenced reply. Models often fence structured
// output even when told not to.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json").
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

var summaryTemperature = 0.3

var summaryFormats = map[string]string{
	"paragraph":     "Provide a concise paragraph summary.",
	"bullet_points": "Provide a bullet-point summary with key points.",
}

// SummarizeText condenses text. Unrecognized formats fall back to a generic
// summary instruction; maxLength, when positive, is an approximate word-count
// constraint.
func (s *Service) SummarizeText(ctx context.Context, text string, maxLength *int, format string) (string, error) {
	instruction, ok := summaryFormats[format]
	if !ok {
		instruction = "Provide a summary."
	}

	systemPrompt := fmt.Sprintf("You are a skilled summarizer. %s Keep the summary clear and informative.", instruction)
	if maxLength != nil && *maxLength > 0 {
		systemPrompt += fmt.Sprintf(" Limit the summary to approximately %d words.", *maxLength)
	}

	return s.GenerateText(ctx, GenerateRequest{
		Prompt:       text,
		SystemPrompt: systemPrompt,
		Temperature:  &summaryTemperature,
		UseCache:     true,
	})
}
