// Package judge implements the semantic answer-equivalence judge on top
// of an OpenAI-compatible chat completion API.
package judge

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

// Variant selects how forgiving the equivalence prompt is.
type Variant string

const (
	// VariantStrict accepts only answers matching the reference closely.
	VariantStrict Variant = "strict"
	// VariantStandard is the default: forgive spelling and phrasing.
	VariantStandard Variant = "standard"
	// VariantLenient also accepts partial answers that capture the main concept.
	VariantLenient Variant = "lenient"
)

var validVariants = map[Variant]bool{
	VariantStrict:   true,
	VariantStandard: true,
	VariantLenient:  true,
}

// IsValidVariant checks if a variant name is valid.
func IsValidVariant(v string) bool {
	return validVariants[Variant(v)]
}

var markupTagRegex = regexp.MustCompile(`(?i)</?\s*[a-z][a-z0-9-]*\b[^>]*>`)

const maxAnswerRunes = 2000

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api     *openai.Client
	model   string
	variant Variant
}

// New creates a judge client. baseURL may point at any OpenAI-compatible
// endpoint; an empty baseURL uses the OpenAI default.
func New(baseURL, apiKey, modelName string, variant Variant) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(config),
		model:   modelName,
		variant: variant,
	}
}

// Ping verifies the endpoint is reachable and the credentials work.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("judge health check: %w", err)
	}
	return nil
}

// Equivalent asks the model whether candidate is correct enough against
// reference. Only an affirmative verdict returns true; any other
// completion counts as a rejection. An error is returned only for
// transport or API failures, so callers can distinguish "NO" from
// "unavailable".
func (c *Client) Equivalent(ctx context.Context, candidate, reference string) (bool, error) {
	prompt := buildPrompt(c.variant, sanitizeAnswer(candidate), sanitizeAnswer(reference))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return false, fmt.Errorf("judge API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return false, fmt.Errorf("judge returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("judge response", "raw", raw)
	return parseVerdict(raw), nil
}

// parseVerdict maps the model completion onto a boolean. Anything that
// is not clearly affirmative is treated as a rejection.
func parseVerdict(raw string) bool {
	verdict := strings.ToUpper(strings.TrimSpace(raw))
	verdict = strings.Trim(verdict, `."'!`)
	return verdict == "YES" || strings.HasPrefix(verdict, "YES ")
}

func buildPrompt(variant Variant, candidate, reference string) string {
	var sb strings.Builder
	sb.WriteString("Compare these two answers and determine if they are semantically equivalent ")
	sb.WriteString("or if the user answer is correct enough to be considered right:\n\n")
	sb.WriteString("Correct Answer: \"" + reference + "\"\n")
	sb.WriteString("User Answer: \"" + candidate + "\"\n\n")
	sb.WriteString("Consider the following:\n")

	switch variant {
	case VariantStrict:
		sb.WriteString("- Minor spelling mistakes may be forgiven\n")
		sb.WriteString("- The user answer must cover every essential part of the correct answer\n")
		sb.WriteString("- Reject partial answers, even if they capture part of the concept\n")
		sb.WriteString("- Reject if any detail contradicts the correct answer\n")
	case VariantLenient:
		sb.WriteString("- Spelling mistakes should be forgiven\n")
		sb.WriteString("- Different phrasing that means the same thing should be accepted\n")
		sb.WriteString("- Synonyms and equivalent terms should be accepted\n")
		sb.WriteString("- Partial answers that capture any part of the main concept should be accepted\n")
		sb.WriteString("- Only reject if the answer is clearly unrelated or contradicts the correct answer\n")
	default:
		sb.WriteString("- Minor spelling mistakes should be forgiven\n")
		sb.WriteString("- Different phrasing that means the same thing should be accepted\n")
		sb.WriteString("- Synonyms and equivalent terms should be accepted\n")
		sb.WriteString("- Partial answers that capture the main concept should be accepted\n")
		sb.WriteString("- Only reject if the meaning is clearly different or wrong\n")
	}

	sb.WriteString("\nRespond with only \"YES\" if the user answer is correct enough, or \"NO\" if it's wrong.")
	return sb.String()
}

// sanitizeAnswer strips markup-style tags and truncates oversized input
// before it is embedded in the prompt.
func sanitizeAnswer(answer string) string {
	answer = markupTagRegex.ReplaceAllString(answer, "")
	answer = strings.TrimSpace(answer)

	if answer == "" {
		return "[no answer provided]"
	}
	if utf8.RuneCountInString(answer) > maxAnswerRunes {
		runes := []rune(answer)
		answer = string(runes[:maxAnswerRunes]) + " [truncated]"
	}
	return answer
}
