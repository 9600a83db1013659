package bedrock

import (
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/nanokit/bedrock-relay/common/config"
	"github.com/nanokit/bedrock-relay/relay/model"
)

// anthropicVersion pins the native Anthropic wire format Bedrock expects.
const anthropicVersion = "bedrock-2023-05-31"

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type wireMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

// Payload is the request body sent to InvokeModel / InvokeModelWithResponseStream.
type Payload struct {
	AnthropicVersion string        `json:"anthropic_version"`
	System           string        `json:"system,omitempty"`
	Messages         []wireMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
}

func textMessage(role, text string) wireMessage {
	return wireMessage{
		Role:    role,
		Content: []contentBlock{{Type: "text", Text: text}},
	}
}

func resolveTemperature(temperature *float64) float64 {
	if temperature != nil {
		return *temperature
	}
	return config.DefaultTemperature
}

func resolveMaxTokens(maxTokens *int) int {
	if maxTokens != nil && *maxTokens > 0 {
		return *maxTokens
	}
	return config.DefaultMaxTokens
}

// BuildGeneratePayload shapes a single-prompt request. nil temperature and
// maxTokens fall back to the configured defaults.
func BuildGeneratePayload(prompt, systemPrompt string, temperature *float64, maxTokens *int) (*Payload, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("prompt must not be empty")
	}

	return &Payload{
		AnthropicVersion: anthropicVersion,
		System:           systemPrompt,
		Messages:         []wireMessage{textMessage("user", prompt)},
		MaxTokens:        resolveMaxTokens(maxTokens),
		Temperature:      resolveTemperature(temperature),
	}, nil
}

// BuildChatPayload shapes a multi-turn request. Input order is preserved;
// system-role turns are hoisted into the payload's top-level system field,
// which is where the current Anthropic wire format carries them.
// Caller-supplied messages are never mutated.
func BuildChatPayload(messages []model.Message, temperature *float64, maxTokens *int) (*Payload, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages must not be empty")
	}

	var systemParts []string
	wireMessages := make([]wireMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "system" {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		wireMessages = append(wireMessages, textMessage(msg.Role, msg.Content))
	}
	if len(wireMessages) == 0 {
		return nil, errors.New("conversation needs at least one non-system message")
	}

	return &Payload{
		AnthropicVersion: anthropicVersion,
		System:           strings.Join(systemParts, "\n\n"),
		Messages:         wireMessages,
		MaxTokens:        resolveMaxTokens(maxTokens),
		Temperature:      resolveTemperature(temperature),
	}, nil
}
