package bedrock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanokit/bedrock-relay/common/config"
	"github.com/nanokit/bedrock-relay/relay/model"
)

func TestBuildGeneratePayloadDefaults(t *testing.T) {
	payload, err := BuildGeneratePayload("hello", "", nil, nil)
	require.NoError(t, err)

	require.Equal(t, anthropicVersion, payload.AnthropicVersion)
	require.Equal(t, config.DefaultMaxTokens, payload.MaxTokens)
	require.Equal(t, config.DefaultTemperature, payload.Temperature)
	require.Empty(t, payload.System)
	require.Len(t, payload.Messages, 1)
	require.Equal(t, "user", payload.Messages[0].Role)
	require.Equal(t, "hello", payload.Messages[0].Content[0].Text)
	require.Equal(t, "text", payload.Messages[0].Content[0].Type)
}

func TestBuildGeneratePayloadOverrides(t *testing.T) {
	temp := 0.7
	maxTokens := 123
	payload, err := BuildGeneratePayload("hello", "be brief", &temp, &maxTokens)
	require.NoError(t, err)

	require.Equal(t, 0.7, payload.Temperature)
	require.Equal(t, 123, payload.MaxTokens)
	require.Equal(t, "be brief", payload.System)
}

func TestBuildGeneratePayloadRejectsEmptyPrompt(t *testing.T) {
	_, err := BuildGeneratePayload("  ", "", nil, nil)
	require.Error(t, err)
}

func TestBuildChatPayloadPreservesOrderAndHoistsSystem(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "you are helpful"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}

	payload, err := BuildChatPayload(messages, nil, nil)
	require.NoError(t, err)

	require.Equal(t, "you are helpful", payload.System)
	require.Len(t, payload.Messages, 3)
	require.Equal(t, "first", payload.Messages[0].Content[0].Text)
	require.Equal(t, "second", payload.Messages[1].Content[0].Text)
	require.Equal(t, "third", payload.Messages[2].Content[0].Text)

	// caller-supplied slice stays untouched
	require.Equal(t, "system", messages[0].Role)
	require.Len(t, messages, 4)
}

func TestBuildChatPayloadRejectsEmptyConversation(t *testing.T) {
	_, err := BuildChatPayload(nil, nil, nil)
	require.Error(t, err)

	_, err = BuildChatPayload([]model.Message{{Role: "system", Content: "only context"}}, nil, nil)
	require.Error(t, err)
}
