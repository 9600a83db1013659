package bedrock

import (
	"encoding/json"

	"github.com/nanokit/bedrock-relay/relay/model"
)

type wireUsage struct {
	InputTokens              int  `json:"input_tokens"`
	OutputTokens             int  `json:"output_tokens"`
	CacheCreationInputTokens *int `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *int `json:"cache_read_input_tokens,omitempty"`
}

func (u wireUsage) toUsage() model.Usage {
	return model.Usage{
		InputTokens:      u.InputTokens,
		OutputTokens:     u.OutputTokens,
		CacheWriteTokens: u.CacheCreationInputTokens,
		CacheReadTokens:  u.CacheReadInputTokens,
	}
}

type wireResponse struct {
	Content []contentBlock `json:"content"`
	Usage   wireUsage      `json:"usage"`
}

// ParseResponse translates a single-shot InvokeModel body into a Response.
// The first text content block wins; non-text blocks are skipped. A body
// without any text block is a parse failure.
func ParseResponse(modelID string, body []byte) (*model.Response, error) {
	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, NewParseError("failed to decode response body", err)
	}

	for _, block := range wire.Content {
		if block.Type != "text" {
			continue
		}
		return &model.Response{
			ModelID: modelID,
			Content: block.Text,
			Usage:   wire.Usage.toUsage(),
		}, nil
	}
	return nil, NewParseError("response carries no text content block", nil)
}

// streamEvent is the decoded form of one streaming frame. Only the fields the
// translation rules touch are mapped; everything else is ignored.
type streamEvent struct {
	Type    string `json:"type"`
	Message *struct {
		Usage wireUsage `json:"usage"`
	} `json:"message"`
	ContentBlock *contentBlock `json:"content_block"`
	Delta        *struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

// TranslateStreamEvent maps one vendor event frame to at most one StreamChunk.
// Unrecognized event types and non-text blocks yield (zero, false), matching
// the reference behavior of skipping them silently.
func TranslateStreamEvent(frame []byte) (model.StreamChunk, bool, error) {
	var event streamEvent
	if err := json.Unmarshal(frame, &event); err != nil {
		return model.StreamChunk{}, false, NewParseError("failed to decode stream frame", err)
	}

	switch event.Type {
	case "message_start":
		if event.Message == nil {
			return model.StreamChunk{}, false, nil
		}
		usage := event.Message.Usage
		return model.StreamChunk{
			Type:             model.ChunkTypeUsage,
			InputTokens:      usage.InputTokens,
			OutputTokens:     usage.OutputTokens,
			CacheWriteTokens: usage.CacheCreationInputTokens,
			CacheReadTokens:  usage.CacheReadInputTokens,
		}, true, nil
	case "content_block_start":
		if event.ContentBlock == nil || event.ContentBlock.Type != "text" {
			return model.StreamChunk{}, false, nil
		}
		return model.StreamChunk{Type: model.ChunkTypeText, Text: event.ContentBlock.Text}, true, nil
	case "content_block_delta":
		if event.Delta == nil || event.Delta.Type != "text_delta" {
			return model.StreamChunk{}, false, nil
		}
		return model.StreamChunk{Type: model.ChunkTypeText, Text: event.Delta.Text}, true, nil
	default:
		return model.StreamChunk{}, false, nil
	}
}
