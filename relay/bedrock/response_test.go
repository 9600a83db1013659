package bedrock

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanokit/bedrock-relay/relay/model"
)

func TestParseResponse(t *testing.T) {
	body := []byte(`{
		"content": [{"type": "text", "text": "generated answer"}],
		"usage": {"input_tokens": 12, "output_tokens": 34}
	}`)

	resp, err := ParseResponse("anthropic.claude-3-sonnet-20240229-v1:0", body)
	require.NoError(t, err)
	require.Equal(t, "generated answer", resp.Content)
	require.Equal(t, 12, resp.Usage.InputTokens)
	require.Equal(t, 34, resp.Usage.OutputTokens)
	require.Nil(t, resp.Usage.CacheWriteTokens)
}

func TestParseResponseSkipsNonTextBlocks(t *testing.T) {
	body := []byte(`{
		"content": [{"type": "tool_use"}, {"type": "text", "text": "after tool"}],
		"usage": {"input_tokens": 1, "output_tokens": 2}
	}`)

	resp, err := ParseResponse("m", body)
	require.NoError(t, err)
	require.Equal(t, "after tool", resp.Content)
}

func TestParseResponseWithoutTextBlockIsParseError(t *testing.T) {
	_, err := ParseResponse("m", []byte(`{"content": [], "usage": {}}`))
	requireKind(t, err, KindParse)

	_, err = ParseResponse("m", []byte(`not json`))
	requireKind(t, err, KindParse)
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var classified *Error
	require.True(t, stderrors.As(err, &classified), "expected *bedrock.Error, got %v", err)
	require.Equal(t, kind, classified.Kind)
}

func TestTranslateMessageStartYieldsUsageChunk(t *testing.T) {
	frame := []byte(`{"type": "message_start", "message": {"usage": {"input_tokens": 10, "output_tokens": 0}}}`)

	chunk, emit, err := TranslateStreamEvent(frame)
	require.NoError(t, err)
	require.True(t, emit)
	require.Equal(t, model.ChunkTypeUsage, chunk.Type)
	require.Equal(t, 10, chunk.InputTokens)
	require.Equal(t, 0, chunk.OutputTokens)
	require.Empty(t, chunk.Text)
}

func TestTranslateMessageStartWithCacheTokens(t *testing.T) {
	frame := []byte(`{"type": "message_start", "message": {"usage": {
		"input_tokens": 5, "output_tokens": 0,
		"cache_creation_input_tokens": 7, "cache_read_input_tokens": 9}}}`)

	chunk, emit, err := TranslateStreamEvent(frame)
	require.NoError(t, err)
	require.True(t, emit)
	require.NotNil(t, chunk.CacheWriteTokens)
	require.Equal(t, 7, *chunk.CacheWriteTokens)
	require.NotNil(t, chunk.CacheReadTokens)
	require.Equal(t, 9, *chunk.CacheReadTokens)
}

func TestTranslateContentBlockStart(t *testing.T) {
	frame := []byte(`{"type": "content_block_start", "content_block": {"type": "text", "text": "lead-in"}}`)

	chunk, emit, err := TranslateStreamEvent(frame)
	require.NoError(t, err)
	require.True(t, emit)
	require.Equal(t, model.ChunkTypeText, chunk.Type)
	require.Equal(t, "lead-in", chunk.Text)
}

func TestTranslateTextDeltasPreserveOrder(t *testing.T) {
	frames := [][]byte{
		[]byte(`{"type": "content_block_delta", "delta": {"type": "text_delta", "text": "ab"}}`),
		[]byte(`{"type": "content_block_delta", "delta": {"type": "text_delta", "text": "cd"}}`),
	}

	var assembled string
	for _, frame := range frames {
		chunk, emit, err := TranslateStreamEvent(frame)
		require.NoError(t, err)
		require.True(t, emit)
		require.Equal(t, model.ChunkTypeText, chunk.Type)
		assembled += chunk.Text
	}
	require.Equal(t, "abcd", assembled)
}

func TestTranslateSkipsUnhandledEvents(t *testing.T) {
	frames := [][]byte{
		[]byte(`{"type": "message_delta", "delta": {"stop_reason": "end_turn"}}`),
		[]byte(`{"type": "message_stop"}`),
		[]byte(`{"type": "content_block_stop"}`),
		[]byte(`{"type": "ping"}`),
		[]byte(`{"type": "content_block_start", "content_block": {"type": "tool_use"}}`),
		[]byte(`{"type": "content_block_delta", "delta": {"type": "input_json_delta"}}`),
	}

	for _, frame := range frames {
		_, emit, err := TranslateStreamEvent(frame)
		require.NoError(t, err, "frame %s", frame)
		require.False(t, emit, "frame %s should be skipped", frame)
	}
}

func TestTranslateMalformedFrameIsParseError(t *testing.T) {
	_, emit, err := TranslateStreamEvent([]byte(`{"type":`))
	require.False(t, emit)
	requireKind(t, err, KindParse)
}
