package model

// Message is one turn in a conversation. The role set is open on the wire;
// "user", "assistant" and "system" are the values Bedrock understands.
type Message struct {
	Role     string         `json:"role"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Usage carries the token accounting reported by the vendor for one request.
type Usage struct {
	InputTokens      int  `json:"input_tokens"`
	OutputTokens     int  `json:"output_tokens"`
	CacheWriteTokens *int `json:"cache_write_tokens,omitempty"`
	CacheReadTokens  *int `json:"cache_read_tokens,omitempty"`
}

const (
	ChunkTypeText  = "text"
	ChunkTypeUsage = "usage"
)

// StreamChunk is one incremental unit of a streamed response, either textual
// content or usage accounting, tagged by Type.
type StreamChunk struct {
	Type string `json:"type"`

	// Type == ChunkTypeText
	Text string `json:"text,omitempty"`

	// Type == ChunkTypeUsage
	InputTokens      int  `json:"input_tokens,omitempty"`
	OutputTokens     int  `json:"output_tokens,omitempty"`
	CacheWriteTokens *int `json:"cache_write_tokens,omitempty"`
	CacheReadTokens  *int `json:"cache_read_tokens,omitempty"`
}

// Response is the terminal result of a non-streaming request.
type Response struct {
	ModelID  string         `json:"model_id"`
	Content  string         `json:"content"`
	Usage    Usage          `json:"usage"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
