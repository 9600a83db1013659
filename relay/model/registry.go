package model

// ModelInfo describes a supported model's capabilities and limits. The
// registry is static and read-only after process start.
type ModelInfo struct {
	Provider           string  `json:"provider"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	MaxTokens          int     `json:"max_tokens"`
	SupportsStreaming  bool    `json:"supports_streaming"`
	SupportsFunctions  bool    `json:"supports_functions"`
	DefaultTemperature float64 `json:"default_temperature"`
}

const DefaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

// SupportedModels maps Bedrock model ids to capability metadata.
// https://docs.aws.amazon.com/bedrock/latest/userguide/model-ids.html
var SupportedModels = map[string]ModelInfo{
	"anthropic.claude-3-sonnet-20240229-v1:0": {
		Provider:           "anthropic",
		Name:               "Claude 3 Sonnet",
		Description:        "Balanced Claude model for enterprise workloads",
		MaxTokens:          8192,
		SupportsStreaming:  true,
		SupportsFunctions:  true,
		DefaultTemperature: 0.0,
	},
	"anthropic.claude-3-haiku-20240307-v1:0": {
		Provider:           "anthropic",
		Name:               "Claude 3 Haiku",
		Description:        "Fast and efficient Claude model for simpler tasks",
		MaxTokens:          4096,
		SupportsStreaming:  true,
		SupportsFunctions:  true,
		DefaultTemperature: 0.0,
	},
	"anthropic.claude-3-5-sonnet-20240620-v1:0": {
		Provider:           "anthropic",
		Name:               "Claude 3.5 Sonnet",
		Description:        "Most capable Claude 3.5 generation model",
		MaxTokens:          8192,
		SupportsStreaming:  true,
		SupportsFunctions:  true,
		DefaultTemperature: 0.0,
	},
	"anthropic.claude-3-5-haiku-20241022-v1:0": {
		Provider:           "anthropic",
		Name:               "Claude 3.5 Haiku",
		Description:        "Latency-optimized Claude 3.5 generation model",
		MaxTokens:          8192,
		SupportsStreaming:  true,
		SupportsFunctions:  true,
		DefaultTemperature: 0.0,
	},
}

// GetModel looks up capability metadata for a model id.
func GetModel(id string) (ModelInfo, bool) {
	info, ok := SupportedModels[id]
	return info, ok
}

// IsSupported reports whether the model id exists in the registry.
func IsSupported(id string) bool {
	_, ok := SupportedModels[id]
	return ok
}
