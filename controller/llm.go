package controller

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/nanokit/bedrock-relay/common/ctxkey"
	"github.com/nanokit/bedrock-relay/common/logger"
	"github.com/nanokit/bedrock-relay/common/metrics"
	"github.com/nanokit/bedrock-relay/common/render"
	"github.com/nanokit/bedrock-relay/relay/bedrock"
	"github.com/nanokit/bedrock-relay/relay/model"
	"github.com/nanokit/bedrock-relay/relay/service"
)

// LLMController renders relay service results over HTTP.
type LLMController struct {
	svc *service.Service
}

func NewLLMController(svc *service.Service) *LLMController {
	return &LLMController{svc: svc}
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

// statusForKind maps the classified failure taxonomy onto HTTP status codes.
func statusForKind(kind bedrock.ErrorKind) int {
	switch kind {
	case bedrock.KindInvalidRequest, bedrock.KindInferenceProfileRequired:
		return http.StatusBadRequest
	case bedrock.KindAccessDenied:
		return http.StatusForbidden
	case bedrock.KindModelNotFound:
		return http.StatusNotFound
	case bedrock.KindThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func abortWithError(c *gin.Context, operation string, err error) {
	metrics.RelayRequests.WithLabelValues(operation, "error").Inc()

	var classified *bedrock.Error
	if stderrors.As(err, &classified) {
		logger.Logger.Error("relay operation failed",
			zap.String("request_id", c.GetString(ctxkey.RequestId)),
			zap.String("operation", operation),
			zap.String("kind", string(classified.Kind)),
			zap.Error(err))
		c.JSON(statusForKind(classified.Kind), errorResponse{
			Error: apiError{Message: classified.Message, Type: string(classified.Kind)},
		})
		return
	}

	logger.Logger.Error("relay operation failed",
		zap.String("operation", operation), zap.Error(err))
	c.JSON(http.StatusBadRequest, errorResponse{
		Error: apiError{Message: err.Error(), Type: "invalid_request"},
	})
}

func abortWithBindingError(c *gin.Context, operation string, err error) {
	metrics.RelayRequests.WithLabelValues(operation, "error").Inc()
	c.JSON(http.StatusBadRequest, errorResponse{
		Error: apiError{Message: err.Error(), Type: "invalid_request"},
	})
}

type generateRequest struct {
	Prompt       string   `json:"prompt" binding:"required"`
	SystemPrompt string   `json:"system_prompt"`
	Temperature  *float64 `json:"temperature" binding:"omitempty,gte=0,lte=1"`
	MaxTokens    *int     `json:"max_tokens" binding:"omitempty,gt=0"`
	UseCache     *bool    `json:"use_cache"`
}

// Generate handles POST /api/llm/generate.
func (ctl *LLMController) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, "generate", err)
		return
	}

	useCache := true
	if req.UseCache != nil {
		useCache = *req.UseCache
	}

	text, err := ctl.svc.GenerateText(gmw.Ctx(c), service.GenerateRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
		UseCache:     useCache,
	})
	if err != nil {
		abortWithError(c, "generate", err)
		return
	}

	metrics.RelayRequests.WithLabelValues("generate", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"response": text})
}

type chatRequest struct {
	Messages    []model.Message `json:"messages" binding:"required,min=1"`
	Temperature *float64        `json:"temperature" binding:"omitempty,gte=0,lte=1"`
	MaxTokens   *int            `json:"max_tokens" binding:"omitempty,gt=0"`
	Stream      bool            `json:"stream"`
}

// Chat handles POST /api/llm/chat. With stream=true the response is rendered
// as server-sent events.
func (ctl *LLMController) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, "chat", err)
		return
	}

	opts := service.ChatOptions{Temperature: req.Temperature, MaxTokens: req.MaxTokens}

	if req.Stream {
		ctl.chatStream(c, req.Messages, opts)
		return
	}

	resp, err := ctl.svc.Chat(gmw.Ctx(c), req.Messages, opts)
	if err != nil {
		abortWithError(c, "chat", err)
		return
	}

	metrics.RelayRequests.WithLabelValues("chat", "ok").Inc()
	c.JSON(http.StatusOK, resp)
}

func (ctl *LLMController) chatStream(c *gin.Context, messages []model.Message, opts service.ChatOptions) {
	stream, err := ctl.svc.ChatStream(gmw.Ctx(c), messages, opts)
	if err != nil {
		abortWithError(c, "chat", err)
		return
	}
	defer stream.Close()

	render.SetEventStreamHeaders(c)

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-stream.Events()
		if !ok {
			if streamErr := stream.Err(); streamErr != nil {
				logger.Logger.Error("stream terminated", zap.Error(streamErr))
			}
			c.Render(-1, render.CustomEvent{Data: "data: [DONE]"})
			return false
		}

		payload, err := json.Marshal(chunk)
		if err != nil {
			logger.Logger.Error("error marshalling stream chunk", zap.Error(err))
			return true
		}
		c.Render(-1, render.CustomEvent{Data: "data: " + string(payload)})
		return true
	})

	metrics.RelayRequests.WithLabelValues("chat", "ok").Inc()
}

type analyzeCodeRequest struct {
	Code    string `json:"code" binding:"required"`
	Context string `json:"context"`
}

// AnalyzeCode handles POST /api/llm/analyze-code.
func (ctl *LLMController) AnalyzeCode(c *gin.Context) {
	var req analyzeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, "analyze_code", err)
		return
	}

	analysis, err := ctl.svc.AnalyzeCode(gmw.Ctx(c), req.Code, req.Context)
	if err != nil {
		abortWithError(c, "analyze_code", err)
		return
	}

	metrics.RelayRequests.WithLabelValues("analyze_code", "ok").Inc()
	c.JSON(http.StatusOK, analysis)
}

type summarizeRequest struct {
	Text      string `json:"text" binding:"required"`
	MaxLength *int   `json:"max_length" binding:"omitempty,gt=0"`
	Format    string `json:"format"`
}

// Summarize handles POST /api/llm/summarize.
func (ctl *LLMController) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, "summarize", err)
		return
	}

	format := req.Format
	if format == "" {
		format = "bullet_points"
	}

	summary, err := ctl.svc.SummarizeText(gmw.Ctx(c), req.Text, req.MaxLength, format)
	if err != nil {
		abortWithError(c, "summarize", err)
		return
	}

	metrics.RelayRequests.WithLabelValues("summarize", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ListModels handles GET /api/llm/models.
func (ctl *LLMController) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": model.SupportedModels})
}
