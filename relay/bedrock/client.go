package bedrock

import (
	"context"
	"encoding/json"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/nanokit/bedrock-relay/common/config"
	"github.com/nanokit/bedrock-relay/common/logger"
	"github.com/nanokit/bedrock-relay/relay/model"
)

// Client wraps the Bedrock runtime client for a single configured model.
type Client struct {
	rt      *bedrockruntime.Client
	modelID string
}

// NewClient builds the runtime client from startup configuration. Static
// credentials are used when provided, otherwise the SDK default chain applies.
func NewClient(ctx context.Context) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
		awsconfig.WithRetryMaxAttempts(config.MaxRetries),
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID, config.SecretAccessKey, config.SessionToken)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	// Configured extra headers ride on every call. The default opts in to
	// the prompt-caching beta, without which the vendor never reports cache
	// read/write token usage.
	var apiOpts []func(*middleware.Stack) error
	for name, value := range config.RequestHeaders {
		apiOpts = append(apiOpts, smithyhttp.SetHeaderValue(name, value))
	}

	logger.Logger.Info("initialized bedrock client",
		zap.String("region", config.Region),
		zap.String("model", config.ModelID))

	return &Client{
		rt: bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
			o.APIOptions = append(o.APIOptions, apiOpts...)
		}),
		modelID: config.ModelID,
	}, nil
}

// Invoke issues a single-shot generation and translates the result.
func (c *Client) Invoke(ctx context.Context, payload *Payload) (*model.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	out, err := c.rt.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, Classify(err)
	}

	return ParseResponse(c.modelID, out.Body)
}

// InvokeStream issues a streaming generation. The caller owns the returned
// stream and must Close it.
func (c *Client) InvokeStream(ctx context.Context, payload *Payload) (ChunkStream, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	out, err := c.rt.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, Classify(err)
	}

	return newStream(out.GetStream()), nil
}
