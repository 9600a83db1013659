package bedrock

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/require"

	"github.com/nanokit/bedrock-relay/common/config"
)

func TestClassifyTypedVendorErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{
			name: "validation",
			err:  &types.ValidationException{Message: aws.String("temperature out of range")},
			kind: KindInvalidRequest,
		},
		{
			name: "access denied",
			err:  &types.AccessDeniedException{Message: aws.String("not authorized")},
			kind: KindAccessDenied,
		},
		{
			name: "model not found",
			err:  &types.ResourceNotFoundException{Message: aws.String("no such model")},
			kind: KindModelNotFound,
		},
		{
			name: "throttled",
			err:  &types.ThrottlingException{Message: aws.String("slow down")},
			kind: KindThrottled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(tt.err)
			require.Equal(t, tt.kind, classified.Kind)
			require.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestClassifyWrappedTypedError(t *testing.T) {
	cause := &types.ThrottlingException{Message: aws.String("slow down")}
	wrapped := errors.Wrap(cause, "InvokeModel")

	classified := Classify(wrapped)
	require.Equal(t, KindThrottled, classified.Kind)
}

func TestClassifyInferenceProfileRequirement(t *testing.T) {
	err := &types.ValidationException{
		Message: aws.String("Invocation of model ID with on-demand throughput isn't supported. Retry with an inference profile."),
	}

	classified := Classify(err)
	require.Equal(t, KindInferenceProfileRequired, classified.Kind)
	require.Contains(t, classified.Message, "inference profile")
}

func TestClassifyMessageSubstringFallback(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{fmt.Errorf("operation error: ValidationException: bad input"), KindInvalidRequest},
		{fmt.Errorf("operation error: ValidationException: requires an inference profile"), KindInferenceProfileRequired},
		{fmt.Errorf("operation error: AccessDeniedException: nope"), KindAccessDenied},
		{fmt.Errorf("operation error: ResourceNotFoundException: missing"), KindModelNotFound},
		{fmt.Errorf("operation error: ThrottlingException: rate exceeded"), KindThrottled},
		{fmt.Errorf("dial tcp: connection refused"), KindTransport},
	}

	for _, tt := range tests {
		classified := Classify(tt.err)
		require.Equal(t, tt.kind, classified.Kind, "error: %v", tt.err)
	}
}

func TestClassifyModelNotFoundNamesModelAndRegion(t *testing.T) {
	classified := Classify(&types.ResourceNotFoundException{Message: aws.String("gone")})
	require.Contains(t, classified.Message, config.ModelID)
	require.Contains(t, classified.Message, config.Region)
}

func TestClassifyRetainsCauseAndPassesThroughClassified(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	classified := Classify(cause)
	require.Equal(t, cause, stderrors.Unwrap(classified))

	again := Classify(errors.Wrap(classified, "outer"))
	require.Equal(t, classified, again)
}
