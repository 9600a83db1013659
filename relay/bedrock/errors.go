package bedrock

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/nanokit/bedrock-relay/common/config"
	"github.com/nanokit/bedrock-relay/common/metrics"
)

// ErrorKind is the local failure taxonomy for vendor errors.
type ErrorKind string

const (
	KindInvalidRequest           ErrorKind = "invalid_request"
	KindInferenceProfileRequired ErrorKind = "inference_profile_required"
	KindAccessDenied             ErrorKind = "access_denied"
	KindModelNotFound            ErrorKind = "model_not_found"
	KindThrottled                ErrorKind = "throttled"
	KindParse                    ErrorKind = "parse"
	KindTransport                ErrorKind = "transport"
)

// Error is a classified vendor failure. The original cause is retained for
// diagnostics and reachable through errors.Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string, cause error) *Error {
	metrics.VendorErrors.WithLabelValues(string(kind)).Inc()
	return &Error{Kind: kind, Message: message, cause: cause}
}

// NewParseError tags a response-shape failure from the translator.
func NewParseError(message string, cause error) *Error {
	return newError(KindParse, message, cause)
}

// Classify maps a failure from the vendor call onto the local taxonomy.
// Typed SDK errors and smithy error codes are checked first; matching on the
// rendered message is kept as a fallback for wrapped or opaque failures.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if stderrors.As(err, &classified) {
		return classified
	}

	code := vendorErrorCode(err)
	msg := err.Error()

	switch {
	case code == "ValidationException" || strings.Contains(msg, "ValidationException"):
		if strings.Contains(msg, "inference profile") {
			return newError(KindInferenceProfileRequired,
				"model requires an inference profile; create one in the AWS console and invoke it by its profile id", err)
		}
		return newError(KindInvalidRequest, "invalid request: "+msg, err)
	case code == "AccessDeniedException" || strings.Contains(msg, "AccessDeniedException"):
		return newError(KindAccessDenied, "access denied, verify AWS credentials and Bedrock permissions", err)
	case code == "ResourceNotFoundException" || strings.Contains(msg, "ResourceNotFoundException"):
		return newError(KindModelNotFound,
			fmt.Sprintf("model %s not found in region %s", config.ModelID, config.Region), err)
	case code == "ThrottlingException" || strings.Contains(msg, "ThrottlingException"):
		return newError(KindThrottled, "request throttled, reduce rate or increase quota", err)
	default:
		return newError(KindTransport, "bedrock call failed", err)
	}
}

func vendorErrorCode(err error) string {
	var (
		validation   *types.ValidationException
		accessDenied *types.AccessDeniedException
		notFound     *types.ResourceNotFoundException
		throttled    *types.ThrottlingException
	)
	switch {
	case stderrors.As(err, &validation):
		return "ValidationException"
	case stderrors.As(err, &accessDenied):
		return "AccessDeniedException"
	case stderrors.As(err, &notFound):
		return "ResourceNotFoundException"
	case stderrors.As(err, &throttled):
		return "ThrottlingException"
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
