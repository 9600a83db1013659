package helper

import "github.com/nanokit/bedrock-relay/common/ctxkey"

// RequestIdKey doubles as the gin context key and response header name.
// Aliases ctxkey.RequestId so the middleware and controllers share one key.
const RequestIdKey = ctxkey.RequestId

func GenRequestID() string {
	return GetTimeString()
}
