package testutil

import (
	"net/http"

	"famcard/pkg/requestcontext"
)

// WithRequestID simulates the request id middleware for handler tests.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithClientIP simulates the client metadata middleware for handler tests.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientIP(req.Context(), ip))
}
