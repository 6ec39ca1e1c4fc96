package newsapi

import "fmt"

// AuthError means the upstream rejected our credentials (HTTP 401).
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return "invalid credentials"
}

// RateLimitError means the upstream throttled us (HTTP 429).
type RateLimitError struct {
	Status int
}

func (e *RateLimitError) Error() string {
	return "rate limit reached, try again later"
}

// ServerError covers upstream 5xx responses.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("news service unavailable (HTTP %d)", e.Status)
}

// HTTPError covers any other non-success status. Message carries the
// error text extracted from the response body when there was one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected HTTP status %d", e.Status)
}

// UpstreamError is an application-level failure carried inside a 2xx
// body, like NewsAPI's {"status":"error",...} envelope.
type UpstreamError struct {
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "news service reported an error"
}
