package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength caps configured endpoints and article links alike.
const MaxURLLength = 2048

// EndpointValidator validates configured API endpoint URLs. Endpoints come
// from the user's own config file, and the bundled proxy listens on
// localhost, so local addresses stay permitted.
type EndpointValidator struct {
	// RequireHTTPS rejects plain-http endpoints
	RequireHTTPS bool
	// MaxLength is the maximum allowed URL length
	MaxLength int
}

// NewEndpointValidator creates a validator with defaults that accept both
// remote APIs and a local proxy.
func NewEndpointValidator() *EndpointValidator {
	return &EndpointValidator{
		RequireHTTPS: false,
		MaxLength:    MaxURLLength,
	}
}

// ValidateAndNormalize validates an endpoint URL and returns the normalized version
func (v *EndpointValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("URL too long (max %d characters)", v.MaxLength)
	}

	// Basic character sanitization
	if strings.ContainsAny(input, "<>\"'`") {
		return "", fmt.Errorf("URL contains invalid characters")
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	switch parsedURL.Scheme {
	case "https":
	case "http":
		if v.RequireHTTPS {
			return "", fmt.Errorf("URL must use https protocol")
		}
	default:
		return "", fmt.Errorf("URL must use http or https protocol")
	}

	if parsedURL.Host == "" {
		return "", fmt.Errorf("URL must have a valid hostname")
	}

	if strings.Contains(parsedURL.Path, "..") {
		return "", fmt.Errorf("directory traversal patterns not allowed in URL path")
	}

	return parsedURL.String(), nil
}

// ValidateEndpointURL validates with default settings.
func ValidateEndpointURL(input string) (string, error) {
	return NewEndpointValidator().ValidateAndNormalize(input)
}

// IsHTTPURL reports whether s is an absolute http(s) URL with a hostname.
// Article links arrive from the API response and pass through here before
// being handed to the system browser, which keeps javascript: and file:
// schemes out of exec.
func IsHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxURLLength {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
