package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/genai"
)

// Kind classifies why a generation call failed.
type Kind string

const (
	KindUnavailable    Kind = "unavailable"
	KindRateLimited    Kind = "rate_limited"
	KindNetwork        Kind = "network"
	KindInvalidRequest Kind = "invalid_request"
	KindEmptyResponse  Kind = "empty_response"
)

// GenerationError is returned by every Client operation that did not produce text.
type GenerationError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ai %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("ai %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

var (
	ErrNoAPIKey      = errors.New("no generative model configured")
	ErrEmptyResponse = errors.New("model returned no text")
)

// classify maps an upstream failure onto a Kind.
func classify(err error) Kind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	if errors.Is(err, ErrEmptyResponse) {
		return KindEmptyResponse
	}
	if errors.Is(err, ErrNoAPIKey) {
		return KindUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return KindRateLimited
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return KindInvalidRequest
		default:
			return KindUnavailable
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnavailable
}
