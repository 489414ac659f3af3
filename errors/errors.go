package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingCredential  = fmt.Errorf("upstream credential is not configured")
	ErrFeedbackIncomplete = fmt.Errorf("all required fields must be filled")
	ErrUnauthorized       = fmt.Errorf("missing or invalid bearer token")
	ErrEntryNotFound      = fmt.Errorf("rate limit entry not found")
)

// Kind groups error codes by who caused them.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindRateLimit
	KindConfiguration
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Code is the stable identifier returned to clients next to the message.
type Code string

const (
	CodeInvalidRequest     Code = "INVALID_REQUEST"
	CodeEmptyPrompt        Code = "EMPTY_PROMPT"
	CodeTooLong            Code = "TOO_LONG"
	CodeBlockedContent     Code = "BLOCKED_CONTENT"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeServiceBusy        Code = "SERVICE_BUSY"
	CodeConfigurationError Code = "CONFIGURATION_ERROR"
	CodeUpstreamError      Code = "UPSTREAM_ERROR"
	CodeEmptyResponse      Code = "EMPTY_RESPONSE"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// ChatError is what the chat gate hands back to the transport layer.
// Message is safe to show to a client; the cause is for server logs only.
type ChatError struct {
	Code       Code
	Kind       Kind
	Status     int
	Message    string
	RetryAfter int
	cause      error
}

func (e *ChatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ChatError) Unwrap() error { return e.cause }

// Is matches on the code so that errors.Is(err, ErrTooLong) holds for any
// copy produced by WithCause or RateLimited.
func (e *ChatError) Is(target error) bool {
	var t *ChatError
	if !goerrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of e carrying the underlying error.
func (e *ChatError) WithCause(err error) *ChatError {
	c := *e
	c.cause = err
	return &c
}

var (
	ErrInvalidRequest = &ChatError{Code: CodeInvalidRequest, Kind: KindValidation,
		Status: http.StatusBadRequest, Message: "Invalid request body"}
	ErrEmptyPrompt = &ChatError{Code: CodeEmptyPrompt, Kind: KindValidation,
		Status: http.StatusBadRequest, Message: "Prompt cannot be empty"}
	ErrTooLong = &ChatError{Code: CodeTooLong, Kind: KindValidation,
		Status: http.StatusBadRequest, Message: "Prompt too long"}
	ErrBlockedContent = &ChatError{Code: CodeBlockedContent, Kind: KindValidation,
		Status: http.StatusBadRequest, Message: "Inappropriate content detected"}
	ErrRateLimited = &ChatError{Code: CodeRateLimited, Kind: KindRateLimit,
		Status: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
	ErrServiceUnavailable = &ChatError{Code: CodeServiceUnavailable, Kind: KindConfiguration,
		Status: http.StatusServiceUnavailable, Message: "Service temporarily unavailable"}
	ErrServiceBusy = &ChatError{Code: CodeServiceBusy, Kind: KindUpstream,
		Status: http.StatusTooManyRequests, Message: "Service is busy. Please try again in a moment."}
	ErrConfiguration = &ChatError{Code: CodeConfigurationError, Kind: KindUpstream,
		Status: http.StatusServiceUnavailable, Message: "Service configuration error"}
	ErrUpstream = &ChatError{Code: CodeUpstreamError, Kind: KindUpstream,
		Status: http.StatusBadGateway, Message: "Upstream service error"}
	ErrEmptyResponse = &ChatError{Code: CodeEmptyResponse, Kind: KindUpstream,
		Status: http.StatusInternalServerError, Message: "No response generated"}
	ErrInternal = &ChatError{Code: CodeInternal, Kind: KindUnknown,
		Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// RateLimited builds the 429 rejection with the seconds left in the window.
func RateLimited(retryAfterSeconds int) *ChatError {
	c := *ErrRateLimited
	c.RetryAfter = retryAfterSeconds
	return &c
}

// AsChatError returns the ChatError carried by err, or the generic internal
// error wrapping it when err is something else.
func AsChatError(err error) *ChatError {
	var ce *ChatError
	if goerrors.As(err, &ce) {
		return ce
	}
	return ErrInternal.WithCause(err)
}

// Is and As are re-exported so callers importing this package do not need
// the standard one under another name.
func Is(err, target error) bool { return goerrors.Is(err, target) }

func As(err error, target any) bool { return goerrors.As(err, target) }
