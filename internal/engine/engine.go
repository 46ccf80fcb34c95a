// Package engine provides the two generation strategies behind the creator
// backend: a remote engine backed by an external chat-completion provider and
// a deterministic local engine built from templates. Both produce the same
// output shape (an ordered list of variant strings) and apply the same
// brand-voice post-processing, so downstream consumers cannot tell them apart
// structurally.
package engine

import (
	"errors"
	"fmt"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// Engine labels reported to callers and recorded on cache entries.
const (
	LabelRemote = "remote"
	LabelLocal  = "local"
)

// Request is the input both engines consume. Topic, niche, and tone are
// pre-sanitized by the caller; Voice is a read-only snapshot with defaults
// already applied via domain.BrandVoice.Normalized.
type Request struct {
	Type  string
	Topic string
	Niche string
	Tone  string
	Voice domain.BrandVoice
}

// Usage carries optional token counters from the remote provider. The local
// engine always reports zeros.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrUnsupportedType is returned for a content type outside the closed set.
// It is an input-validation error, terminal for the request.
var ErrUnsupportedType = errors.New("unsupported content type")

// ErrMissingAPIKey indicates the remote engine has no credential configured.
// Permanent: the caller should demote to the local engine immediately.
var ErrMissingAPIKey = errors.New("remote engine api key not configured")

// RemoteError wraps a failure of the remote provider with enough context to
// classify it. Throttling and access-denial statuses are transient (the
// provider may admit a retry shortly); everything else is terminal for the
// remote engine and the caller falls through to the local one.
type RemoteError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("remote engine: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote engine: %v", e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *RemoteError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth retrying: HTTP 429 (too many
// requests), 403 (forbidden), and 402 (payment required) per the provider's
// throttling behavior.
func (e *RemoteError) Transient() bool {
	switch e.StatusCode {
	case 429, 403, 402:
		return true
	}
	return false
}

// IsTransient reports whether err is a retryable remote failure.
func IsTransient(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Transient()
}

// maxVariants bounds the number of variants per content type; it caps the
// degraded text-parsing fallbacks as well as the strict path.
func maxVariants(contentType string) int {
	switch contentType {
	case domain.TypeHook:
		return 10
	case domain.TypeScript:
		return 2
	case domain.TypeCaption:
		return 3
	case domain.TypeHashtags:
		return 16
	default:
		return 10
	}
}
