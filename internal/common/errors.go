package common

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Every failure aborts the document's pipeline and
// is surfaced to the caller with the stage (and provider, where relevant)
// that produced it; nothing is retried or repaired internally.
var (
	// ErrUnsupportedFormat: the declared or detected file type is not PDF.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailure: the PDF parser errored (corrupt/encrypted file).
	ErrExtractionFailure = errors.New("pdf text extraction failed")

	// ErrNoProviderAvailable: no LLM provider has a configured credential.
	ErrNoProviderAvailable = errors.New("no llm provider configured")

	// ErrProviderCall: the selected provider's call errored. Concrete
	// failures are carried by ProviderError; match with errors.Is.
	ErrProviderCall = errors.New("llm provider call failed")

	// ErrMalformedModelOutput: the provider's text output could not be
	// parsed as structured data.
	ErrMalformedModelOutput = errors.New("malformed model output")
)

// ProviderError wraps a failed provider call with the provider's name so the
// caller can tell which backend misbehaved. A failed call is terminal for
// the invocation: there is no cross-provider fallback after selection.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProviderCall }

// AppError represents application-specific errors outside the pipeline
// taxonomy (configuration, storage).
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
