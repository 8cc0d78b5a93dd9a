// Package apperrors provides sentinel and custom error types for the application.
package apperrors

// ErrNotAuthenticated is the sentinel for requests with no identity bound.
var ErrNotAuthenticated = &NotAuthenticatedError{}

// NotAuthenticatedError is returned when a request carries no valid session.
type NotAuthenticatedError struct {
	Message string
}

// NewNotAuthenticatedError creates a NotAuthenticatedError with a custom message.
func NewNotAuthenticatedError(message string) *NotAuthenticatedError {
	return &NotAuthenticatedError{Message: message}
}

// Error implements the error interface.
func (e *NotAuthenticatedError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "not authenticated"
}

// Is implements the error interface for error comparison.
func (e *NotAuthenticatedError) Is(target error) bool {
	_, ok := target.(*NotAuthenticatedError)

	return ok
}

// ErrNotAuthorized is the sentinel for identities lacking the required role.
var ErrNotAuthorized = &NotAuthorizedError{}

// NotAuthorizedError is returned when the caller's role does not permit the operation.
type NotAuthorizedError struct {
	Role    string
	Message string
}

// NewNotAuthorizedError creates a NotAuthorizedError with a custom message.
func NewNotAuthorizedError(role, message string) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Message: message}
}

// Error implements the error interface.
func (e *NotAuthorizedError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Role != "" {
		return "role " + e.Role + " is not authorized"
	}

	return "not authorized"
}

// Is implements the error interface for error comparison.
func (e *NotAuthorizedError) Is(target error) bool {
	_, ok := target.(*NotAuthorizedError)

	return ok
}

// ErrUnknownIdentity is the sentinel for identities that resolve to no stored user.
var ErrUnknownIdentity = &UnknownIdentityError{}

// UnknownIdentityError is returned when an asserted identity has no user row.
// This is a caller error, not a pipeline failure.
type UnknownIdentityError struct {
	Identity string
}

// NewUnknownIdentityError creates an UnknownIdentityError for the given identity.
func NewUnknownIdentityError(identity string) *UnknownIdentityError {
	return &UnknownIdentityError{Identity: identity}
}

// Error implements the error interface.
func (e *UnknownIdentityError) Error() string {
	if e.Identity != "" {
		return "unknown user: " + e.Identity
	}

	return "unknown user"
}

// Is implements the error interface for error comparison.
func (e *UnknownIdentityError) Is(target error) bool {
	_, ok := target.(*UnknownIdentityError)

	return ok
}

// ErrValidation represents a validation error.
// Use when client input fails validation.
var ErrValidation = &ValidationError{}

// ValidationError is a sentinel error for validation failures.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new ValidationError with a custom message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Field != "" {
		return "validation failed for field: " + e.Field
	}

	return "validation error"
}

// Is implements the error interface for error comparison.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)

	return ok
}

// ErrRetrieval is the sentinel for similarity-search failures. The chat
// pipeline does not mask these; they propagate to the caller.
var ErrRetrieval = &RetrievalError{}

// RetrievalError wraps a failure of the similarity retriever.
type RetrievalError struct {
	Err error
}

// NewRetrievalError wraps err as a RetrievalError.
func NewRetrievalError(err error) *RetrievalError {
	return &RetrievalError{Err: err}
}

// Error implements the error interface.
func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return "retrieval failed: " + e.Err.Error()
	}

	return "retrieval failed"
}

// Unwrap returns the underlying retriever error.
func (e *RetrievalError) Unwrap() error { return e.Err }

// Is implements the error interface for error comparison.
func (e *RetrievalError) Is(target error) bool {
	_, ok := target.(*RetrievalError)

	return ok
}

// ErrGeneration is the sentinel for text-generator failures. The chat pipeline
// masks these into a fixed apology message; the smart-questions path surfaces
// them to the caller.
var ErrGeneration = &GenerationError{}

// GenerationError wraps a failure of the text generator.
type GenerationError struct {
	Err error
}

// NewGenerationError wraps err as a GenerationError.
func NewGenerationError(err error) *GenerationError {
	return &GenerationError{Err: err}
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return "generation failed: " + e.Err.Error()
	}

	return "generation failed"
}

// Unwrap returns the underlying generator error.
func (e *GenerationError) Unwrap() error { return e.Err }

// Is implements the error interface for error comparison.
func (e *GenerationError) Is(target error) bool {
	_, ok := target.(*GenerationError)

	return ok
}
