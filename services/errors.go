package services

import "errors"

// Error kinds surfaced by the service layer
const (
	KindValidation    = "validation"
	KindNotFound      = "not_found"
	KindAuthorization = "authorization"
	KindConflict      = "conflict"
)

// ServiceError is a typed business error. Status carries the HTTP code the
// boundary should surface; conflicts map to 400 for inventory unavailability
// and 409 for already-satisfied state.
type ServiceError struct {
	Kind    string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewValidationError reports malformed or missing required input (400).
func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Status: 400, Message: message}
}

// NewNotFoundError reports an absent entity (404).
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Status: 404, Message: message}
}

// NewAuthorizationError reports a role/ownership/active-status mismatch (403).
func NewAuthorizationError(message string) *ServiceError {
	return &ServiceError{Kind: KindAuthorization, Status: 403, Message: message}
}

// NewConflictError reports an unavailable resource (400).
func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Status: 400, Message: message}
}

// NewDuplicateError reports state that already satisfies the goal (409).
func NewDuplicateError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Status: 409, Message: message}
}

// AsServiceError unwraps err into a ServiceError if it is one.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
