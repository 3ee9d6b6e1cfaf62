package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrNoTenant      = NewDomainError("UNAUTHORIZED", "Current user is not attached to a company")
)

// Alert error keys understood by the web client
const (
	ErrorKeyIDExists    = "idexists"
	ErrorKeyIDNull      = "idnull"
	ErrorKeyUserExists  = "userexists"
	ErrorKeyEmailExists = "emailexists"
)

// AlertError is a client error tagged with the entity it concerns and a
// short error key. It is always rendered as 400 Bad Request.
type AlertError struct {
	EntityName string
	ErrorKey   string
	Message    string
}

// Error implements the error interface
func (e *AlertError) Error() string {
	return fmt.Sprintf("%s (%s.%s)", e.Message, e.EntityName, e.ErrorKey)
}

// NewAlertError creates a new alert error
func NewAlertError(message, entityName, errorKey string) *AlertError {
	return &AlertError{
		EntityName: entityName,
		ErrorKey:   errorKey,
		Message:    message,
	}
}

// ErrIDExists is returned when a new entity is submitted with an id.
func ErrIDExists(entityName string) *AlertError {
	return NewAlertError(fmt.Sprintf("A new %s cannot already have an ID", entityName), entityName, ErrorKeyIDExists)
}

// ErrIDNull is returned when an update is submitted without an id.
func ErrIDNull(entityName string) *AlertError {
	return NewAlertError("Invalid id", entityName, ErrorKeyIDNull)
}
