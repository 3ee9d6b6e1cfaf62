package dto

import (
	"net/http"
	"strconv"
)

// Problem types understood by the web client
const (
	ProblemBaseURL          = "https://www.jhipster.tech/problem"
	DefaultProblemType      = ProblemBaseURL + "/problem-with-message"
	ConstraintViolationType = ProblemBaseURL + "/constraint-violation"
	NotFoundType            = ProblemBaseURL + "/entity-not-found"
	AboutBlankType          = "about:blank"
)

// MessageValidation is the message key of constraint violations
const MessageValidation = "error.validation"

// Problem is an RFC 7807 error body extended with the fields the web client
// reads to translate alerts
// @Description Error response body
type Problem struct {
	Type        string       `json:"type" example:"https://www.jhipster.tech/problem/problem-with-message"`
	Title       string       `json:"title" example:"Bad Request"`
	Status      int          `json:"status" example:"400"`
	Detail      string       `json:"detail,omitempty" example:"A new customer cannot already have an ID"`
	Path        string       `json:"path,omitempty" example:"/api/customers"`
	Message     string       `json:"message" example:"error.idexists"`
	EntityName  string       `json:"entityName,omitempty" example:"customer"`
	ErrorKey    string       `json:"errorKey,omitempty" example:"idexists"`
	Params      string       `json:"params,omitempty" example:"customer"`
	Code        string       `json:"code,omitempty" example:"ERR_VALIDATION"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
	RequestID   string       `json:"requestId,omitempty" example:"5f1c0f3e9b8d4c2a"`
}

// FieldError describes one rejected request field
type FieldError struct {
	ObjectName string `json:"objectName" example:"customerRequest"`
	Field      string `json:"field" example:"name"`
	Message    string `json:"message" example:"required"`
	Detail     string `json:"detail,omitempty" example:"This field is required"`
}

// NewProblem creates a generic problem for a status and error code
func NewProblem(status int, code, detail string) Problem {
	return Problem{
		Type:    DefaultProblemType,
		Title:   http.StatusText(status),
		Status:  status,
		Detail:  detail,
		Message: "error.http." + strconv.Itoa(status),
		Code:    code,
	}
}

// NewAlertProblem creates the 400 problem of an entity alert such as idexists
func NewAlertProblem(entityName, errorKey, detail string) Problem {
	return Problem{
		Type:       DefaultProblemType,
		Title:      detail,
		Status:     http.StatusBadRequest,
		Detail:     detail,
		Message:    "error." + errorKey,
		EntityName: entityName,
		ErrorKey:   errorKey,
		Params:     entityName,
	}
}

// NewValidationProblem creates the 400 problem of rejected request fields
func NewValidationProblem(fieldErrors []FieldError) Problem {
	return Problem{
		Type:        ConstraintViolationType,
		Title:       "Method argument not valid",
		Status:      http.StatusBadRequest,
		Message:     MessageValidation,
		Code:        ErrCodeValidation,
		FieldErrors: fieldErrors,
	}
}

// WithRequest stamps the request path and id on the problem
func (p Problem) WithRequest(path, requestID string) Problem {
	p.Path = path
	p.RequestID = requestID
	return p
}
