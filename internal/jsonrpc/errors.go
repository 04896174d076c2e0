package jsonrpc

import (
	"errors"
	"strings"

	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
)

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, message string, data interface{}) *Error {
	return &Error{Code: code, Message: message, Data: data}
}

func ParseError() *Error {
	return NewError(CodeParseError, "Parse error", nil)
}

func InvalidRequest(data interface{}) *Error {
	return NewError(CodeInvalidRequest, "Invalid Request", data)
}

func MethodNotFound(method string) *Error {
	return NewError(CodeMethodNotFound, "Method not found", method)
}

func InvalidParams(data interface{}) *Error {
	return NewError(CodeInvalidParams, "Invalid params", data)
}

func InternalError() *Error {
	return NewError(CodeInternalError, "Internal error", nil)
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// toError maps handler failures onto the wire. The second return value tells
// whether the failure was unexpected and must be logged.
func toError(err error) (*Error, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr, false
	}

	var domainErr *custom_error.DomainError
	if errors.As(err, &domainErr) {
		return NewError(domainErr.Code, domainErr.Message, nil), false
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return InvalidParams(describeValidation(validationErrs)), false
	}

	if errors.Is(err, custom_error.ErrInvalidParams) {
		return InvalidParams(err.Error()), false
	}

	return InternalError(), true
}

func describeValidation(errs validator.ValidationErrors) []fieldError {
	fields := make([]fieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		fields = append(fields, fieldError{Field: field, Rule: fe.Tag()})
	}
	return fields
}
