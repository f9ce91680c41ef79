package stub

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeMalformedSignature ErrorCode = "MALFORMED_SIGNATURE"
	CodeUnresolvedType     ErrorCode = "UNRESOLVED_TYPE"
)

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

const (
	CtxPath        = "path"
	CtxDeclaration = "declaration"
	CtxSignature   = "signature"
)

func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, msg string) *DomainError {
	return &DomainError{Code: code, Message: msg}
}

func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
