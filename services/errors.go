// file: services/errors.go
package services

import (
	"errors"
)

// ErrorKind 对外暴露的稳定错误类别
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation_error"
	KindGateClosed    ErrorKind = "gate_closed"
	KindStateConflict ErrorKind = "state_conflict"
	KindNotAssigned   ErrorKind = "not_assigned"
	KindForbidden     ErrorKind = "forbidden"
	KindNotFound      ErrorKind = "not_found"
	KindPrecondition  ErrorKind = "precondition_failed"
	KindInternal      ErrorKind = "internal"
)

type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, msg string) error {
	return &DomainError{Kind: kind, Message: msg}
}

// KindOf 提取错误类别，非领域错误一律视为 internal
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
