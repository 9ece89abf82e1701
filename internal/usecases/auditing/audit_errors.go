package auditing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingUser       = errors.New("usuário obrigatório para auditoria")
	ErrMissingAction     = errors.New("ação obrigatória para auditoria")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type AuditError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuditError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

func (e *AuditError) ErrorCode() string {
	return e.Code
}

func NewAuditError(baseErr error, code string, userID int, details string) *AuditError {
	return &AuditError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
