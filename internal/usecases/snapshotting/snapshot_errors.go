package snapshotting

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotNotFound      = errors.New("snapshot não encontrado")
	ErrSnapshotAlreadyExists = errors.New("já existe snapshot para esta conta nesta data")
	ErrInvalidPeriod         = errors.New("período inválido")
	ErrMissingAccount        = errors.New("conta externa obrigatória")
	ErrDatabaseOperation     = errors.New("erro ao realizar operação no banco de dados")
)

type SnapshotError struct {
	Err               error
	Code              string
	ExternalAccountID string
	Details           string
}

func (e *SnapshotError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

func (e *SnapshotError) ErrorCode() string {
	return e.Code
}

func NewSnapshotError(baseErr error, code string, accountID string, details string) *SnapshotError {
	return &SnapshotError{
		Err:               baseErr,
		Code:              code,
		ExternalAccountID: accountID,
		Details:           details,
	}
}
