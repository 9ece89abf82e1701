package ownership

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied = errors.New("conta não conectada por este usuário")
	ErrLookupFailed = errors.New("falha ao verificar a conexão da conta")
)

// OwnershipError carrega o par usuário/conta verificado
type OwnershipError struct {
	Err               error
	Code              string
	UserID            int
	ExternalAccountID string
	Details           string
}

func (e *OwnershipError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *OwnershipError) Unwrap() error {
	return e.Err
}

func (e *OwnershipError) ErrorCode() string {
	return e.Code
}

func NewOwnershipError(baseErr error, code string, userID int, accountID string, details string) *OwnershipError {
	return &OwnershipError{
		Err:               baseErr,
		Code:              code,
		UserID:            userID,
		ExternalAccountID: accountID,
		Details:           details,
	}
}

// IsAccessDenied separa "não é seu" de falhas de armazenamento
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
