package credentialing

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

var (
	ErrInvalidState        = errors.New("state de autorização inválido ou expirado")
	ErrMissingRefreshToken = errors.New("provedor não devolveu refresh token")
	ErrProviderDenied      = errors.New("provedor recusou a credencial")
	ErrProviderUnavailable = errors.New("provedor de autenticação indisponível")
	ErrTokenPersistence    = errors.New("falha ao gravar token renovado")
)

// CredentialError é um erro com contexto da conexão envolvida
type CredentialError struct {
	Err          error
	Code         string
	ConnectionID string
	Details      string
}

func (e *CredentialError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

func (e *CredentialError) ErrorCode() string {
	return e.Code
}

func NewCredentialError(baseErr error, code string, details string) *CredentialError {
	return &CredentialError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewConnectionCredentialError(baseErr error, code string, connectionID string, details string) *CredentialError {
	return &CredentialError{
		Err:          baseErr,
		Code:         code,
		ConnectionID: connectionID,
		Details:      details,
	}
}

// IsAuthorizationError indica falhas que nunca devem ser repetidas
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrMissingRefreshToken) ||
		errors.Is(err, ErrProviderDenied)
}

// IsProviderRejection reconhece respostas 4xx do endpoint de token (invalid_grant e afins)
func IsProviderRejection(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return false
	}
	if retrieveErr.ErrorCode != "" {
		return true
	}
	return retrieveErr.Response != nil &&
		retrieveErr.Response.StatusCode >= 400 && retrieveErr.Response.StatusCode < 500
}
