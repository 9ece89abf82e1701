package integration

import (
	"errors"
	"fmt"

	"github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

var (
	ErrConnectionDisconnected = errors.New("conexão desconectada pelo usuário")
	ErrUnknownResource        = errors.New("recurso desconhecido")
	ErrRemoteUnauthorized     = errors.New("plataforma de anúncios recusou o token")
	ErrRemoteUnavailable      = errors.New("falha ao consultar a plataforma de anúncios")
	ErrDatabaseOperation      = errors.New("erro ao realizar operação no banco de dados")
)

type IntegrationError struct {
	Err               error
	Code              string
	ExternalAccountID string
	Details           string
}

func (e *IntegrationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func (e *IntegrationError) ErrorCode() string {
	return e.Code
}

func NewIntegrationError(baseErr error, code string, accountID string, details string) *IntegrationError {
	return &IntegrationError{
		Err:               baseErr,
		Code:              code,
		ExternalAccountID: accountID,
		Details:           details,
	}
}

// remoteError preserva erros já tipados e classifica as falhas da API de anúncios
func remoteError(err error, accountID string) error {
	var coded apiErrors.Coded
	if errors.As(err, &coded) {
		return err
	}

	if adsclient.IsUnauthorized(err) {
		return NewIntegrationError(ErrRemoteUnauthorized, apiErrors.ErrProviderDenied, accountID, err.Error())
	}

	return NewIntegrationError(ErrRemoteUnavailable, apiErrors.ErrExternalService, accountID, err.Error())
}
