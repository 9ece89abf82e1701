package apiErrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de autenticação e autorização
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrAccessDenied          = "AUTH_011" // Conta não conectada pelo usuário
	ErrInvalidState          = "AUTH_012" // State do OAuth inválido ou expirado
	ErrMissingRefreshToken   = "AUTH_013" // Provedor não devolveu refresh token
	ErrProviderDenied        = "AUTH_014" // Provedor recusou o código ou o refresh token

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de recurso
	ErrNotFound = "RES_001" // Conexão ou snapshot inexistente
	ErrConflict = "RES_002" // Registro já existente

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrAccessDenied:          http.StatusForbidden,
	ErrInvalidState:          http.StatusForbidden,
	ErrMissingRefreshToken:   http.StatusForbidden,
	ErrProviderDenied:        http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrConflict:              http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// Coded é implementado pelos erros tipados dos casos de uso
type Coded interface {
	error
	ErrorCode() string
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código; códigos desconhecidos viram 500
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// WriteFromError usa o código do erro tipado quando houver; o resto vira SRV_001
func WriteFromError(w http.ResponseWriter, err error) {
	apiErr := FromError(err, ErrInternalServer)
	WriteError(w, apiErr.Code, apiErr.Message, nil)
}

// FromError cria um erro de API a partir de um erro Go.
// Se o erro (ou algum da cadeia) for Coded, o código dele prevalece sobre fallback.
func FromError(err error, fallback string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	var coded Coded
	if errors.As(err, &coded) && coded.ErrorCode() != "" {
		return APIError{
			Code:    coded.ErrorCode(),
			Message: err.Error(),
		}
	}

	return APIError{
		Code:    fallback,
		Message: err.Error(),
	}
}
