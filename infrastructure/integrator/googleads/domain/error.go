package adsdomain

// ErrorResponse representa o envelope de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsUnauthorized indica token inválido/revogado ou conta sem permissão
func (e *ErrorResponse) IsUnauthorized() bool {
	return e.Error.Status == "UNAUTHENTICATED" || e.Error.Status == "PERMISSION_DENIED" ||
		e.Error.Code == 401 || e.Error.Code == 403
}

// IsRetryable cobre os status que a própria API recomenda repetir
func (e *ErrorResponse) IsRetryable() bool {
	switch e.Error.Status {
	case "DEADLINE_EXCEEDED", "UNAVAILABLE", "INTERNAL", "RESOURCE_EXHAUSTED":
		return true
	}
	return e.Error.Code == 503 || e.Error.Code == 504
}
