package apiErrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code string
}

func (e *codedError) Error() string     { return "conta não pertence ao usuário" }
func (e *codedError) ErrorCode() string { return e.code }

func TestWriteFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "acesso negado vira 403",
			err:        fmt.Errorf("fetch: %w", &codedError{code: ErrAccessDenied}),
			wantStatus: http.StatusForbidden,
			wantCode:   ErrAccessDenied,
		},
		{
			name:       "não encontrado vira 404",
			err:        &codedError{code: ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   ErrNotFound,
		},
		{
			name:       "conflito vira 409",
			err:        &codedError{code: ErrConflict},
			wantStatus: http.StatusConflict,
			wantCode:   ErrConflict,
		},
		{
			name:       "erro genérico vira 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteFromError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestStatusFor_UnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
	assert.Equal(t, http.StatusBadGateway, StatusFor(ErrExternalService))
}
