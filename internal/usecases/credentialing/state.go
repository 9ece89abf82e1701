package credentialing

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

const stateAudience = "adsync:oauth-state"

// newState assina o dono da autorização no parâmetro state (anti-CSRF)
func (s *Service) newState(ownerID int) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(ownerID),
		Audience:  jwt.ClaimStrings{stateAudience},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.stateTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.stateSecret)
}

func (s *Service) ParseState(state string) (int, error) {
	if state == "" {
		return 0, NewCredentialError(ErrInvalidState, apiErrors.ErrInvalidState, "state ausente")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		return s.stateSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(stateAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		details := "assinatura inválida"
		if err != nil {
			details = err.Error()
		}
		return 0, NewCredentialError(ErrInvalidState, apiErrors.ErrInvalidState, details)
	}

	ownerID, err := strconv.Atoi(claims.Subject)
	if err != nil || ownerID <= 0 {
		return 0, NewCredentialError(ErrInvalidState, apiErrors.ErrInvalidState, "subject inválido")
	}

	return ownerID, nil
}
