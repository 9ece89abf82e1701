package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = 1
	RoleMember = 2
)

// Claims vêm do token emitido pelo serviço de login, que fica fora desta API
type Claims struct {
	UserID     int    `json:"user_id"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	jwt.RegisteredClaims
}

// RequestMeta acompanha operações auditadas iniciadas por uma requisição HTTP
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
