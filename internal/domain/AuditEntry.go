package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

type AuditAction string

const (
	AuditActionAuthorize         AuditAction = "authorize"
	AuditActionConnectAccount    AuditAction = "connect_account"
	AuditActionDisconnectAccount AuditAction = "disconnect_account"
	AuditActionRemoveAccount     AuditAction = "remove_account"
	AuditActionRefreshToken      AuditAction = "refresh_token"
	AuditActionRefreshData       AuditAction = "refresh_data"
	AuditActionCreateSnapshot    AuditAction = "create_snapshot"
	AuditActionEraseUser         AuditAction = "erase_user"
)

// AuditEntry é só de inserção; Before/After são blobs JSON opacos
type AuditEntry struct {
	ID                int64               `json:"id"`
	UserID            int                 `json:"user_id"`
	ExternalAccountID *string             `json:"external_account_id,omitempty"`
	Action            AuditAction         `json:"action"`
	ResourceType      *string             `json:"resource_type,omitempty"`
	ResourceID        *string             `json:"resource_id,omitempty"`
	Before            jsoniter.RawMessage `json:"before,omitempty"`
	After             jsoniter.RawMessage `json:"after,omitempty"`
	Success           bool                `json:"success"`
	ErrorMessage      *string             `json:"error_message,omitempty"`
	IPAddress         *string             `json:"ip_address,omitempty"`
	UserAgent         *string             `json:"user_agent,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

type AuditFilter struct {
	UserID            *int
	ExternalAccountID *string
	Action            *AuditAction
	ResourceType      *string
	ResourceID        *string
	OnlyFailures      bool
	Limit             int
	Offset            int
}

// Normalize aplica o limite padrão e o teto
func (f AuditFilter) Normalize() AuditFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultAuditLimit
	}
	if f.Limit > MaxAuditLimit {
		f.Limit = MaxAuditLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
