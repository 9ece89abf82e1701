package domain

import (
	"time"
)

type ConnectionStatus string

const (
	ConnectionStatusActive       ConnectionStatus = "active"
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
	ConnectionStatusError        ConnectionStatus = "error"
)

// Connection liga um usuário a uma conta de anúncios externa.
// Única por (UserID, ExternalAccountID).
type Connection struct {
	ID                string           `json:"id"`
	UserID            int              `json:"user_id"`
	ExternalAccountID string           `json:"external_account_id"`
	AccountName       *string          `json:"account_name"`
	AccessToken       string           `json:"-"`
	RefreshToken      string           `json:"-"`
	TokenExpiry       time.Time        `json:"token_expiry"`
	Scope             string           `json:"scope"`
	Status            ConnectionStatus `json:"status"`
	LastSyncAt        *time.Time       `json:"last_sync_at"`
	LastSyncError     *string          `json:"last_sync_error"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TokenValid é estrito: expiração igual a now já conta como expirado
func (c *Connection) TokenValid(now time.Time) bool {
	return c.AccessToken != "" && c.TokenExpiry.After(now)
}

type TokenSet struct {
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	Scope        string    `json:"scope"`
}

type ConnectOutcome string

const (
	ConnectOutcomeConnected        ConnectOutcome = "connected"
	ConnectOutcomeAlreadyConnected ConnectOutcome = "already_connected"
	ConnectOutcomeFailed           ConnectOutcome = "failed"
)

type ConnectResult struct {
	ExternalAccountID string         `json:"external_account_id"`
	Outcome           ConnectOutcome `json:"outcome"`
	Reason            string         `json:"reason,omitempty"`
}

// ConnectBatchResult agrupa o resultado por conta; uma falha não interrompe o lote
type ConnectBatchResult struct {
	Connected        []string        `json:"connected"`
	AlreadyConnected []string        `json:"already_connected"`
	Failed           []ConnectResult `json:"failed"`
}

func (r *ConnectBatchResult) Add(result ConnectResult) {
	switch result.Outcome {
	case ConnectOutcomeConnected:
		r.Connected = append(r.Connected, result.ExternalAccountID)
	case ConnectOutcomeAlreadyConnected:
		r.AlreadyConnected = append(r.AlreadyConnected, result.ExternalAccountID)
	default:
		r.Failed = append(r.Failed, result)
	}
}

func NewConnectBatchResult() *ConnectBatchResult {
	return &ConnectBatchResult{
		Connected:        make([]string, 0),
		AlreadyConnected: make([]string, 0),
		Failed:           make([]ConnectResult, 0),
	}
}

type AuthorizationResult struct {
	OwnerID int                 `json:"owner_id"`
	Tokens  *TokenSet           `json:"tokens"`
	Batch   *ConnectBatchResult `json:"accounts"`
}
