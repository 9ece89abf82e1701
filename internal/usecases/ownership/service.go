package ownership

//go:generate mockgen -source=service.go -destination=mocks/ownership_mock.go -package=mocks

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

// Guard confirma que o usuário conectou a conta externa. A busca é exata pelo
// par (usuário, conta): a conta conectada por outro usuário nunca conta.
type Guard interface {
	Verify(ctx context.Context, userID int, externalAccountID string) (bool, error)
	Require(ctx context.Context, userID int, externalAccountID string) (*domain.Connection, error)
}

type Service struct {
	connRepo repository.ConnectionRepository
}

func NewService(connRepo repository.ConnectionRepository) Guard {
	return &Service{
		connRepo: connRepo,
	}
}

func (s *Service) Verify(ctx context.Context, userID int, externalAccountID string) (bool, error) {
	_, err := s.Require(ctx, userID, externalAccountID)
	if err != nil {
		if IsAccessDenied(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Require devolve a conexão do par ou ErrAccessDenied
func (s *Service) Require(ctx context.Context, userID int, externalAccountID string) (*domain.Connection, error) {
	if userID <= 0 || externalAccountID == "" {
		return nil, NewOwnershipError(ErrAccessDenied, apiErrors.ErrAccessDenied, userID, externalAccountID, "usuário ou conta ausente")
	}

	conn, err := s.connRepo.GetByUserAndAccount(ctx, userID, externalAccountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"account_id": externalAccountID,
			"error":      err.Error(),
		}).Error("ownership: failed to look up connection")
		return nil, NewOwnershipError(ErrLookupFailed, apiErrors.ErrDatabaseOperation, userID, externalAccountID, err.Error())
	}

	if conn == nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"account_id": externalAccountID,
		}).Warn("ownership: access denied")
		return nil, NewOwnershipError(ErrAccessDenied, apiErrors.ErrAccessDenied, userID, externalAccountID, "")
	}

	return conn, nil
}
