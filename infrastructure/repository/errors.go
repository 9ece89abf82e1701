package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/vfg2006/adsync-api/internal/domain"
)

var ErrUnknownResource = errors.New("unknown cache resource type")

// dbError padroniza os erros de banco, preservando o código do Postgres quando houver
func dbError(err error, operation string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: database error: %w (code: %s)", operation, pqErr, pqErr.Code)
	}
	return fmt.Errorf("%s: failed to execute query: %w", operation, err)
}

func cacheTable(resource domain.ResourceType) (string, error) {
	if !resource.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return "ad_cache_" + string(resource), nil
}
