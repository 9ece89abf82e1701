package caching

//go:generate mockgen -source=service.go -destination=mocks/caching_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultTTL         = 60 * time.Minute
	DailyMetricsTTL    = 30 * time.Minute
	RecommendationsTTL = 120 * time.Minute
)

type TTLPolicy struct {
	Default         time.Duration
	DailyMetrics    time.Duration
	Recommendations time.Duration
}

func NewTTLPolicy(cfg *config.Config) TTLPolicy {
	policy := TTLPolicy{
		Default:         cfg.Cache.DefaultTTL,
		DailyMetrics:    cfg.Cache.DailyMetricsTTL,
		Recommendations: cfg.Cache.RecommendationsTTL,
	}

	if policy.Default <= 0 {
		policy.Default = DefaultTTL
	}
	if policy.DailyMetrics <= 0 {
		policy.DailyMetrics = DailyMetricsTTL
	}
	if policy.Recommendations <= 0 {
		policy.Recommendations = RecommendationsTTL
	}

	return policy
}

func (p TTLPolicy) For(resource domain.ResourceType) time.Duration {
	switch resource {
	case domain.ResourceDailyMetrics:
		return p.DailyMetrics
	case domain.ResourceRecommendations:
		return p.Recommendations
	default:
		return p.Default
	}
}

// Cache guarda respostas da plataforma por (recurso, conta, período).
// Falhas de leitura e escrita viram miss; nunca interrompem a requisição.
type Cache interface {
	Get(ctx context.Context, key domain.CacheKey) ([]byte, bool)
	Put(ctx context.Context, key domain.CacheKey, payload []byte) bool
	Invalidate(ctx context.Context, externalAccountID string) domain.InvalidationReport
	Sweep(ctx context.Context) domain.InvalidationReport
}

type Service struct {
	repo repository.CacheRepository
	ttl  TTLPolicy
	now  func() time.Time
}

func NewService(cfg *config.Config, repo repository.CacheRepository) Cache {
	return &Service{
		repo: repo,
		ttl:  NewTTLPolicy(cfg),
		now:  time.Now,
	}
}

func (s *Service) Get(ctx context.Context, key domain.CacheKey) ([]byte, bool) {
	now := s.now()

	entry, err := s.repo.Get(ctx, key, now)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"cache_key": key.String(),
			"error":     err.Error(),
		}).Warn("cache: read failed, treating as miss")
		return nil, false
	}

	if entry == nil || entry.Expired(now) {
		return nil, false
	}

	return entry.Payload, true
}

// Put devolve false quando já havia entrada válida (a primeira gravação vence) ou quando a escrita falhou
func (s *Service) Put(ctx context.Context, key domain.CacheKey, payload []byte) bool {
	now := s.now()

	inserted, err := s.repo.Insert(ctx, &domain.CacheEntry{
		Key:       key,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl.For(key.Resource)),
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"cache_key": key.String(),
			"error":     err.Error(),
		}).Warn("cache: write failed")
		return false
	}

	if !inserted {
		logrus.WithField("cache_key", key.String()).Debug("cache: unexpired entry kept")
	}

	return inserted
}

// Invalidate apaga todas as classes da conta. Cada classe é independente: uma
// falha fica no relatório e não impede as demais.
func (s *Service) Invalidate(ctx context.Context, externalAccountID string) domain.InvalidationReport {
	report := s.eachResource(ctx, "invalidate", func(ctx context.Context, resource domain.ResourceType) (int64, error) {
		return s.repo.DeleteByAccount(ctx, resource, externalAccountID)
	})
	report.ExternalAccountID = externalAccountID
	return report
}

// Sweep remove as entradas vencidas de todas as classes
func (s *Service) Sweep(ctx context.Context) domain.InvalidationReport {
	now := s.now()
	return s.eachResource(ctx, "sweep", func(ctx context.Context, resource domain.ResourceType) (int64, error) {
		return s.repo.DeleteExpired(ctx, resource, now)
	})
}

func (s *Service) eachResource(ctx context.Context, operation string, del func(ctx context.Context, resource domain.ResourceType) (int64, error)) domain.InvalidationReport {
	results := make([]domain.InvalidationResult, len(domain.ResourceTypes))
	finished := make([]bool, len(domain.ResourceTypes))

	var wg conc.WaitGroup
	for i, resource := range domain.ResourceTypes {
		results[i] = domain.InvalidationResult{Resource: resource}

		wg.Go(func() {
			deleted, err := del(ctx, resource)
			results[i].Deleted = deleted
			if err != nil {
				results[i].Error = err.Error()
				logrus.WithFields(logrus.Fields{
					"operation": operation,
					"resource":  resource,
					"error":     err.Error(),
				}).Error("cache: delete failed")
			}
			finished[i] = true
		})
	}

	if recovered := wg.WaitAndRecover(); recovered != nil {
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"panic":     recovered.Value,
		}).Error("cache: delete panicked")
		for i := range results {
			if !finished[i] {
				results[i].Error = fmt.Sprintf("panic: %v", recovered.Value)
			}
		}
	}

	report := domain.InvalidationReport{Results: results}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"deleted":   report.TotalDeleted(),
		"failed":    len(report.Failed()),
	}).Info("cache: delete finished")

	return report
}

// Fetch lê do cache e, no miss, busca, serializa e grava. O bool indica se veio do cache.
// Payload que não decodifica é tratado como miss.
func Fetch[T any](ctx context.Context, cache Cache, key domain.CacheKey, fetch func(ctx context.Context) (T, error)) (T, bool, error) {
	if payload, ok := cache.Get(ctx, key); ok {
		var cached T
		err := json.Unmarshal(payload, &cached)
		if err == nil {
			return cached, true, nil
		}

		logrus.WithFields(logrus.Fields{
			"cache_key": key.String(),
			"error":     err.Error(),
		}).Warn("cache: undecodable payload, refetching")
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"cache_key": key.String(),
			"error":     err.Error(),
		}).Warn("cache: failed to encode payload")
		return value, false, nil
	}

	cache.Put(ctx, key, payload)

	return value, false, nil
}
