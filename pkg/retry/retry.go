// Package retry executa operações com backoff exponencial limitado.
//
// O atraso antes da tentativa n+1 é min(BaseDelay * 2^(n-1), MaxDelay). Quem decide
// se um erro merece nova tentativa é o predicado ShouldRetry, injetado por quem chama.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultMaxDelay    = 10 * time.Second
)

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// ShouldRetry classifica o erro. Nil usa IsTransient.
	ShouldRetry func(error) bool

	// Operation identifica a chamada nos logs.
	Operation string

	// Sleep aguarda entre tentativas. Nil usa um timer que respeita o contexto.
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		ShouldRetry: IsTransient,
	}
}

// WithPredicate devolve uma cópia da política com outro classificador de erros
func (p Policy) WithPredicate(shouldRetry func(error) bool) Policy {
	p.ShouldRetry = shouldRetry
	return p
}

// Named devolve uma cópia da política com o nome da operação para os logs
func (p Policy) Named(operation string) Policy {
	p.Operation = operation
	return p
}

// Delay calcula a espera depois da tentativa (1-based) que falhou.
// Sem MaxDelay vale DefaultMaxDelay como teto.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	delay := p.BaseDelay
	if delay <= 0 {
		return 0
	}

	for i := 1; i < attempt; i++ {
		if delay >= maxDelay || delay > math.MaxInt64/2 {
			break
		}
		delay *= 2
	}

	if delay > maxDelay {
		return maxDelay
	}

	return delay
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.ShouldRetry == nil {
		p.ShouldRetry = IsTransient
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
	if p.Operation == "" {
		p.Operation = "operation"
	}
	return p
}

// Do executa op até MaxAttempts vezes. Erros não retentáveis são devolvidos sem
// alteração na hora. Ao esgotar as tentativas o último erro volta embrulhado e
// continua alcançável por errors.Is / errors.As.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalized()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !p.ShouldRetry(err) {
			return zero, err
		}

		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Delay(attempt)

		logrus.WithFields(logrus.Fields{
			"operation":    p.Operation,
			"attempt":      attempt,
			"max_attempts": p.MaxAttempts,
			"delay_ms":     delay.Milliseconds(),
			"error":        err.Error(),
		}).Warn("retry: transient failure, retrying")

		if err := p.Sleep(ctx, delay); err != nil {
			return zero, errors.Wrapf(lastErr, "%s: interrupted while waiting to retry", p.Operation)
		}
	}

	return zero, errors.Wrapf(lastErr, "%s: giving up after %d attempts", p.Operation, p.MaxAttempts)
}

// Run é o Do para operações sem resultado
func Run(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
