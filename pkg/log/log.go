package log

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Fields logrus.Fields

// Logger é o subconjunto do logrus usado pelos middlewares HTTP
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
}

type contextKey string

const CorrelationIDKey contextKey = "correlation_id"

const correlationIDField = "correlation_id"

// compact descarta campos fora de compactFields; ligado em desenvolvimento
var compact atomic.Bool

var compactFields = map[string]bool{
	correlationIDField: true,
	"method":           true,
	"path":             true,
	"status_code":      true,
	"duration_ms":      true,
	"error":            true,
	"account_id":       true,
	"connection_id":    true,
	"resource":         true,
	"task":             true,
}

func keepInDevelopment(key string) bool {
	return compactFields[key] || strings.HasPrefix(key, "user_")
}

// Configure aplica formato e nível ao logger padrão do logrus.
// Nível inválido cai para info; env vazio ou development liga o modo compacto.
func Configure(level, env string) logrus.Level {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("log: invalid level %q, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	compact.Store(env == "" || env == "development" || env == "dev")

	return logLevel
}

type logger struct {
	entry *logrus.Entry
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if compact.Load() && !keepInDevelopment(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	selected := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if compact.Load() && !keepInDevelopment(k) {
			continue
		}
		selected[k] = v
	}
	if len(selected) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(selected)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// WithCorrelationID reaproveita o ID recebido do cliente; vazio gera um novo
func WithCorrelationID(ctx context.Context, incoming string) (context.Context, string) {
	correlationID := incoming
	if correlationID == "" || len(correlationID) > 64 {
		correlationID = uuid.New().String()
	}
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext cria um logger sobre o logger padrão com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	l := &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return l.WithField(correlationIDField, correlationID)
	}
	return l
}
