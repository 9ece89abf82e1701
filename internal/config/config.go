package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	GoogleAds   GoogleAds   `mapstructure:",squash"`
	OAuth       OAuth       `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Retry       Retry       `mapstructure:",squash"`
	Cache       Cache       `mapstructure:",squash"`
	Snapshot    Snapshot    `mapstructure:",squash"`
	Audit       Audit       `mapstructure:",squash"`
	Maintenance Maintenance `mapstructure:",squash"`
}

type App struct {
	LogLevel           string `mapstructure:"log_level"`
	Env                string `mapstructure:"app_env"`
	TokenEncryptionKey string `mapstructure:"token_encryption_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
	RunMigrations bool   `mapstructure:"database_run_migrations"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"database_conn_max_idle_time"`
}

// Redis é opcional. Sem URL o refresh de token não é serializado entre instâncias.
type Redis struct {
	URL         string        `mapstructure:"redis_url"`
	LockTTL     time.Duration `mapstructure:"redis_lock_ttl"`
	LockTimeout time.Duration `mapstructure:"redis_lock_timeout"`
}

type GoogleAds struct {
	BaseURL         string        `mapstructure:"google_ads_base_url"`
	Version         string        `mapstructure:"google_ads_version"`
	URL             string        `mapstructure:"-"`
	DeveloperToken  string        `mapstructure:"google_ads_developer_token"`
	LoginCustomerID string        `mapstructure:"google_ads_login_customer_id"`
	RequestTimeout  time.Duration `mapstructure:"google_ads_request_timeout"`
}

type OAuth struct {
	ClientID        string        `mapstructure:"google_oauth_client_id"`
	ClientSecret    string        `mapstructure:"google_oauth_client_secret"`
	RedirectURL     string        `mapstructure:"google_oauth_redirect_url"`
	Scopes          []string      `mapstructure:"google_oauth_scopes"`
	ExchangeTimeout time.Duration `mapstructure:"google_oauth_exchange_timeout"`
	StateTTL        time.Duration `mapstructure:"google_oauth_state_ttl"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Retry struct {
	MaxAttempts int           `mapstructure:"retry_max_attempts"`
	BaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	MaxDelay    time.Duration `mapstructure:"retry_max_delay"`
}

type Cache struct {
	DefaultTTL         time.Duration `mapstructure:"cache_default_ttl"`
	DailyMetricsTTL    time.Duration `mapstructure:"cache_daily_metrics_ttl"`
	RecommendationsTTL time.Duration `mapstructure:"cache_recommendations_ttl"`
}

type Snapshot struct {
	RetentionDays int `mapstructure:"snapshot_retention_days"`
}

type Audit struct {
	RetentionDays int `mapstructure:"audit_retention_days"`
}

type Maintenance struct {
	Enabled           bool   `mapstructure:"maintenance_enabled"`
	CacheSweepCron    string `mapstructure:"maintenance_cache_sweep_cron"`
	SnapshotPurgeCron string `mapstructure:"maintenance_snapshot_purge_cron"`
	AuditCleanupCron  string `mapstructure:"maintenance_audit_cleanup_cron"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsync?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_RUN_MIGRATIONS", true)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_LOCK_TTL", "30s")
	viper.SetDefault("REDIS_LOCK_TIMEOUT", "10s")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("GOOGLE_OAUTH_CLIENT_ID", "your_client_id")
	viper.SetDefault("GOOGLE_OAUTH_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("GOOGLE_OAUTH_REDIRECT_URL", "http://localhost:8000/v1/oauth/callback")
	viper.SetDefault("GOOGLE_OAUTH_SCOPES", "https://www.googleapis.com/auth/adwords")
	viper.SetDefault("GOOGLE_OAUTH_EXCHANGE_TIMEOUT", "15s")
	viper.SetDefault("GOOGLE_OAUTH_STATE_TTL", "10m")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("TOKEN_ENCRYPTION_KEY", "") // hex, 32 bytes. Vazio grava tokens em texto puro

	// Backoff: 1s, 2s, 4s... limitado a 10s
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_BASE_DELAY", "1s")
	viper.SetDefault("RETRY_MAX_DELAY", "10s")

	viper.SetDefault("CACHE_DEFAULT_TTL", "60m")
	viper.SetDefault("CACHE_DAILY_METRICS_TTL", "30m")
	viper.SetDefault("CACHE_RECOMMENDATIONS_TTL", "120m")

	viper.SetDefault("SNAPSHOT_RETENTION_DAYS", 365)
	viper.SetDefault("AUDIT_RETENTION_DAYS", 90)

	viper.SetDefault("MAINTENANCE_ENABLED", false)
	viper.SetDefault("MAINTENANCE_CACHE_SWEEP_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("MAINTENANCE_SNAPSHOT_PURGE_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("MAINTENANCE_AUDIT_CLEANUP_CRON", "30 2 * * *")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.finalize()

	return config, nil
}

// finalize monta os campos derivados depois do Unmarshal
func (c *Config) finalize() {
	c.GoogleAds.URL = fmt.Sprintf("%s/%s", c.GoogleAds.BaseURL, c.GoogleAds.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
