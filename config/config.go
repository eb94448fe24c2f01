package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultJWTExpiresIn       = 7 * 24 * time.Hour
	defaultClerkAPIURL        = "https://api.clerk.com/v1"
	defaultClerkTimeout       = 5 * time.Second
	defaultJWKSCacheTTL       = 10 * time.Minute
	defaultWebhookTolerance   = 5 * time.Minute
	defaultReconcileAttempts  = 3
	defaultExternalMinLength  = 100
	defaultStorageTimeout     = 5 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		AllowOrigins []string         `json:"allowOrigins" yaml:"allowOrigins"`
		RateLimit    *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Migrations controls the embedded schema migrations applied at startup
	Migrations *MigrationsConfig `json:"migrations" yaml:"migrations"`

	// JWT configures locally issued credentials
	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Clerk configures the external identity provider. An empty secret key disables the external path.
	Clerk *ClerkConfig `json:"clerk" yaml:"clerk"`

	// ProfileCache caches external profiles fetched during authentication
	ProfileCache *ProfileCacheConfig `json:"profileCache" yaml:"profileCache"`

	// PubSub configuration for identity event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// SlowQuery is the GORM slow query threshold; zero keeps the default
	SlowQuery time.Duration `json:"slowQuery" yaml:"slowQuery"`
}

// RateLimitConfig limits unauthenticated credential endpoints per client IP
type RateLimitConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Rate      float64       `json:"rate" yaml:"rate"`
	Burst     int           `json:"burst" yaml:"burst"`
	ExpiresIn time.Duration `json:"expiresIn" yaml:"expiresIn"`
}

type MigrationsConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

type JWTConfig struct {
	Secret    string        `json:"secret" yaml:"secret"`
	ExpiresIn time.Duration `json:"expiresIn" yaml:"expiresIn"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
	// ReconcileMaxAttempts bounds the lookup-or-create loop on uniqueness conflicts
	ReconcileMaxAttempts int `json:"reconcileMaxAttempts" yaml:"reconcileMaxAttempts"`
	// ExternalTokenMinLength is the length from which a bearer token is tried against Clerk first
	ExternalTokenMinLength int `json:"externalTokenMinLength" yaml:"externalTokenMinLength"`
	// StorageTimeout bounds the user lookups and writes done by the auth gate and webhooks
	StorageTimeout time.Duration `json:"storageTimeout" yaml:"storageTimeout"`
}

type ClerkConfig struct {
	SecretKey         string        `json:"secretKey" yaml:"secretKey"`
	WebhookSecret     string        `json:"webhookSecret" yaml:"webhookSecret"`
	APIURL            string        `json:"apiUrl" yaml:"apiUrl"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout"`
	AuthorizedParties []string      `json:"authorizedParties" yaml:"authorizedParties"`
	JWKSCacheTTL      time.Duration `json:"jwksCacheTtl" yaml:"jwksCacheTtl"`
	// JWKSRefreshSchedule is a cron spec for background key refresh, e.g. "@every 10m". Empty disables it.
	JWKSRefreshSchedule string        `json:"jwksRefreshSchedule" yaml:"jwksRefreshSchedule"`
	WebhookTolerance    time.Duration `json:"webhookTolerance" yaml:"webhookTolerance"`
}

// Enabled reports whether the external authentication path is configured.
func (c *ClerkConfig) Enabled() bool {
	return c != nil && strings.TrimSpace(c.SecretKey) != ""
}

type ProfileCacheConfig struct {
	// Provider is "" (disabled) or "redis"
	Provider string        `json:"provider" yaml:"provider"`
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
}

// PubSubConfig defines configuration for identity event publishing
type PubSubConfig struct {
	// Provider type: "local", "google", "gocloud" or "rabbitmq". Empty disables publishing.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID and topic ID (for google provider)
	ProjectID       string `json:"projectId" yaml:"projectId"`
	TopicID         string `json:"topicId" yaml:"topicId"`
	CredentialsFile string `json:"credentialsFile" yaml:"credentialsFile"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// TopicURL is a gocloud.dev pubsub URL, e.g. "mem://identity" (for gocloud provider)
	TopicURL string `json:"topicUrl" yaml:"topicUrl"`

	// AMQP settings (for rabbitmq provider)
	AMQPURL  string `json:"amqpUrl" yaml:"amqpUrl"`
	Exchange string `json:"exchange" yaml:"exchange"`
}

// IsProduction reports whether the service runs with production semantics.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env.Env, "production") || strings.EqualFold(c.Env.Env, "prod")
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// CLERK_SECRETKEY -> clerk.secretKey (aligned with the YAML casing)
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills optional settings and rejects configurations the service cannot run with.
func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret must be provided")
	}
	if c.JWT.ExpiresIn <= 0 {
		c.JWT.ExpiresIn = defaultJWTExpiresIn
	}

	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.ReconcileMaxAttempts <= 0 {
		c.Auth.ReconcileMaxAttempts = defaultReconcileAttempts
	}
	if c.Auth.ExternalTokenMinLength <= 0 {
		c.Auth.ExternalTokenMinLength = defaultExternalMinLength
	}
	if c.Auth.StorageTimeout <= 0 {
		c.Auth.StorageTimeout = defaultStorageTimeout
	}

	if c.Clerk == nil {
		c.Clerk = &ClerkConfig{}
	}
	if c.Clerk.APIURL == "" {
		c.Clerk.APIURL = defaultClerkAPIURL
	}
	c.Clerk.APIURL = strings.TrimRight(c.Clerk.APIURL, "/")
	if c.Clerk.Timeout <= 0 {
		c.Clerk.Timeout = defaultClerkTimeout
	}
	if c.Clerk.JWKSCacheTTL <= 0 {
		c.Clerk.JWKSCacheTTL = defaultJWKSCacheTTL
	}
	if c.Clerk.WebhookTolerance <= 0 {
		c.Clerk.WebhookTolerance = defaultWebhookTolerance
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
