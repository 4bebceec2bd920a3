package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/logger"
)

const (
	environmentEnvVar = "ENVIRONMENT"
	portEnvVar        = "PORT"
	DefaultPort       = "3000"
	baseURLEnvVar     = "BASE_URL"
	DefaultBaseURL    = "https://localhost:" + DefaultPort
	logLevelEnvVar    = "LOG_LEVEL"
	contactEnvVar     = "CONTACT_EMAIL"
	DefaultContact    = "info@meadowlarktravel.com"

	// Keys
	sessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	sessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	csrfKeyEnvVar           = "CSRF_KEY"
	jwtKeyEnvVar            = "JWT_KEY"
	csrfKeyLen              = 32

	// Redis, e.g. redis://:secret@cache.internal:6379/1
	redisURLEnvVar  = "REDIS_URL"
	redisPassEnvVar = "REDIS_PASSWORD"

	// Identity providers
	googleClientIDEnvVar     = "GOOGLE_CLIENT_ID"
	googleClientSecretEnvVar = "GOOGLE_CLIENT_SECRET"

	// Assets
	staticBaseURLEnvVar = "STATIC_BASE_URL"
	publicDirEnvVar     = "PUBLIC_DIR"
	DefaultPublicDir    = "public"

	// Web server
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second

	// TLS
	tlsKeyFileEnvVar   = "TLS_KEY_FILE"
	DefaultTLSKeyFile  = "ssl/app.pem"
	tlsCertFileEnvVar  = "TLS_CERT_FILE"
	DefaultTLSCertFile = "ssl/app.crt"
)

// A Config holds everything read from the environment to run the storefront.
type Config struct {
	Env      meadowlark.Environment
	Port     string
	BaseURL  *url.URL
	LogLevel logger.LogLevel
	Contact  string

	SessionAuthKey    string
	SessionEncryptKey string
	CSRFKey           []byte
	JWTKey            []byte

	RedisURL  string
	RedisPass string

	GoogleClientID     string
	GoogleClientSecret string

	StaticBaseURL string
	PublicDir     string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	TLSKeyFile  string
	TLSCertFile string
}

// LoadConfig reads a Config from environment variables.
//
// An ENVIRONMENT other than DEVELOPMENT or PRODUCTION is meadowlark.ErrUnknownEnvironment.
// In production, CSRF_KEY, JWT_KEY and both session keys are required;
// in development, a missing key is replaced with a random one lasting as long as the process.
func LoadConfig() (Config, error) {
	env, err := meadowlark.ParseEnvironment(os.Getenv(environmentEnvVar))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:                env,
		Port:               strings.TrimPrefix(meadowlark.EnvVarOrString(portEnvVar, DefaultPort), ":"),
		BaseURL:            meadowlark.EnvVarOrURL(baseURLEnvVar, DefaultBaseURL),
		LogLevel:           logger.NewLogLevel(meadowlark.EnvVarOrString(logLevelEnvVar, logger.LogLevelInfo.String())),
		Contact:            meadowlark.EnvVarOrString(contactEnvVar, DefaultContact),
		RedisURL:           os.Getenv(redisURLEnvVar),
		RedisPass:          os.Getenv(redisPassEnvVar),
		GoogleClientID:     os.Getenv(googleClientIDEnvVar),
		GoogleClientSecret: os.Getenv(googleClientSecretEnvVar),
		StaticBaseURL:      os.Getenv(staticBaseURLEnvVar),
		PublicDir:          meadowlark.EnvVarOrString(publicDirEnvVar, DefaultPublicDir),
		ReadTimeout:        meadowlark.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout:       meadowlark.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		IdleTimeout:        meadowlark.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		TLSKeyFile:         meadowlark.EnvVarOrString(tlsKeyFileEnvVar, DefaultTLSKeyFile),
		TLSCertFile:        meadowlark.EnvVarOrString(tlsCertFileEnvVar, DefaultTLSCertFile),
	}

	if cfg.BaseURL == nil {
		return Config{}, fmt.Errorf("%w: %s is not a valid URL", meadowlark.ErrBadConfig, baseURLEnvVar)
	}

	if cfg.LogLevel == logger.LogLevelUnk {
		cfg.LogLevel = logger.LogLevelInfo
	}

	if cfg.CSRFKey, err = key(env, csrfKeyEnvVar); err != nil {
		return Config{}, err
	}

	if len(cfg.CSRFKey) != csrfKeyLen {
		return Config{}, fmt.Errorf("%w: %s must be %d bytes", meadowlark.ErrBadConfig, csrfKeyEnvVar, csrfKeyLen)
	}

	if cfg.JWTKey, err = key(env, jwtKeyEnvVar); err != nil {
		return Config{}, err
	}

	for envVar, dst := range map[string]*string{
		sessionAuthKeyEnvVar:    &cfg.SessionAuthKey,
		sessionEncryptKeyEnvVar: &cfg.SessionEncryptKey,
	} {
		b, err := key(env, envVar)
		if err != nil {
			return Config{}, err
		}

		*dst = hex.EncodeToString(b)
	}

	if _, err := cfg.Redis(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// key decodes the hex-encoded key held by envVar.
func key(env meadowlark.Environment, envVar string) ([]byte, error) {
	val := os.Getenv(envVar)
	if val == "" {
		if env.IsProduction() {
			return nil, fmt.Errorf("%w: %s is required in %s", meadowlark.ErrBadConfig, envVar, env)
		}

		b := make([]byte, csrfKeyLen)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("%w: generating %s: %s", meadowlark.ErrUnexpected, envVar, err)
		}

		return b, nil
	}

	b, err := hex.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not hex encoded: %s", meadowlark.ErrBadConfig, envVar, err)
	}

	return b, nil
}

// Addr is the address the server listens on.
func (c Config) Addr() string { return ":" + c.Port }

// Redis parses RedisURL into the options for connecting to Redis.
// RedisPass fills in a password the URL leaves out.
//
// Without a RedisURL, Redis returns nil options and no error.
func (c Config) Redis() (*redis.Options, error) {
	if c.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a Redis URL: %s", meadowlark.ErrBadConfig, redisURLEnvVar, err)
	}

	if opts.Password == "" {
		opts.Password = c.RedisPass
	}

	return opts, nil
}
