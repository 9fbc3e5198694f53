package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel   int       `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat  string    `env:"LOG_FORMAT" envDefault:"text"`
	BcryptCost int       `env:"BCRYPT_COST" envDefault:"10"`
	HTTP       HTTP      `envPrefix:"HTTP_"`
	Database   Database  `envPrefix:"DATABASE_"`
	JWT        JWT       `envPrefix:"JWT_"`
	Storage    Storage   `envPrefix:"MINIO_"`
	Upload     Upload    `envPrefix:"UPLOAD_"`
	Cookie     Cookie    `envPrefix:"COOKIE_"`
	RateLimit  RateLimit `envPrefix:"RATE_LIMIT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8000"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	CORSOrigin         string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	JSONBodyLimit      int64  `env:"JSON_BODY_LIMIT" envDefault:"16384"`
}

// Database contains database connection parameters.
// Driver selects the store backend: mongo or postgres.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"mongo"`
	DSN    string `env:"DSN" envDefault:"mongodb://localhost:27017"`
	Name   string `env:"NAME" envDefault:"vidtube"`
}

// JWT contains token signing parameters. Secrets have no defaults.
type JWT struct {
	AccessSecret  string        `env:"ACCESS_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TTL" envDefault:"24h"`
	RefreshSecret string        `env:"REFRESH_SECRET"`
	RefreshTTL    time.Duration `env:"REFRESH_TTL" envDefault:"240h"`
	VerifyTimeout time.Duration `env:"VERIFY_TIMEOUT" envDefault:"5s"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"vidtube-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"vidtube-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"vidtube-media"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	PublicURL string `env:"PUBLIC_URL"`
}

// Upload contains media upload parameters.
type Upload struct {
	TempDir           string        `env:"TEMP_DIR" envDefault:"./public/temp"`
	Timeout           time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxSize           int64         `env:"MAX_SIZE" envDefault:"10485760"`
	ImageMaxDimension int           `env:"IMAGE_MAX_DIMENSION" envDefault:"1920"`
}

// Cookie contains auth cookie parameters. Zero MaxAge means session cookies.
type Cookie struct {
	Secure bool `env:"SECURE" envDefault:"true"`
	MaxAge int  `env:"MAX_AGE" envDefault:"0"`
}

// RateLimit contains per-client limits for the credential endpoints.
type RateLimit struct {
	AuthPerMinute int `env:"AUTH_PER_MINUTE" envDefault:"20"`
	Burst         int `env:"BURST" envDefault:"5"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
