package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerPort            int
	Environment           string
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerShutdownTimeout time.Duration

	// Key storage configuration
	PrivateKeyPath string
	PublicKeyPath  string
	DefaultKeySize int

	// Token defaults
	JWTDefaultExpiresIn domain.ExpiresIn
	JWTDefaultIssuer    string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		// Server defaults
		ServerPort:            3000,
		Environment:           "production",
		ServerReadTimeout:     10 * time.Second,
		ServerWriteTimeout:    10 * time.Second,
		ServerShutdownTimeout: 30 * time.Second,

		// Key storage defaults
		PrivateKeyPath: "keys/private.pem",
		PublicKeyPath:  "keys/public.pem",
		DefaultKeySize: domain.DefaultKeySize,

		// Token defaults
		JWTDefaultExpiresIn: domain.DefaultExpiresIn,
		JWTDefaultIssuer:    domain.DefaultIssuer,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env from project root
	_ = godotenv.Load()

	cfg := NewConfig()

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(cfg.ServerPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	keySize, err := strconv.Atoi(getEnv("DEFAULT_KEY_SIZE", strconv.Itoa(cfg.DefaultKeySize)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_KEY_SIZE: %w", err)
	}
	if keySize < domain.MinKeySize || keySize > domain.MaxKeySize {
		return nil, fmt.Errorf("invalid DEFAULT_KEY_SIZE: %d is outside %d..%d", keySize, domain.MinKeySize, domain.MaxKeySize)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", cfg.ServerReadTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", cfg.ServerWriteTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ServerShutdownTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	expiresIn := domain.ExpiresIn(getEnv("JWT_DEFAULT_EXPIRES_IN", string(cfg.JWTDefaultExpiresIn)))
	if _, err := expiresIn.Duration(); err != nil {
		return nil, fmt.Errorf("invalid JWT_DEFAULT_EXPIRES_IN: %w", err)
	}

	cfg.ServerPort = port
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.ServerReadTimeout = readTimeout
	cfg.ServerWriteTimeout = writeTimeout
	cfg.ServerShutdownTimeout = shutdownTimeout
	cfg.PrivateKeyPath = getEnv("PRIVATE_KEY_PATH", cfg.PrivateKeyPath)
	cfg.PublicKeyPath = getEnv("PUBLIC_KEY_PATH", cfg.PublicKeyPath)
	cfg.DefaultKeySize = keySize
	cfg.JWTDefaultExpiresIn = expiresIn
	cfg.JWTDefaultIssuer = getEnv("JWT_DEFAULT_ISSUER", cfg.JWTDefaultIssuer)

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
