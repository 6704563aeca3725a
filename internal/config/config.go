package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Lockout   LockoutConfig
	RateLimit RateLimitConfig
	Secure    SecureConfig
	Log       LogConfig
	// SitesRequireAdmin restricts site writes to admins. Off keeps them open to any authenticated user.
	SitesRequireAdmin bool
}

type ServerConfig struct {
	Port           string
	APIVersion     string
	CORSOrigins    []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ShutdownPeriod time.Duration
}

// DatabaseConfig with an empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type PasswordConfig struct {
	Hasher     string // bcrypt or argon2id
	BcryptCost int
	Argon2     Argon2Config
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type LockoutConfig struct {
	MaxAttempts int
	Cooldown    time.Duration
}

// RateLimitConfig holds ulule/limiter formatted rates ("20-M"). Empty disables.
type RateLimitConfig struct {
	PerIP   string
	PerUser string
}

type SecureConfig struct {
	IsDevelopment bool
}

type LogConfig struct {
	Level  string
	Format string // console or json
}

// Load reads configuration from the environment and an optional CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read CONFIG_FILE %s: %w", p, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			APIVersion:     v.GetString("API_VERSION"),
			CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownPeriod: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Password: PasswordConfig{
			Hasher:     strings.ToLower(v.GetString("PASSWORD_HASHER")),
			BcryptCost: v.GetInt("BCRYPT_COST"),
			Argon2: Argon2Config{
				Memory:      v.GetUint32("ARGON2_MEMORY"),
				Iterations:  v.GetUint32("ARGON2_ITERATIONS"),
				Parallelism: uint8(v.GetUint("ARGON2_PARALLELISM")),
			},
		},
		Lockout: LockoutConfig{
			MaxAttempts: v.GetInt("LOGIN_MAX_ATTEMPTS"),
			Cooldown:    v.GetDuration("LOGIN_COOLDOWN"),
		},
		RateLimit: RateLimitConfig{
			PerIP:   v.GetString("RATE_LIMIT_IP"),
			PerUser: v.GetString("RATE_LIMIT_USER"),
		},
		Secure: SecureConfig{
			IsDevelopment: v.GetBool("SECURE_DEV"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		SitesRequireAdmin: v.GetBool("SITES_REQUIRE_ADMIN"),
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = 168 * time.Hour
	}
	if cfg.Password.Argon2.Memory == 0 {
		cfg.Password.Argon2.Memory = 64 * 1024
	}
	if cfg.Password.Argon2.Iterations == 0 {
		cfg.Password.Argon2.Iterations = 3
	}
	if cfg.Password.Argon2.Parallelism == 0 {
		cfg.Password.Argon2.Parallelism = 2
	}
	return cfg, nil
}

// UseMemoryStore reports whether persistence falls back to the in-process store.
func (c *Config) UseMemoryStore() bool {
	return c.Database.URL == ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_VERSION", "1")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("HTTP_READ_TIMEOUT", "10s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("PASSWORD_HASHER", "bcrypt")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_COOLDOWN", "15m")
	v.SetDefault("RATE_LIMIT_IP", "20-M")
	v.SetDefault("RATE_LIMIT_USER", "300-M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
