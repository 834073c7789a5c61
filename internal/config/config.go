package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Addr           string
	DBPath         string
	Env            string
	SessionTTL     time.Duration
	CookieHashKey  string
	CookieBlockKey string
	CORSOrigins    []string
	BcryptCost     int
	RateLimits     RateLimits
}

type RateLimits struct {
	LoginPerMinute int
	WritePerMinute int
}

// Development reports whether the server runs with development logging
// and non-secure cookies.
func (c Config) Development() bool {
	return c.Env == "development"
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() Config {
	_ = godotenv.Load()

	addr := envString("STANCE_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	cfg := Config{
		Addr:           addr,
		DBPath:         envString("STANCE_DB", "stance.db"),
		Env:            envString("STANCE_ENV", "production"),
		SessionTTL:     envDuration("STANCE_SESSION_TTL", 7*24*time.Hour),
		CookieHashKey:  envString("STANCE_COOKIE_HASH_KEY", ""),
		CookieBlockKey: envString("STANCE_COOKIE_BLOCK_KEY", ""),
		CORSOrigins:    envList("STANCE_CORS_ORIGINS"),
		BcryptCost:     envInt("STANCE_BCRYPT_COST", bcrypt.DefaultCost),
		RateLimits: RateLimits{
			LoginPerMinute: envInt("STANCE_RL_LOGIN_PER_MIN", 20),
			WritePerMinute: envInt("STANCE_RL_WRITE_PER_MIN", 120),
		},
	}

	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
