package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current value untouched.
//
// Supported variables:
//
//	HTTP_ADDR          bind address
//	DATABASE_DSN       PostgreSQL DSN
//	REDIS_ADDR         Redis host:port
//	REDIS_PASSWORD     Redis password
//	REDIS_DB           Redis database number
//	JWT_SECRET         HMAC signing secret
//	ACCESS_TOKEN_TTL   access token lifetime (Go duration, e.g. "15m")
//	REFRESH_TOKEN_TTL  refresh token lifetime
//	SESSION_TTL        session lifetime
//	BCRYPT_COST        bcrypt work factor
func parseEnv(config *Config) {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("HTTP_ADDR", &config.EndpointAddrHTTP)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("REDIS_ADDR", &config.RedisAddr)
	setString("REDIS_PASSWORD", &config.RedisPassword)
	setInt("REDIS_DB", &config.RedisDB)
	setString("JWT_SECRET", &config.SecretKey)
	setDuration("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	setDuration("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	setDuration("SESSION_TTL", &config.SessionValidityDuration)
	setInt("BCRYPT_COST", &config.BcryptCost)
}
