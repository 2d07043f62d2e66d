package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/authkit/internal/flagx"
	"github.com/dmitrijs2005/authkit/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Duration fields accept both strings ("15m") and
// integer nanoseconds; after unmarshalling the values are copied into
// the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	RedisAddr                    string         `json:"redis_addr"`
	RedisPassword                string         `json:"redis_password"`
	RedisDB                      int            `json:"redis_db"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	SessionValidityDuration      timex.Duration `json:"session_validity_duration"`
	BcryptCost                   int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named,
// nothing is loaded. An unreadable or invalid file panics: a config file
// that was explicitly requested must not be half-applied.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.RedisPassword = c.RedisPassword
	config.RedisDB = c.RedisDB
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
}
