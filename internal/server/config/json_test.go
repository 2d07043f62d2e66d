package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestParseJson_NoFlagLeavesConfigUntouched(t *testing.T) {
	withArgs(t)

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
}

func TestParseJson_OverlaysFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	body := `{
		"endpoint_addr_http": ":7070",
		"database_dsn": "postgres://u:p@db:5432/auth?sslmode=disable",
		"redis_addr": "redis:6379",
		"redis_db": 2,
		"secret_key": "json-secret",
		"access_token_validity_duration": "10m",
		"refresh_token_validity_duration": "48h",
		"session_validity_duration": "20m",
		"bcrypt_cost": 12
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	withArgs(t, "-c", path)

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":7070")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@db:5432/auth?sslmode=disable")
	assert.Equal(t, c.RedisAddr, "redis:6379")
	assert.Equal(t, c.RedisDB, 2)
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.AccessTokenValidityDuration, 10*time.Minute)
	assert.Equal(t, c.RefreshTokenValidityDuration, 48*time.Hour)
	assert.Equal(t, c.SessionValidityDuration, 20*time.Minute)
	assert.Equal(t, c.BcryptCost, 12)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	withArgs(t, "-c", "/no/such/file.json")

	var c Config
	c.LoadDefaults()

	assert.Panics(t, func() { parseJson(&c) })
}

func TestParseJson_InvalidJsonPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	withArgs(t, "-c", path)

	var c Config
	c.LoadDefaults()

	assert.Panics(t, func() { parseJson(&c) })
}
