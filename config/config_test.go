package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_ALLOWED_IPS", "")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("UPLOAD_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Upload.Backend)
	assert.Equal(t, "img/upload", cfg.Upload.ImageDir)
	assert.Equal(t, "pdf", cfg.Upload.PDFDir)
	assert.Empty(t, cfg.Admin.AllowedIPs)
	assert.Empty(t, cfg.Admin.TrustedProxies)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADMIN_ALLOWED_IPS", " 10.0.0.1, 192.168.1.5 ,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("PUBLIC_BASE_URL", "https://example.com/")
	t.Setenv("REDIS_HOST", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.1", "192.168.1.5"}, cfg.Admin.AllowedIPs)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Admin.TrustedProxies)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "https://example.com", cfg.Server.PublicBaseURL)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	t.Setenv("UPLOAD_BACKEND", "s3")
	t.Setenv("AWS_S3_BUCKET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseDuration_Invalid(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
}
