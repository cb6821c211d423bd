package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "local", cfg.Media.Backend)
	assert.Equal(t, int64(50<<20), cfg.Media.MaxUploadBytes)
	assert.Equal(t, 120*time.Second, cfg.Cache.VisibilityTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SHOPIFY_APP_URL", "https://reviews.example.com/")
	t.Setenv("SHOPIFY_API_SECRET", "shh")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://reviews.example.com", cfg.Media.PublicURL)
	assert.Equal(t, "shh", cfg.Shopify.APISecret)
}

func TestLoad_InvalidDuration(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "SERVER_READ_TIMEOUT")
}

func TestLoad_CloudinaryRequiresURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("MEDIA_BACKEND", "cloudinary")

	_, err := Load()
	assert.ErrorContains(t, err, "CLOUDINARY_URL")
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDSN())
}
