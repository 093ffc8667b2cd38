package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
upload:
  allowed_extensions: " PNG, .jpg,,gif "
chatbot:
  session_idle_minutes: 15
listen:
  allowed_origins: "https://shop.example.com, http://localhost:3000"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9200")

	conf, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 15, conf.Chatbot.SessionIdleMinutes)
	assert.Equal(t, 72, conf.Redis.CartTTL)
	assert.Equal(t, int64(16777216), conf.Upload.MaxSize)
	assert.Equal(t, "9200", conf.Listen.Port)
	assert.Equal(t, []string{"png", "jpg", "gif"}, conf.AllowedExtensions())
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:3000"}, conf.Origins())
}

func TestAllowedExtensions(t *testing.T) {
	conf := &Config{}
	conf.Upload.AllowedExtensions = "png, .jpg, .JPEG ,gif"
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif"}, conf.AllowedExtensions())

	conf.Upload.AllowedExtensions = " , "
	assert.Empty(t, conf.AllowedExtensions())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
