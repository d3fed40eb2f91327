package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	if private != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	}
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_BASE_URL", "FRONTEND_URL", "STORAGE", "SESSION_SECRET", "PG_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func TestMustLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "frontend:\n  api_base_url: http://api:8080\n", "")

	cfg := MustLoad(dir)

	assert.Equal(t, "8081", cfg.Public.Frontend.Port)
	assert.Equal(t, 5*time.Second, cfg.Public.Frontend.NotifierWindow)
	assert.Equal(t, 10*time.Second, cfg.Public.Frontend.APITimeout)
	assert.Equal(t, "8080", cfg.Public.Backend.Port)
	assert.Equal(t, StorageMemory, cfg.Public.Backend.Storage)
	assert.Equal(t, "http://localhost:8081/", cfg.Public.Backend.FrontendURL)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.Public.Backend.AllowedOrigins)
}

func TestMustLoad_FullConfig(t *testing.T) {
	clearEnv(t)
	public := `
log_level: debug
log_json: true
frontend:
  port: "9000"
  api_base_url: http://localhost:8080
  api_timeout: 3s
  notifier_window: 2500ms
  secure_cookies: true
  mutations_per_ip: 2
backend:
  storage: postgres
  frontend_url: http://localhost:9000
  allowed_origins: ["http://localhost:9000"]
`
	private := `
session_secret: s3cret
pg:
  host: db
  port: 5432
  user: app
  password: pw
  dbname: activities
`
	cfg := MustLoad(writeConfig(t, public, private))

	assert.Equal(t, "debug", cfg.Public.LogLevel)
	assert.True(t, cfg.Public.LogJSON)
	assert.Equal(t, "9000", cfg.Public.Frontend.Port)
	assert.Equal(t, 3*time.Second, cfg.Public.Frontend.APITimeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.Public.Frontend.NotifierWindow)
	assert.Equal(t, 2.0, cfg.Public.Frontend.MutationsPerIP)
	assert.Equal(t, []string{"http://localhost:9000"}, cfg.Public.Backend.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Private.SessionSecret)
	assert.Equal(t, "postgres://app:pw@db:5432/activities?sslmode=disable", cfg.Private.Pg.DSN())
}

func TestMustLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "http://override:1234")
	t.Setenv("SESSION_SECRET", "from-env")

	cfg := MustLoad(writeConfig(t, "frontend:\n  api_base_url: http://api:8080\n", "session_secret: from-file\n"))

	assert.Equal(t, "http://override:1234", cfg.Public.Frontend.APIBaseURL)
	assert.Equal(t, "from-env", cfg.Private.SessionSecret)
}

func TestMustLoad_Panics(t *testing.T) {
	tests := []struct {
		name   string
		public string
	}{
		{"missing api base url", "log_level: info\n"},
		{"unknown storage", "frontend:\n  api_base_url: http://api\nbackend:\n  storage: sqlite\n"},
		{"postgres without pg settings", "frontend:\n  api_base_url: http://api\nbackend:\n  storage: postgres\n"},
		{"negative window", "frontend:\n  api_base_url: http://api\n  notifier_window: -1s\n"},
		{"relative frontend url", "frontend:\n  api_base_url: http://api\nbackend:\n  frontend_url: /static/index.html\n"},
		{"unknown field", "frontend:\n  api_base_url: http://api\n  colour: blue\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := writeConfig(t, tt.public, "")
			assert.Panics(t, func() { MustLoad(dir) })
		})
	}
}

func TestMustLoad_MissingPublicFile(t *testing.T) {
	clearEnv(t)
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}

func TestPgDSNEscapesCredentials(t *testing.T) {
	pg := Pg{Host: "db", Port: 5432, User: "app user", Password: "p@ss/w#rd", Dbname: "activities"}

	u, err := url.Parse(pg.DSN())
	require.NoError(t, err)

	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "app user", u.User.Username())
	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss/w#rd", password)
	assert.Equal(t, "/activities", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}
