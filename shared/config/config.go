package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	defaultNotifierWindow = 5 * time.Second
	defaultAPITimeout     = 10 * time.Second
	defaultSessionTTL     = 30 * 24 * time.Hour
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel string   `yaml:"log_level"`
	LogJSON  bool     `yaml:"log_json"`
	Frontend Frontend `yaml:"frontend"`
	Backend  Backend  `yaml:"backend"`
}

type Frontend struct {
	Port           string        `yaml:"port"`
	APIBaseURL     string        `yaml:"api_base_url"`
	APITimeout     time.Duration `yaml:"api_timeout"`
	NotifierWindow time.Duration `yaml:"notifier_window"` // how long a status message stays visible
	SessionTTL     time.Duration `yaml:"session_ttl"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	MutationsPerIP float64       `yaml:"mutations_per_ip"` // requests per second, 0 disables
}

type Backend struct {
	Port           string   `yaml:"port"`
	Storage        string   `yaml:"storage"` // memory or postgres
	FrontendURL    string   `yaml:"frontend_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MutationsPerIP float64  `yaml:"mutations_per_ip"`
	SecureCookies  bool     `yaml:"secure_cookies"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN is the URL form accepted by both lib/pq and golang-migrate.
func (p Pg) DSN() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Dbname,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

type Private struct {
	Pg            Pg     `yaml:"pg"`
	SessionSecret string `yaml:"session_secret"`
}

func mustLoadPath(configPath string, output interface{}, required bool) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if !required {
			return
		}
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml (required) and private.yaml (optional) from
// configFolder, then applies .env and environment overrides. Panics on any
// invalid value.
func MustLoad(configFolder string) *Config {
	var cfg Config
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg.Public, true)
	mustLoadPath(path.Join(configFolder, "private.yaml"), &cfg.Private, false)

	// .env is optional when variables come from the environment (docker, CI).
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return &cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.Public.Frontend.APIBaseURL = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.Public.Backend.FrontendURL = v
	}
	if v := os.Getenv("STORAGE"); v != "" {
		c.Public.Backend.Storage = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Private.SessionSecret = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Private.Pg.Password = v
	}
}

func (c *Config) validate() error {
	fe := &c.Public.Frontend
	if fe.Port == "" {
		fe.Port = "8081"
	}
	if fe.APITimeout == 0 {
		fe.APITimeout = defaultAPITimeout
	}
	if fe.NotifierWindow == 0 {
		fe.NotifierWindow = defaultNotifierWindow
	}
	if fe.SessionTTL == 0 {
		fe.SessionTTL = defaultSessionTTL
	}
	if strings.TrimSpace(fe.APIBaseURL) == "" {
		return fmt.Errorf("config: frontend.api_base_url is required")
	}
	if fe.NotifierWindow < 0 || fe.APITimeout < 0 || fe.MutationsPerIP < 0 {
		return fmt.Errorf("config: frontend durations and rates must not be negative")
	}

	be := &c.Public.Backend
	if be.Port == "" {
		be.Port = "8080"
	}
	if be.Storage == "" {
		be.Storage = StorageMemory
	}
	if be.FrontendURL == "" {
		be.FrontendURL = "http://localhost:" + fe.Port + "/"
	}
	if len(be.AllowedOrigins) == 0 {
		u, err := url.Parse(be.FrontendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: backend.frontend_url must be an absolute URL")
		}
		be.AllowedOrigins = []string{u.Scheme + "://" + u.Host}
	}
	if be.MutationsPerIP < 0 {
		return fmt.Errorf("config: backend.mutations_per_ip must not be negative")
	}
	switch be.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "" {
			return fmt.Errorf("config: pg.host and pg.dbname are required for postgres storage")
		}
	default:
		return fmt.Errorf("config: unknown backend.storage %q", be.Storage)
	}
	return nil
}
