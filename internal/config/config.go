package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DbDriver   string // postgres|sqlite
	DbHost     string
	DbPort     string
	DbUser     string
	DbPass     string
	DbName     string
	DbSSLMode  string
	SQLitePath string

	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	WebsiteURL    string
	PublicDir     string
	TemplatePath  string
	DefaultAuthor string

	IndexerPingURL string
	IndexerTimeout time.Duration

	ContentPolicy string // none|ugc|strict
	MaxImageWidth int
	MaxUploadMB   int

	IntegrityInterval   time.Duration
	IntegrityAutoRepair bool
}

// LoadConfig loads .env, reads the environment and applies defaults.
// It does not log so that it stays independent of the logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	tokenTTL, err := time.ParseDuration(def(os.Getenv("TOKEN_TTL"), "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	indexerTimeout, err := time.ParseDuration(def(os.Getenv("INDEXER_TIMEOUT"), "10s"))
	if err != nil {
		return nil, fmt.Errorf("INDEXER_TIMEOUT: %w", err)
	}
	integrityInterval, err := time.ParseDuration(def(os.Getenv("INTEGRITY_INTERVAL"), "1h"))
	if err != nil {
		return nil, fmt.Errorf("INTEGRITY_INTERVAL: %w", err)
	}
	maxWidth, err := strconv.Atoi(def(os.Getenv("MAX_IMAGE_WIDTH"), "1200"))
	if err != nil {
		return nil, fmt.Errorf("MAX_IMAGE_WIDTH: %w", err)
	}
	maxUpload, err := strconv.Atoi(def(os.Getenv("MAX_UPLOAD_MB"), "5"))
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_MB: %w", err)
	}

	cfg := &Config{
		Port: def(os.Getenv("PORT"), "3000"),

		DbDriver:   strings.ToLower(def(os.Getenv("DB_DRIVER"), "postgres")),
		DbHost:     os.Getenv("DB_HOST"),
		DbPort:     def(os.Getenv("DB_PORT"), "5432"),
		DbUser:     os.Getenv("DB_USER"),
		DbPass:     os.Getenv("DB_PASSWORD"),
		DbName:     os.Getenv("DB_NAME"),
		DbSSLMode:  def(os.Getenv("DB_SSLMODE"), "disable"),
		SQLitePath: def(os.Getenv("SQLITE_PATH"), "data/pawstails.db"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      tokenTTL,
		AdminUsername: def(os.Getenv("ADMIN_USERNAME"), "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		WebsiteURL:    strings.TrimRight(def(os.Getenv("WEBSITE_URL"), "http://localhost:3000"), "/"),
		PublicDir:     def(os.Getenv("PUBLIC_DIR"), "public"),
		TemplatePath:  def(os.Getenv("TEMPLATE_PATH"), "templates/article.html"),
		DefaultAuthor: def(os.Getenv("DEFAULT_AUTHOR"), "Paws & Tails"),

		IndexerPingURL: def(os.Getenv("INDEXER_PING_URL"), "https://www.google.com/ping?sitemap=%s"),
		IndexerTimeout: indexerTimeout,

		ContentPolicy: strings.ToLower(def(os.Getenv("CONTENT_POLICY"), "none")),
		MaxImageWidth: maxWidth,
		MaxUploadMB:   maxUpload,

		IntegrityInterval:   integrityInterval,
		IntegrityAutoRepair: strings.EqualFold(os.Getenv("INTEGRITY_AUTO_REPAIR"), "true"),
	}

	return cfg, nil
}

// Validate returns warnings and a fatal error when the config is unusable.
func (c *Config) Validate() (warnings []string, err error) {
	switch c.DbDriver {
	case "postgres":
		if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
			return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is empty")
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", c.DbDriver)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if c.AdminPassword == "" {
		warnings = append(warnings, "ADMIN_PASSWORD is empty, admin login is disabled")
	}

	switch c.ContentPolicy {
	case "none", "ugc", "strict":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown CONTENT_POLICY %q, using none", c.ContentPolicy))
	}

	if c.MaxImageWidth <= 0 {
		warnings = append(warnings, "MAX_IMAGE_WIDTH is not positive, images will not be resized")
	}
	if c.MaxUploadMB <= 0 {
		warnings = append(warnings, "MAX_UPLOAD_MB is not positive, using 5")
		c.MaxUploadMB = 5
	}

	return warnings, nil
}

// GetDSN is the full Postgres DSN including the password.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe is the DSN without the password, for logs.
func (c *Config) GetDSNSafe() string {
	if c.DbDriver == "sqlite" {
		return "sqlite://" + c.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
