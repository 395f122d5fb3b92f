package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	Database Database

	Admin Admin

	JWTSecret []byte
	JWTTTL    time.Duration

	StorageTimeout time.Duration

	CORSOrigins []string

	KafkaBrokers []string
	KafkaTopic   string

	RedisURL string
	CacheTTL time.Duration

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

type Admin struct {
	Username string
	Password string
}

type Database struct {
	URL         string
	Env         string
	AutoMigrate bool
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "portfolio"),
		ServerPort:  EnvIntDefault("PORT", 4000),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		Database: Database{
			URL:         databaseURL(),
			Env:         EnvDefault("NODE_ENV", "local"),
			AutoMigrate: EnvBoolDefault("DB_AUTO_MIGRATE", true),
		},

		Admin: Admin{
			Username: os.Getenv("USER_NAME"),
			Password: os.Getenv("USER_PASSWORD"),
		},

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:    EnvDurationDefault("JWT_TTL", time.Hour),

		StorageTimeout: EnvDurationDefault("STORAGE_TIMEOUT", 5*time.Second),

		CORSOrigins: csvDefault(os.Getenv("CORS_ORIGINS"), []string{"*"}),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "portfolio_events"),

		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: EnvDurationDefault("CACHE_TTL", 5*time.Minute),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "projects"),
	}
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Admin.Username == "" {
		errs = append(errs, missing("USER_NAME"))
	}
	if c.Admin.Password == "" {
		errs = append(errs, missing("USER_PASSWORD"))
	}
	if len(c.JWTSecret) == 0 {
		errs = append(errs, missing("JWT_SECRET"))
	}
	if c.Database.URL == "" {
		errs = append(errs, missing("DATABASE_URL or "+envPrefix(c.Database.Env)+"_DB_*"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive"))
	}
	if c.StorageTimeout <= 0 {
		errs = append(errs, fmt.Errorf("STORAGE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func missing(name string) error {
	return fmt.Errorf("missing required env %s", name)
}

// databaseURL prefers DATABASE_URL, otherwise builds a DSN from the
// LOCAL_DB_*, REMOTE_DB_* or CLOUD_DB_* set selected by NODE_ENV.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	env := EnvDefault("NODE_ENV", "local")
	return BuildDSN(env, func(key string) string {
		return os.Getenv(envPrefix(env) + "_DB_" + key)
	})
}

func envPrefix(env string) string {
	switch strings.ToLower(env) {
	case "remote":
		return "REMOTE"
	case "cloud":
		return "CLOUD"
	default:
		return "LOCAL"
	}
}

// BuildDSN returns an empty string when host, user or database name are unset.
func BuildDSN(env string, get func(key string) string) string {
	host, user, name := get("HOST"), get("USER"), get("NAME")
	if host == "" || user == "" || name == "" {
		return ""
	}
	port := get("PORT")
	if port == "" {
		port = "5432"
	}

	sslmode := "require"
	if envPrefix(env) == "LOCAL" {
		sslmode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, get("PASSWORD")),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=" + sslmode,
	}
	return u.String()
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func csvDefault(v string, def []string) []string {
	if out := CSV(v); len(out) > 0 {
		return out
	}
	return def
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
