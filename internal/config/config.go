package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Audit        AuditConfig
	Notification NotificationConfig
	Ledger       LedgerConfig
	Argon2       Argon2Config
	Database     DatabaseConfig
	Redis        RedisConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type LogConfig struct {
	Level string
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type AuditConfig struct {
	File       string
	SQLEnabled bool
}

type NotificationConfig struct {
	Threshold  float64
	FeedLength int64
}

type LedgerConfig struct {
	Currency string
	BIC      string
}

// Argon2Config holds the argon2id cost parameters. Memory is in KiB.
type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

var envBindings = map[string]string{
	"app.env":                    "APP_ENV",
	"log.level":                  "LOG_LEVEL",
	"http.port":                  "HTTP_PORT",
	"http.shutdown_timeout":      "HTTP_SHUTDOWN_TIMEOUT",
	"audit.file":                 "AUDIT_FILE",
	"audit.sql_enabled":          "AUDIT_SQL_ENABLED",
	"notification.threshold":     "NOTIFICATION_THRESHOLD",
	"notification.feed_length":   "NOTIFICATION_FEED_LENGTH",
	"ledger.currency":            "LEDGER_CURRENCY",
	"ledger.bic":                 "LEDGER_BIC",
	"argon2.time":                "ARGON2_TIME",
	"argon2.memory":              "ARGON2_MEMORY",
	"argon2.threads":             "ARGON2_THREADS",
	"argon2.key_length":          "ARGON2_KEY_LENGTH",
	"argon2.salt_length":         "ARGON2_SALT_LENGTH",
	"database.host":              "DATABASE_HOST",
	"database.port":              "DATABASE_PORT",
	"database.user":              "DATABASE_USER",
	"database.password":          "DATABASE_PASSWORD",
	"database.name":              "DATABASE_NAME",
	"database.ssl_mode":          "DATABASE_SSL_MODE",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",
	"redis.host":                 "REDIS_HOST",
	"redis.port":                 "REDIS_PORT",
	"redis.password":             "REDIS_PASSWORD",
	"redis.db":                   "REDIS_DB",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.shutdown_timeout", 30*time.Second)

	v.SetDefault("audit.file", "transactions_audit.log")
	v.SetDefault("audit.sql_enabled", false)

	v.SetDefault("notification.threshold", 1000.0)
	v.SetDefault("notification.feed_length", 100)

	v.SetDefault("ledger.currency", "EUR")
	v.SetDefault("ledger.bic", "LEDGERXXXXX")

	v.SetDefault("argon2.time", 1)
	v.SetDefault("argon2.memory", 64*1024)
	v.SetDefault("argon2.threads", 4)
	v.SetDefault("argon2.key_length", 32)
	v.SetDefault("argon2.salt_length", 16)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.name", "ledger")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Minute*5)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// Load reads envFile if it exists, then lets environment variables
// override it. A missing file is not an error.
func Load(envFile string) *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			logrus.WithField("component", "config").
				Debugf("Config file not found, using defaults: %v", err)
		} else {
			// dotenv keys arrive flat (HTTP_PORT -> http_port).
			for key, env := range envBindings {
				if val := v.Get(strings.ToLower(env)); val != nil {
					v.SetDefault(key, val)
				}
			}
		}
	}

	return &Config{
		App: AppConfig{
			Name: "ledger",
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
		HTTP: HTTPConfig{
			Port:            v.GetString("http.port"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Audit: AuditConfig{
			File:       v.GetString("audit.file"),
			SQLEnabled: v.GetBool("audit.sql_enabled"),
		},
		Notification: NotificationConfig{
			Threshold:  v.GetFloat64("notification.threshold"),
			FeedLength: v.GetInt64("notification.feed_length"),
		},
		Ledger: LedgerConfig{
			Currency: strings.ToUpper(v.GetString("ledger.currency")),
			BIC:      v.GetString("ledger.bic"),
		},
		Argon2: Argon2Config{
			Time:       v.GetUint32("argon2.time"),
			Memory:     v.GetUint32("argon2.memory"),
			Threads:    uint8(v.GetUint("argon2.threads")),
			KeyLength:  v.GetUint32("argon2.key_length"),
			SaltLength: v.GetInt("argon2.salt_length"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
	}
}
