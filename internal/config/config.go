package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// SessionConfig controls the signed session cookie and the server-side
// session rows it points at.
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
	// TTL is the normal session lifetime; RememberTTL applies when the
	// caller asked to be remembered (30 days).
	TTL         time.Duration `mapstructure:"ttl"`
	RememberTTL time.Duration `mapstructure:"remember_ttl"`
	CookieName  string        `mapstructure:"cookie_name"`
}

// AuthConfig carries login policy knobs.
type AuthConfig struct {
	// TrainerCode is the login code issued to new trainers. It is
	// stored bcrypt-hashed on the trainer row at provision time.
	TrainerCode string `mapstructure:"trainer_code"`
	// DefaultTrainerPhone identifies the bootstrap trainer used by
	// student endpoints not yet migrated to per-student tenancy.
	DefaultTrainerPhone string `mapstructure:"default_trainer_phone"`
	MaxLoginAttempts    int    `mapstructure:"max_login_attempts"`
	LockoutMinutes      int    `mapstructure:"lockout_minutes"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars, e.g. session.secret -> SESSION_SECRET
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.url", "postgres://localhost:5432/trainer_app")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("session.remember_ttl", "720h") // 30 days
	viper.SetDefault("session.cookie_name", "ta_session")
	viper.SetDefault("auth.max_login_attempts", 5)
	viper.SetDefault("auth.lockout_minutes", 15)

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; env vars and defaults may be enough.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
