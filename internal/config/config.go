package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del proceso.
// Se llena desde env vars y (opcionalmente) un archivo .env.
type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	// Storage: si viene DB_DSN usa Postgres; si viene MONGO_URI usa Mongo;
	// si no viene ninguno, repos in-memory (modo dev).
	DBDSN    string `mapstructure:"DB_DSN"`
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	// Cache opcional del catálogo (medicamentos/servicios).
	RedisURL string `mapstructure:"REDIS_URL"`

	// Si viene JWT_SECRET se activa el verifier HS256; si no, modo dev
	// (X-Debug-User-ID / X-Debug-Role).
	JWTSecret string `mapstructure:"JWT_SECRET"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "vet-clinic")
	v.SetDefault("MONGO_DB", "vetclinic")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	for _, key := range []string{
		"PORT", "ENV", "APP_NAME",
		"DB_DSN", "MONGO_URI", "MONGO_DB",
		"REDIS_URL", "JWT_SECRET",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		_ = v.BindEnv(key)
	}

	// .env es opcional; si no existe seguimos con env vars puras.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}
