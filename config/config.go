package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost         string        `mapstructure:"DB_HOST"`
	DBPort         string        `mapstructure:"DB_PORT"`
	DBUser         string        `mapstructure:"DB_USER"`
	DBPassword     string        `mapstructure:"DB_PASSWORD"`
	DBName         string        `mapstructure:"DB_NAME"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	HTTPPort       string        `mapstructure:"HTTP_PORT"`
	GRPCPort       string        `mapstructure:"GRPC_PORT"`
	AccessSecret   string        `mapstructure:"ACCESS_SECRET"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	LogFile        string        `mapstructure:"LOG_FILE"`
	TaxRate        string        `mapstructure:"TAX_RATE"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":9090")
	v.SetDefault("LOG_FILE", "./logs/app.log")
	v.SetDefault("TAX_RATE", "0.15")
	v.SetDefault("CACHE_TTL", "10m")

	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, so bind everything explicitly.
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_ADDR", "HTTP_PORT", "GRPC_PORT", "ACCESS_SECRET",
		"ALLOWED_ORIGINS", "LOG_FILE", "TAX_RATE", "CACHE_TTL",
	} {
		_ = v.BindEnv(key)
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// no app.env, env vars only
	}

	err = v.Unmarshal(&config)
	return
}

func (c Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}
