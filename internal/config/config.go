package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv            string        `mapstructure:"APP_ENV"`
	Port              string        `mapstructure:"PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	RedisURL          string        `mapstructure:"REDIS_URL"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	AccessTokenSecret string        `mapstructure:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiry time.Duration `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	CORSOrigin        string        `mapstructure:"CORS_ORIGIN"`
	ClientURL         string        `mapstructure:"CLIENT_URL"`
	GeoIPDBPath       string        `mapstructure:"GEOIP_DB_PATH"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int           `mapstructure:"RATE_LIMIT_BURST"`
	JSONPayloadLimit  int64         `mapstructure:"JSON_PAYLOAD_LIMIT"`
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() (config Config, err error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "4000")
	v.SetDefault("DATABASE_URL", "sqlite://codebliss.db")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("ACCESS_TOKEN_SECRET", "change-me-in-production")
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "24h")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("GEOIP_DB_PATH", "")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("JSON_PAYLOAD_LIMIT", 16<<10)

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
