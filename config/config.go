package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full environment surface, loaded once in main.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":5300"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Public base URL used in CLI responses and the prompt artifact.
	PublicBaseURL  string `env:"PUBLIC_BASE_URL" envDefault:"https://shiphaus.org"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	// External identity provider (session resolution only; login lives there).
	AuthBaseURL string `env:"AUTH_BASE_URL,required"`

	// Blob store (R2) credentials.
	CloudflareAccountID string `env:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID       string `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret   string `env:"R2_ACCESS_KEY_SECRET"`
	R2Bucket            string `env:"R2_BUCKET_NAME"`
	CDNBaseURL          string `env:"CDN_BASE_URL"`
}

// Load reads .env (when present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
