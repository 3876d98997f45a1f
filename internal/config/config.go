package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Upstream struct {
	BaseURL string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-default:"http://localhost:8003"`
	Timeout time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"10s"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"720h"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	ProductTTL time.Duration `yaml:"product_ttl" env:"CACHE_PRODUCT_TTL" env-default:"60s"`
}

type Razorpay struct {
	KeyID     string `yaml:"RAZORPAY_KEY_ID" env:"RAZORPAY_KEY_ID" env-default:""`
	KeySecret string `yaml:"RAZORPAY_KEY_SECRET" env:"RAZORPAY_KEY_SECRET" env-default:""`
	BaseURL   string `yaml:"RAZORPAY_BASE_URL" env:"RAZORPAY_BASE_URL" env-default:"https://api.razorpay.com"`
}

type Stripe struct {
	APIKey         string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	PublishableKey string `yaml:"STRIPE_PUBLISHABLE_KEY" env:"STRIPE_PUBLISHABLE_KEY" env-default:""`
}

type Payment struct {
	Gateway    string `yaml:"gateway" env:"PAYMENT_GATEWAY" env-default:"razorpay"`
	Method     string `yaml:"method" env:"PAYMENT_METHOD" env-default:"Razorpay"`
	Currency   string `yaml:"currency" env:"PAYMENT_CURRENCY" env-default:"INR"`
	StoreName  string `yaml:"store_name" env:"STORE_NAME" env-default:"QuickCart Store"`
	ThemeColor string `yaml:"theme_color" env:"PAYMENT_THEME_COLOR" env-default:"#dc2626"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@quickcart.example"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"QuickCart Store"`
}

type Auth struct {
	// Mode selects the Authenticator: "mock" issues unverified sessions,
	// "jwt" requires registered credentials.
	Mode   string `yaml:"mode" env:"AUTH_MODE" env-default:"mock"`
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-default:""`
}

type Telemetry struct {
	Enabled bool `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Upstream     Upstream      `yaml:"upstream"`
	RedisConnect RedisConnect  `yaml:"redis"`
	RateConfig   RateConfig    `yaml:"rateConfig"`
	Session      SessionConfig `yaml:"session"`
	Cache        CacheConfig   `yaml:"cache"`
	Razorpay     Razorpay      `yaml:"razorpay"`
	Stripe       Stripe        `yaml:"stripe"`
	Payment      Payment       `yaml:"payment"`
	SendGrid     SendGrid      `yaml:"sendgrid"`
	Auth         Auth          `yaml:"auth"`
	Telemetry    Telemetry     `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags
	}

	var cfg Config

	if configPath == "" {
		// env-only startup
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read environment config: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (r *RedisConnect) GetDSN() string {
	if r.Username != "" || r.Password != "" {
		return fmt.Sprintf("redis://%s:%s@%s/%d", r.Username, r.Password, r.Addr, r.DB)
	}

	return fmt.Sprintf("redis://%s/%d", r.Addr, r.DB)
}
