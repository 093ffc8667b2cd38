package config

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env:"TELEGRAM_ADMIN_ID" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"SmartShopSupportBot"`
		Enabled bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"smartshop"`
	} `yaml:"mongo"`
	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"127.0.0.1:6379"`
		Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
		DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
		CartTTL  int    `yaml:"cart_ttl_hours" env-default:"72"`
	} `yaml:"redis"`
	Mail struct {
		Server   string `yaml:"server" env:"MAIL_SERVER" env-default:"smtp.gmail.com"`
		Port     int    `yaml:"port" env:"MAIL_PORT" env-default:"587"`
		UseTLS   bool   `yaml:"use_tls" env:"MAIL_USE_TLS" env-default:"true"`
		Username string `yaml:"username" env:"MAIL_USERNAME" env-default:""`
		Password string `yaml:"password" env:"MAIL_PASSWORD" env-default:""`
		Support  string `yaml:"support" env:"MAIL_SUPPORT" env-default:""`
	} `yaml:"mail"`
	Auth struct {
		SecretKey   string `yaml:"secret_key" env:"SECRET_KEY" env-default:""`
		BaseURL     string `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:9100"`
		TokenTTL    int    `yaml:"token_ttl_minutes" env-default:"60"`
		SessionTTL  int    `yaml:"session_ttl_hours" env-default:"24"`
		SupportKey  string `yaml:"support_key" env:"SUPPORT_API_KEY" env-default:""`
		ImageURLTTL int    `yaml:"image_url_ttl_minutes" env-default:"60"`
	} `yaml:"auth"`
	Upload struct {
		MaxSize           int64  `yaml:"max_size" env-default:"16777216"`
		AllowedExtensions string `yaml:"allowed_extensions" env:"ALLOWED_EXTENSIONS" env-default:"png,jpg,jpeg,gif"`
	} `yaml:"upload"`
	Chatbot struct {
		SessionIdleMinutes int `yaml:"session_idle_minutes" env-default:"30"`
		RateLimit          int `yaml:"rate_limit" env-default:"5"`
		RateBurst          int `yaml:"rate_burst" env-default:"10"`
	} `yaml:"chatbot"`
	Orders struct {
		StrictTransitions bool `yaml:"strict_transitions" env:"ORDERS_STRICT_TRANSITIONS" env-default:"false"`
	} `yaml:"orders"`
	Listen struct {
		BindIP         string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port           string `yaml:"port" env:"PORT" env-default:"9100"`
		AllowedOrigins string `yaml:"allowed_origins" env-default:"*"`
	} `yaml:"listen"`
}

// AllowedExtensions returns the lower-cased upload extensions without dots.
func (c *Config) AllowedExtensions() []string {
	var exts []string
	for _, ext := range strings.Split(c.Upload.AllowedExtensions, ",") {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.Listen.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		// .env is optional, real environment always wins
		_ = godotenv.Load()

		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads the config without the process-wide cache.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return conf, nil
}
