package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	App struct {
		BaseURL  string `yaml:"base_url"`  // used when building password-reset links
		MapToken string `yaml:"map_token"` // mapping-service access token, handed to the frontend
	} `yaml:"app"`

	Redis struct {
		Addr string `yaml:"addr"` // empty disables the response cache
	} `yaml:"redis"`
}

var AppConfig *Config

// LoadConfig populates AppConfig. When DATABASE_URL is set the whole
// configuration comes from environment variables (container and test
// deployments); otherwise it is read from the yaml file at CONFIG_PATH.
func LoadConfig() {
	var cfg Config

	// .env is optional; system environment wins.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL, _ = strconv.Atoi(os.Getenv("JWT_TTL"))
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM_EMAIL")
	cfg.Email.FromName = os.Getenv("SMTP_FROM_NAME")

	cfg.App.BaseURL = os.Getenv("BASE_URL")
	cfg.App.MapToken = os.Getenv("MAP_TOKEN")
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// MailConfigured reports whether the mail transport has enough settings to
// attempt delivery. Absence is a distinct configuration error, not a
// generic failure, so callers check this before dialing.
func (c *Config) MailConfigured() bool {
	return c.Email.SMTPHost != "" && c.Email.SMTPPort != 0 && c.Email.FromEmail != ""
}
