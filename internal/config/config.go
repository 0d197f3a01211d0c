package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`

	DBUser     string `yaml:"db_user" env-required:"true"`
	DBPassword string `yaml:"db_password" env-required:"false"`
	DBHost     string `yaml:"db_host" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env-default:"3306"`
	DBName     string `yaml:"db_name" env-required:"true"`

	BMS `yaml:"bms"`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type BMS struct {
	APIURL   string `yaml:"api_url" env-default:"https://bmsapi.breezm.com"`
	WebURL   string `yaml:"web_url" env-default:"https://bms.breezm.com"`
	OrderURL string `yaml:"order_url" env-default:"https://bms.breezm.com/order"`

	// connect.sid session cookie value; the BMS API has no token auth
	SessionCookie string `yaml:"session_cookie" env:"BMS_SESSION_COOKIE"`
	StoreID       int    `yaml:"store_id" env-default:"12"`

	SyncCron      string `yaml:"sync_cron"`
	SyncMode      string `yaml:"sync_mode" env-default:"1week"`
	PopupPassword string `yaml:"popup_password" env:"BMS_POPUP_PASSWORD"`
	ProfileDir    string `yaml:"profile_dir" env-default:"./chrome_profile"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
