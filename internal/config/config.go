package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Upload  UploadConfig  `yaml:"upload"`
	Static  StaticConfig  `yaml:"static"`
	Session SessionConfig `yaml:"session"`
}

type HTTPConfig struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
}

type UploadConfig struct {
	Dir       string `yaml:"dir" env:"UPLOAD_DIR" env-default:""`
	MaxSizeMB int64  `yaml:"max_size_mb" env:"UPLOAD_MAX_SIZE_MB" env-default:"32"`
}

type StaticConfig struct {
	Dir string `yaml:"dir" env:"STATIC_DIR" env-default:""`
}

type SessionConfig struct {
	EventBuffer int `yaml:"event_buffer" env:"SESSION_EVENT_BUFFER" env-default:"16"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from env: " + err.Error())
		}
		cfg.setDefaults()
		return &cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	cfg.setDefaults()

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":3001"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "public/uploads"
	}
	if c.Upload.MaxSizeMB <= 0 {
		c.Upload.MaxSizeMB = 32
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Session.EventBuffer <= 0 {
		c.Session.EventBuffer = 16
	}
}
