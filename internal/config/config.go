package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"minitweet/pkg/config"
)

// TweetConfig controls tweet validation. MaxLength 0 means unbounded.
type TweetConfig struct {
	MaxLength int `yaml:"max_length"`
}

type Config struct {
	DB     config.DBConfig     `yaml:"db"`
	Redis  config.RedisConfig  `yaml:"redis"`
	MQ     config.MQConfig     `yaml:"mq"`
	JWT    config.JWTConfig    `yaml:"jwt"`
	Server config.ServerConfig `yaml:"server"`
	Tweet  TweetConfig         `yaml:"tweet"`
}

// Load reads the YAML file at path, loads secrets.env from the same
// directory and applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := config.LoadSecrets(filepath.Dir(path)); err != nil {
		return nil, err
	}

	// 环境变量覆盖
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideServerFromEnv(&cfg.Server)
	if n := os.Getenv("TWEET_MAX_LENGTH"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			cfg.Tweet.MaxLength = v
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file location, CONFIG_PATH or ./config.yaml.
func Path() string {
	return config.GetEnv("CONFIG_PATH", "config.yaml")
}

func (c *Config) applyDefaults() {
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.MaxConns == 0 {
		c.DB.MaxConns = 10
	}
	if c.DB.MinConns == 0 {
		c.DB.MinConns = 2
	}
	if c.DB.MaxConnIdleTime == 0 {
		c.DB.MaxConnIdleTime = time.Minute
	}
	if c.DB.SlowQueryThreshold == 0 {
		c.DB.SlowQueryThreshold = 100 * time.Millisecond
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 24 * time.Hour
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Tweet.MaxLength < 0 {
		return errors.New("tweet.max_length must not be negative")
	}
	return nil
}
