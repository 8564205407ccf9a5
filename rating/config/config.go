package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/driver-rating/pkg/kafka"
	"github.com/Astemirdum/driver-rating/pkg/logger"
	"github.com/Astemirdum/driver-rating/pkg/storage"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RATING_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"RATING_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
	// APIRateLimit is requests per second per client on the rating routes; 0 disables it.
	APIRateLimit float64 `yaml:"apiRateLimit" envconfig:"RATING_API_RPS"`
}

type Config struct {
	Server   HTTPServer     `yaml:"server"`
	Database storage.Config `yaml:"db"`
	Kafka    kafka.Config   `yaml:"kafka"`
	Log      logger.Log     `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment once per process.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
	})

	return cfg
}

// Load applies defaults, then options, then the environment on top.
func Load(ops ...Option) (*Config, error) {
	config := defaultConfig()
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func defaultConfig() Config {
	return Config{
		Server: HTTPServer{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: logger.Log{LogLevel: zapcore.InfoLevel},
	}
}
