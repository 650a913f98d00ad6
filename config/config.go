package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/rentora/rental-service/pkg/kafka"
	"github.com/rentora/rental-service/pkg/logger"
	"github.com/rentora/rental-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RENTAL_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"RENTAL_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Admin struct {
	Name     string `envconfig:"ADMIN_NAME" default:"Admin"`
	Email    string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	License  string `envconfig:"ADMIN_LICENSE" default:"ADMIN001"`
	Password string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Database postgres.DB  `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Admin    Admin        `yaml:"admin"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	safe := *cfg
	safe.Database.Password = "***"
	safe.Admin.Password = "***"
	jscfg, _ := json.MarshalIndent(safe, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
