package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Configuration struct {
	Server struct {
		Host        string   `envconfig:"SERVER_HOST"`
		Port        string   `envconfig:"SERVER_PORT" default:"3000"`
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}
	Store struct {
		Driver string `envconfig:"STORE_DRIVER" default:"memory"`
	}
	Database struct {
		Address           string        `envconfig:"MONGO_ADDRESS" default:"mongodb://localhost:27017"`
		DatabaseName      string        `envconfig:"MONGO_DATABASE" default:"chess"`
		Collection        string        `envconfig:"MONGO_COLLECTION" default:"games"`
		CounterCollection string        `envconfig:"MONGO_COUNTER_COLLECTION" default:"counters"`
		Timeout           time.Duration `envconfig:"MONGO_TIMEOUT" default:"5s"`
	}
	Log struct {
		Development  bool `envconfig:"LOG_DEVELOPMENT"`
		RenderBoards bool `envconfig:"RENDER_BOARDS"`
	}
}

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

func InitConfig() (*Configuration, error) {
	config := &Configuration{}
	if err := envconfig.Process("", config); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Configuration) ListenAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
