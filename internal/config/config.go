package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ScoreStorageMemory = "memory"
	ScoreStorageRedis  = "redis"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Game       Game   `yaml:"game"`
	Score      Score  `yaml:"score"`
	Redis      Redis  `yaml:"redis"`
}

type Game struct {
	ComputerDelay time.Duration `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"1s"`
	RoundDelay    time.Duration `yaml:"round-delay" env:"GAME_ROUND_DELAY" env-default:"2s"`
	// Seed for the computer's moves; 0 seeds from the clock.
	Seed int64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

type Score struct {
	Storage string `yaml:"storage" env:"SCORE_STORAGE" env-default:"memory"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Score) UsesRedis() bool {
	return that.Storage == ScoreStorageRedis
}
