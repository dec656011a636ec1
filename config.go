package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is populated from the environment (and .env in development).
type Config struct {
	Addr          string `env:"ADDR" envDefault:":5175"`
	DictFile      string `env:"DICT_FILE"`
	DBPath        string `env:"DB_PATH" envDefault:"data/nulldle.db"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWTExpiryDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	ClientOrigin  string `env:"CLIENT_ORIGIN"`
	RateRPS       int    `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"10"`
	Production    bool   `env:"PRODUCTION"`
}

// loadConfig reads .env (best effort) and parses the environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	return env.ParseAs[Config]()
}
