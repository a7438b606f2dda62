package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable consulted for the config file path.
const PathEnv = "BALAKANYNA_CONFIG"

var (
	ErrReadFile   = errors.New("config: failed to read file")
	ErrParseFile  = errors.New("config: failed to parse file")
	ErrParseEnv   = errors.New("config: failed to parse environment")
	ErrLoadDotEnv = errors.New("config: failed to load .env")
)

// Load builds the configuration from layered sources:
//  1. Defaults
//  2. YAML file (explicit path, BALAKANYNA_CONFIG, ./config.yaml)
//  3. .env file, if present; it never overrides variables already set
//  4. Environment variables
//  5. Validation
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if file := discoverFile(path); file != "" {
		if err := loadYAML(file, &cfg); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Join(ErrLoadDotEnv, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func discoverFile(path string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

// loadYAML decodes path over cfg; keys absent from the file keep their values.
func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadFile, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Join(ErrParseFile, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}
