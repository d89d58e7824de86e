package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Dir is the directory MustLoad reads from.
var Dir = "infra/config"

// Load reads the json file at the given path into v.
func Load(file string, v interface{}) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read config '%s': %w", file, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal config '%s': %w", file, err)
	}
	return nil
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) {
	file := filepath.Join(Dir, fmt.Sprintf("%s.json", key))
	if err := Load(file, v); err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}
	log.Info().Str("config", key).Msg("loaded default config")
}
