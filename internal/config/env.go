package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// EnvDatabaseURL names the SQLite database used by the save command.
const EnvDatabaseURL = "DATABASE_URL"

// EnvLogLevel overrides the log level when -v is not given.
const EnvLogLevel = "LELI_LOG_LEVEL"

// EnvFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnv loads every existing file of EnvFiles into the environment.
func LoadEnv() error {
	for _, name := range EnvFiles {
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return configError(err, "load environment file", name)
		}
	}
	return nil
}
