package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads env files before the YAML config is parsed, so
// CONFIG_PATH and secret overrides can live outside the repo.
// godotenv never overwrites variables that are already set, which
// keeps the precedence OS env > .env.local > .env.
func LoadDotEnv() []string {
	var found []string
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			found = append(found, name)
		}
	}
	if len(found) > 0 {
		_ = godotenv.Load(found...)
	}
	return found
}
