// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"refiner/internal/core/apperror"
	"refiner/pkg/refiner"
)

// Config holds server and refiner settings.
type Config struct {
	// Namespace prefixes default refiner names, e.g. `\App\Refiners`.
	Namespace string

	// SearchParam and SortParam name the request keys holding search
	// filters and sort directives.
	SearchParam string
	SortParam   string

	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string
}

// Load reads the given dotenv files (".env" when none is given) into the
// environment, then builds and validates the configuration. Missing dotenv
// files are ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, apperror.NewInvalidConfiguration("cannot read dotenv file").
				WithDetail("file", f).
				WithCause(err)
		}
	}

	cfg := Config{
		Namespace:   getEnv("REFINER_NAMESPACE", refiner.DefaultNamespace),
		SearchParam: getEnv("REFINER_SEARCH_PARAM", refiner.DefaultKeys().Search),
		SortParam:   getEnv("REFINER_SORT_PARAM", refiner.DefaultKeys().Sort),
		Port:        getEnv("APP_PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects empty parameter keys.
func (c Config) Validate() error {
	return c.Keys().Validate()
}

// Keys returns the refiner parameter keys.
func (c Config) Keys() refiner.Keys {
	return refiner.Keys{Search: c.SearchParam, Sort: c.SortParam}
}

func (c Config) Development() bool {
	return c.Env == "development"
}

// getEnv returns env variable or default value. A variable set to the empty
// string counts as set.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}
