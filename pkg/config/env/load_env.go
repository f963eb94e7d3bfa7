package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from the first candidate .env file
// that exists. The ENV_PATH environment variable overrides the candidates
// when set.
func LoadDotEnv(env string, paths ...string) error {
	if override := os.Getenv("ENV_PATH"); override != "" {
		paths = []string{override}
	}

	var envPath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			envPath = p
			break
		}
	}
	if envPath == "" && len(paths) > 0 {
		envPath = paths[0]
	}

	err := godotenv.Load(envPath)
	if err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...")
	}

	return nil
}
