package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvService reads process environment after an optional .env load. A missing
// .env file is not an error; CI and production set variables directly.
type EnvService struct{}

func NewEnvService() *EnvService {
	_ = godotenv.Load(".env")
	return &EnvService{}
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) GetDefault(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
