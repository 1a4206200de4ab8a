package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza las variables de entorno del servicio.
type Config struct {
	Port    string
	AppName string

	// Postgres. Vacío => repos in-memory (modo dev).
	DBDSN string

	// JWT
	JWTSecret string
	TokenTTL  time.Duration

	// URL pública base para los links de los códigos QR.
	BaseURL string

	LogLevel  string
	LogFormat string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		// también acepta horas como entero (TOKEN_TTL=24)
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return def
}

// Load lee la configuración desde el entorno. Si existe un archivo .env
// lo carga primero (solo completa variables no definidas).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getenv("PORT", "3000"),
		AppName:   getenv("APP_NAME", "pet-registry"),
		DBDSN:     getenv("DB_DSN", ""),
		JWTSecret: getenv("JWT_SECRET", "secret"),
		TokenTTL:  getenvDuration("TOKEN_TTL", 24*time.Hour),
		BaseURL:   getenv("BASE_URL", "http://localhost:3000"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}
}
