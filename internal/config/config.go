package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	APIKey         string
	Port           string
	ResendAPIKey   string
	MailFrom       string
	AllowedOrigins string
}

func Load() *Config {
	// Missing .env is fine; the environment may be set directly.
	godotenv.Load()

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "fitlogic"),
		DBPassword:     getEnv("DB_PASSWORD", "fitlogic_pass"),
		DBName:         getEnv("DB_NAME", "fitlogic"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		APIKey:         getEnv("API_KEY", ""),
		Port:           getEnv("PORT", "8080"),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		MailFrom:       getEnv("MAIL_FROM", "noreply@fitlogic.app"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
