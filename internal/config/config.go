package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

func Load() *Config {
	// .env is optioneel; variabelen kunnen ook via de omgeving gezet zijn
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=facturatie port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// Productiecontroles
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment variabele is niet gezet! Verplicht voor productie.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET moet minimaal 32 tekens zijn! Veiligheidsrisico.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=facturatie port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN gebruikt de standaardwaarde, stel voor productie je eigen Postgres-verbinding in.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS gebruikt de standaardwaarde, stel voor productie je eigen domein in.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
