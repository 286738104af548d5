package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	Port        string

	UploadDir  string
	ReportDir  string
	LocalesDir string

	DeezerAPIKey        string
	SpotifyClientID     string
	SpotifyClientSecret string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		DBType:      os.Getenv("DB_TYPE"),
		Port:        os.Getenv("PORT"),

		UploadDir:  os.Getenv("UPLOAD_DIR"),
		ReportDir:  os.Getenv("REPORT_DIR"),
		LocalesDir: os.Getenv("LOCALES_DIR"),

		DeezerAPIKey:        os.Getenv("DEEZER_API_KEY"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "./reports"
	}
	if cfg.LocalesDir == "" {
		cfg.LocalesDir = "./locales"
	}
	return cfg
}
