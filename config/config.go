package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MongoURI    string
	Database    string
	TokenSecret string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	GoogleProjectID   string
	GoogleCredentials string
	BigQueryLocation  string
	BigQueryTable     string

	CloudinaryURL    string
	CloudinaryFolder string
}

func LoadConfig() *Config {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		Port:        getEnv("PORT", ":5005"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		Database:    getEnv("MONGO_DB", "cost-manager"),
		TokenSecret: getEnv("TOKEN_SECRET", "dev-secret"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		GoogleProjectID:   os.Getenv("GOOGLE_PROJECT_ID"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		BigQueryLocation:  getEnv("BIGQUERY_LOCATION", "europe-west9"),
		BigQueryTable:     os.Getenv("BIGQUERY_TABLE"),

		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "cost-manager"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
