package config

import "os"

type Config struct {
	Port          string
	Env           string
	DatabaseURL   string
	UploadDir     string
	AvatarDir     string
	SessionSecret string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		UploadDir:     getEnv("UPLOAD_DIR", "static/uploads"),
		AvatarDir:     getEnv("AVATAR_DIR", "static/avatars"),
		SessionSecret: getEnv("SESSION_SECRET", "supersecretsessionkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
