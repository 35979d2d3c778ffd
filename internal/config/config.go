package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	DBDriver string
	DBDSN    string

	FlashSecret  string
	CookieSecure bool

	SectionsFile string
	UploadPrefix string
	MaxUploadMB  int
}

func Load() Config {
	return Config{
		AppEnv:       getEnv("APP_ENV", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBDSN:        getEnv("DB_DSN", ""),
		FlashSecret:  getEnv("FLASH_SECRET", ""),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		SectionsFile: getEnv("SECTIONS_FILE", "./config/sections.yaml"),
		UploadPrefix: getEnv("UPLOAD_PREFIX", "productos"),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 8),
	}
}

func (c Config) IsProd() bool { return c.AppEnv == "prod" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
