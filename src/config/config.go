package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	SnapshotPath string

	// StrictStock rejects adjustments that would drive an item negative.
	StrictStock bool

	// MirrorDSN enables the postgres-backed remote mirror when set.
	MirrorDSN    string
	MirrorBuffer int
}

func Load() Config {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8080"),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "ledger_snapshot.json"),
		StrictStock:  getBool("STRICT_STOCK", false),
		MirrorDSN:    os.Getenv("MIRROR_DSN"),
		MirrorBuffer: getInt("MIRROR_BUFFER", 256),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
