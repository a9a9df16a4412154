package config

import (
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	// DBType is "sqlite" or "postgres".
	DBType string
	// DBPath is the sqlite database file.
	DBPath string
	// DBDSN is the postgres connection string.
	DBDSN string
	// Compression is the codec for note content at rest, "none" or "gzip".
	Compression string
	// RedisAddr enables the redis stats cache when non-empty.
	RedisAddr string
	// StatsTTL is how long a cached dashboard aggregate stays fresh.
	StatsTTL time.Duration
	// StatsCron is the refresh schedule for the stats job.
	StatsCron string
}

func LoadConfig() *Config {
	return &Config{
		DBType:      getEnv("DB_TYPE", "sqlite"),
		DBPath:      getEnv("DB_PATH", "./.data/solvenote.db"),
		DBDSN:       getEnv("DB_DSN", ""),
		Compression: getEnv("COMPRESSION", "none"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		StatsTTL:    getDurationEnv("STATS_TTL", time.Minute),
		StatsCron:   getEnv("STATS_CRON", "@every 1m"),
	}
}

func GetDb(cnf *Config) *gorm.DB {
	var db *gorm.DB
	var err error

	switch cnf.DBType {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cnf.DBDSN), &gorm.Config{})
	default:
		if err := os.MkdirAll(filepath.Dir(cnf.DBPath), os.ModePerm); err != nil {
			logrus.Fatalf("error creating database directory: %v", err)
		}
		db, err = gorm.Open(sqlite.Open(cnf.DBPath), &gorm.Config{})
	}

	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	return db
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		logrus.Warnf("invalid duration for %s: %s", key, value)
	}
	return fallback
}
