package config

import (
	"os"
	"strconv"
	"time"

	commoncfg "relief-dispatch/common/config"

	"github.com/joho/godotenv"
)

// Config relief-dispatch configuration.
type Config struct {
	// DBEnabled switches the beneficiary lookup and the pending-requests
	// collection to Postgres. The in-memory stores are used otherwise.
	DBEnabled bool
	Database  commoncfg.DatabaseConfig

	RedisEnabled bool
	Redis        commoncfg.RedisConfig

	Log struct {
		Level  string
		Format string
	}

	Organization struct {
		ID   string
		Name string
	}

	BulkSend struct {
		// SubmitDelay is the simulated latency of the submission boundary.
		SubmitDelay time.Duration
		// BeneficiaryCacheTTL bounds how long per-area beneficiary counts stay cached in Redis.
		BeneficiaryCacheTTL time.Duration
		// SubmitStream, when set with Redis enabled, publishes committed
		// requests to this Redis stream instead of simulating the submission.
		SubmitStream       string
		SubmitStreamMaxLen int64
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present. Malformed numbers fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database = commoncfg.DatabaseConfig{
		Host:           "localhost",
		Port:           5432,
		User:           "postgres",
		Password:       "postgres",
		Database:       "relief",
		SSLMode:        "disable",
		MaxConns:       10,
		MaxIdle:        5,
		ConnectTimeout: 5 * time.Second,
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Organization.ID = getEnv("ORGANIZATION_ID", "org-001")
	cfg.Organization.Name = getEnv("ORGANIZATION_NAME", "Relief Organization")

	delayMS := parseInt(getEnv("SUBMIT_DELAY_MS", "1500"), 1500)
	if delayMS < 0 {
		delayMS = 0
	}
	cfg.BulkSend.SubmitDelay = time.Duration(delayMS) * time.Millisecond

	ttl := parseInt(getEnv("BENEFICIARY_CACHE_TTL", "60"), 60)
	if ttl <= 0 {
		ttl = 60
	}
	cfg.BulkSend.BeneficiaryCacheTTL = time.Duration(ttl) * time.Second

	cfg.BulkSend.SubmitStream = getEnv("SUBMIT_STREAM", "")
	cfg.BulkSend.SubmitStreamMaxLen = int64(parseInt(getEnv("SUBMIT_STREAM_MAXLEN", "10000"), 10000))

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
