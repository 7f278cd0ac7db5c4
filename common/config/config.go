package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
	// ConnectTimeout bounds dialing and the startup ping. Zero leaves it to the driver.
	ConnectTimeout time.Duration
}

// RedisConfig Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GetDSN lib/pq key/value connection string.
func (c *DatabaseConfig) GetDSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", secs)
	}
	return dsn
}

// LoadFromEnv overrides fields from <prefix>_HOST, _PORT, _USER, _PASSWORD,
// _NAME, _SSLMODE, _MAX_CONNS and _CONNECT_TIMEOUT (seconds). Unset or
// malformed variables leave the field unchanged.
func (c *DatabaseConfig) LoadFromEnv(prefix string) {
	setString(&c.Host, prefix+"_HOST")
	setInt(&c.Port, prefix+"_PORT")
	setString(&c.User, prefix+"_USER")
	setString(&c.Password, prefix+"_PASSWORD")
	setString(&c.Database, prefix+"_NAME")
	setString(&c.SSLMode, prefix+"_SSLMODE")
	setInt(&c.MaxConns, prefix+"_MAX_CONNS")

	secs := -1
	setInt(&secs, prefix+"_CONNECT_TIMEOUT")
	if secs >= 0 {
		c.ConnectTimeout = time.Duration(secs) * time.Second
	}
}

// LoadFromEnv overrides fields from <prefix>_ADDR, _PASSWORD and _DB.
func (c *RedisConfig) LoadFromEnv(prefix string) {
	setString(&c.Addr, prefix+"_ADDR")
	setString(&c.Password, prefix+"_PASSWORD")
	setInt(&c.DB, prefix+"_DB")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if i, err := strconv.Atoi(v); err == nil {
		*dst = i
	}
}
