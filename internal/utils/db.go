package utils

import (
	"database/sql"
	"os"
	"strconv"

	_ "github.com/lib/pq"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// BuildPostgresDSNFromEnv：由 PG_HOST / PG_PORT / PG_USER / PG_PASSWORD / PG_DB / PG_SSLMODE 拼接 DSN
func BuildPostgresDSNFromEnv() string {
	dsn := "postgres://" + envOr("PG_USER", "postgres")
	if pass := os.Getenv("PG_PASSWORD"); pass != "" {
		dsn += ":" + pass
	}
	dsn += "@" + envOr("PG_HOST", "localhost") + ":" + envOr("PG_PORT", "5432") +
		"/" + envOr("PG_DB", "zipapi") + "?sslmode=" + envOr("PG_SSLMODE", "disable")
	return dsn
}

// OpenPostgresFromEnv：打开连接池；PG_MAX_OPEN_CONNS / PG_MAX_IDLE_CONNS 可覆盖默认 10 / 5
// 约束：sql.Open 不建立连接，调用方需自行 Ping
func OpenPostgresFromEnv() (*sql.DB, error) {
	db, err := sql.Open("postgres", BuildPostgresDSNFromEnv())
	if err != nil {
		return nil, err
	}
	maxOpen := 10
	maxIdle := 5
	if n, e := strconv.Atoi(os.Getenv("PG_MAX_OPEN_CONNS")); e == nil {
		maxOpen = n
	}
	if n, e := strconv.Atoi(os.Getenv("PG_MAX_IDLE_CONNS")); e == nil {
		maxIdle = n
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	return db, nil
}
