// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"zip-api/internal/api"
	"zip-api/internal/geo"
	"zip-api/internal/logger"
	"zip-api/internal/metrics"
	"zip-api/internal/middleware"
	"zip-api/internal/migrate"
	"zip-api/internal/source"
	"zip-api/internal/storage"
	"zip-api/internal/store"
	"zip-api/internal/utils"
	"zip-api/internal/version"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	l.Debug("log_init_ok", "commit", version.Commit)
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	apiBase = strings.TrimRight(apiBase, "/")
	l.Debug("config_api_base", "base", apiBase)

	ctx := context.Background()
	cfg := source.ConfigFromEnv()
	statsEnabled := os.Getenv("STATS_ENABLED") == "true"

	// 仅在邮编表来自数据库或启用统计时连接 PostgreSQL
	var st *store.Store
	if cfg.Kind == source.KindPostgres || statsEnabled {
		db, err := openDB()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		st = store.AttachDB(db)
	}

	loader := source.Loader{}
	if st != nil {
		loader.Rows = st
	}
	if cfg.Kind == source.KindS3 {
		s3, err := storage.NewS3ServiceFromEnv()
		if err != nil {
			l.Error("minio_open_error", "err", err)
			os.Exit(1)
		}
		loader.Objects = s3
	}
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	tb, err := loader.Load(loadCtx, cfg)
	cancel()
	if err != nil {
		l.Error("table_load_error", "source", cfg.Kind, "err", err)
		os.Exit(1)
	}

	var stats api.StatsStore
	if statsEnabled {
		stats = st
		l.Info("stats_enabled")
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
		defer rc.Close()
	}

	gr, err := geo.Open(os.Getenv("GEOIP_DB_PATH"))
	if err != nil {
		l.Error("geoip_open_error", "err", err)
	}
	defer gr.Close()
	var country logger.CountryFunc
	if gr != nil {
		country = gr.Country
		l.Info("geoip_ready")
	}

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(tb, stats, rc)
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l, country)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	if os.Getenv("TLS_ENABLE") == "true" {
		certPath := os.Getenv("TLS_CERT_PATH")
		keyPath := os.Getenv("TLS_KEY_PATH")
		if certPath == "" {
			certPath = filepath.Join("data", "certs", "server.crt")
		}
		if keyPath == "" {
			keyPath = filepath.Join("data", "certs", "server.key")
		}
		if err := utils.EnsureSelfSignedCert(certPath, keyPath, "zip-api.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", addr, "cert", certPath, "zips", tb.Len())
		if err := s.ListenAndServeTLS(certPath, keyPath); err != nil {
			l.Error("server_error", "err", err)
		}
		return
	}
	l.Info("listening", "addr", addr, "zips", tb.Len())
	if err := s.ListenAndServe(); err != nil {
		l.Error("server_error", "err", err)
	}
}

// openDB：打开连接、Ping 并确保表结构存在
func openDB() (*sql.DB, error) {
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	logger.L().Info("db_ping_ok")
	if err := migrate.EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
