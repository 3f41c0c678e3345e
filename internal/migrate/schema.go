package migrate

import (
	"database/sql"
	"zip-api/internal/logger"
)

// 背景：首次运行自动创建所需表，保障邮编表加载与统计写入
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _zip_city_state (
            zip TEXT PRIMARY KEY,
            city TEXT NOT NULL,
            state TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_zip_updated ON _zip_city_state(updated_at)`,
		`CREATE TABLE IF NOT EXISTS _zip_stats_total (
            id INT PRIMARY KEY,
            total_queries BIGINT NOT NULL DEFAULT 0,
            total_visitors BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS _zip_stats_daily (
            day DATE PRIMARY KEY,
            queries BIGINT NOT NULL DEFAULT 0,
            visitors BIGINT NOT NULL DEFAULT 0
        )`,
		`INSERT INTO _zip_stats_total(id, total_queries, total_visitors)
         VALUES(1, 0, 0)
         ON CONFLICT (id) DO NOTHING`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
