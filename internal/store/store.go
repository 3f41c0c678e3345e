// 包 store: 提供与 PostgreSQL 的数据访问层，包含邮编表读写与查询统计
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"zip-api/internal/logger"
	"zip-api/internal/ziptable"

	_ "github.com/lib/pq"
)

// ErrNotFound: 管理操作中指定邮编不存在
var ErrNotFound = errors.New("zip not found")

// Store: 数据库访问入口，持有连接池并提供邮编与统计接口
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// LoadEntries: 读取全部邮编行，用于启动时构建只读表
func (s *Store) LoadEntries(ctx context.Context) ([]ziptable.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT zip, city, state FROM _zip_city_state ORDER BY zip")
	if err != nil {
		return nil, fmt.Errorf("query zip table: %w", err)
	}
	defer rows.Close()
	var out []ziptable.Entry
	for rows.Next() {
		var e ziptable.Entry
		if err := rows.Scan(&e.Zip, &e.City, &e.State); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("db_zip_loaded", "rows", len(out))
	return out, nil
}

// LoadTable: 读取并构建只读邮编表
func (s *Store) LoadTable(ctx context.Context) (*ziptable.Table, error) {
	entries, err := s.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	return ziptable.FromEntries(entries)
}

// UpsertZip: 写入或覆盖单个邮编；仅供管理工具使用，运行中的服务不会感知
func (s *Store) UpsertZip(ctx context.Context, e ziptable.Entry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO _zip_city_state(zip, city, state)
        VALUES($1,$2,$3)
        ON CONFLICT (zip) DO UPDATE SET city=EXCLUDED.city, state=EXCLUDED.state, updated_at=now()`,
		e.Zip, e.City, e.State,
	)
	return err
}

// DeleteZip: 删除单个邮编；不存在时返回 ErrNotFound
func (s *Store) DeleteZip(ctx context.Context, zip string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM _zip_city_state WHERE zip=$1", zip)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetZip: 读取单个邮编
func (s *Store) GetZip(ctx context.Context, zip string) (ziptable.Entry, error) {
	e := ziptable.Entry{Zip: zip}
	row := s.db.QueryRowContext(ctx, "SELECT city, state FROM _zip_city_state WHERE zip=$1", zip)
	if err := row.Scan(&e.City, &e.State); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, ErrNotFound
		}
		return e, err
	}
	return e, nil
}

// ListZips: 按最近更新排序列出邮编
func (s *Store) ListZips(ctx context.Context, limit int) ([]ziptable.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, "SELECT zip, city, state FROM _zip_city_state ORDER BY updated_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ziptable.Entry
	for rows.Next() {
		var e ziptable.Entry
		if err := rows.Scan(&e.Zip, &e.City, &e.State); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// IncrStats: 每次查询递增总计与当日计数；访客非空时递增访客计数
func (s *Store) IncrStats(ctx context.Context, visitor string) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE _zip_stats_total SET total_queries=total_queries+1 WHERE id=1"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO _zip_stats_daily(day, queries) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET queries=_zip_stats_daily.queries+1"); err != nil {
		return err
	}
	if visitor != "" {
		_, _ = s.db.ExecContext(ctx, "UPDATE _zip_stats_total SET total_visitors=total_visitors+1 WHERE id=1")
		_, _ = s.db.ExecContext(ctx, "INSERT INTO _zip_stats_daily(day, visitors) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET visitors=_zip_stats_daily.visitors+1")
	}
	logger.L().Debug("stats_incr", "visitor", visitor)
	return nil
}

// Totals: 统计返回结构，包含累计查询、当日查询与累计访客
type Totals struct {
	Total    int64
	Today    int64
	Visitors int64
}

// GetTotals: 读取统计；当日尚无记录时 Today 为 0
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total_queries, total_visitors FROM _zip_stats_total WHERE id=1")
	if err := row.Scan(&t.Total, &t.Visitors); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	row2 := s.db.QueryRowContext(ctx, "SELECT queries FROM _zip_stats_daily WHERE day=current_date")
	if err := row2.Scan(&t.Today); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today)
	return &t, nil
}
