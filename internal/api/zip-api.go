// 包 api：集中注册 HTTP API 路由以解耦主入口，便于在 /api 前缀下挂载
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
	"zip-api/internal/logger"
	"zip-api/internal/metrics"
	"zip-api/internal/store"
	"zip-api/internal/ziptable"

	"github.com/redis/go-redis/v9"
)

// 布隆去重参数：按天分键，位图 2^20，4 次哈希
const (
	bloomBits   = 1 << 20
	bloomHashes = 4
	bloomTTL    = 48 * time.Hour
)

// StatsStore：查询计数存储
// 背景：统计为可选能力，未启用时传 nil；不影响查询响应
type StatsStore interface {
	IncrStats(ctx context.Context, visitor string) error
	GetTotals(ctx context.Context) (*store.Totals, error)
}

// 统计返回结构
type statsResult struct {
	Total    int64 `json:"total"`
	Today    int64 `json:"today"`
	Visitors int64 `json:"visitors"`
}

// BuildRoutes：构建并返回 API 路由；tb 为启动时加载完成的只读邮编表
func BuildRoutes(tb *ziptable.Table, st StatsStore, rc *redis.Client) *http.ServeMux {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/zip", func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		metrics.RequestsTotal.Inc()
		zip := r.URL.Query().Get("zip")
		display, ok := tb.Lookup(zip)
		if !ok {
			display = ziptable.Fallback
			metrics.FallbackTotal.Inc()
		}
		// 约束：任何输入均返回 200 与纯文本展示串，不追加换行
		w.Header().Set("content-type", "text/plain; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, display)
		logger.L().Debug("zip_lookup", "zip", zip, "hit", ok)
		if st != nil {
			recordStats(r.Context(), st, rc, getVisitorIP(r))
		}
		metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	})

	apiMux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		var res statsResult
		if st != nil {
			if t, err := st.GetTotals(r.Context()); err == nil && t != nil {
				res = statsResult{Total: t.Total, Today: t.Today, Visitors: t.Visitors}
			} else if err != nil {
				logger.L().Error("stats_read_error", "err", err)
			}
		}
		w.Header().Set("content-type", "application/json; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_ = json.NewEncoder(w).Encode(res)
	})

	apiMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	return apiMux
}

// recordStats：递增查询计数；访客当日首次出现（布隆判定）时同时递增访客计数
// 约束：统计失败只记日志，不回写响应
func recordStats(ctx context.Context, st StatsStore, rc *redis.Client, vip string) {
	visitor := ""
	if vip != "" {
		key := "bloom:visitors:" + time.Now().Format("20060102")
		first, err := bloomCheckAndSet(ctx, rc, key, bloomPositions([]byte(vip), bloomBits, bloomHashes), bloomTTL)
		if err != nil {
			logger.L().Debug("bloom_error", "err", err)
			metrics.BloomErrorsTotal.Inc()
		}
		if first {
			visitor = vip
		}
	}
	if err := st.IncrStats(ctx, visitor); err != nil {
		logger.L().Error("stats_incr_error", "err", err)
	}
}
