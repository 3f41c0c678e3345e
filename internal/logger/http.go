// 包 logger：http 访问日志中间件，记录方法、路径、状态、耗时、字节数、远端地址与请求 ID
package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader：请求 ID 头；上游已设置时沿用
const RequestIDHeader = "X-Request-ID"

// statusWriter：包装 ResponseWriter 以捕获状态码与写出字节数
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// CountryFunc：由远端地址解析国家代码；不可用时返回空串
type CountryFunc func(remoteAddr string) string

// AccessMiddleware：生成访问日志中间件
// 约束：不读取请求体；country 为 nil 时不输出国家字段
func AccessMiddleware(l *slog.Logger, country CountryFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rid)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", r.RemoteAddr,
				"request_id", rid,
			}
			if country != nil {
				attrs = append(attrs, "country", country(r.RemoteAddr))
			}
			l.Debug("http_access", attrs...)
		})
	}
}
