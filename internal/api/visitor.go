package api

import (
	"net/http"
	"strings"
)

// 代理头读取顺序
var visitorHeaders = []string{
	"x-real-ip",
	"cf-connecting-ip",
	"x-client-ip",
}

// 文档注释：获取访问者 IP（用于访客去重）
// 背景：多层代理环境下优先常见反向代理头，最后回退远端地址。
// 约束：头部存在伪造风险；部署于未经信任的代理链路需配合网关过滤。
func getVisitorIP(r *http.Request) string {
	h := r.Header
	if x := h.Get("x-forwarded-for"); x != "" {
		return strings.TrimSpace(strings.Split(x, ",")[0])
	}
	for _, name := range visitorHeaders {
		if x := h.Get(name); x != "" {
			return x
		}
	}
	if x := h.Get("forwarded"); x != "" {
		i := strings.Index(strings.ToLower(x), "for=")
		if i >= 0 {
			y := x[i+4:]
			if p := strings.IndexAny(y, ";,"); p >= 0 {
				y = y[:p]
			}
			return strings.Trim(y, "\" ")
		}
	}
	host := r.RemoteAddr
	if host != "" {
		if i := strings.LastIndex(host, ":"); i > 0 {
			return host[:i]
		}
		return host
	}
	return ""
}
