// 包 geo：基于 MaxMind 国家库解析访问者国家代码，仅用于访问日志
package geo

import (
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Resolver：国家库读取器包装
type Resolver struct {
	r *geoip2.Reader
}

// Open：打开 mmdb 文件；path 为空时返回 nil, nil 表示未启用
func Open(path string) (*Resolver, error) {
	if path == "" {
		return nil, nil
	}
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Resolver{r: r}, nil
}

func (g *Resolver) Close() error {
	if g == nil {
		return nil
	}
	return g.r.Close()
}

// Country：remoteAddr 可带端口；解析失败或未命中返回空串
func (g *Resolver) Country(remoteAddr string) string {
	if g == nil {
		return ""
	}
	ip := net.ParseIP(hostOnly(remoteAddr))
	if ip == nil {
		return ""
	}
	rec, err := g.r.Country(ip)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}

func hostOnly(addr string) string {
	if h, _, err := net.SplitHostPort(addr); err == nil {
		return h
	}
	return strings.Trim(addr, "[]")
}
