package client

import "strings"

// Separator：展示串中城市与州之间的分隔符
const Separator = ", "

// Place：解析后的城市与州
type Place struct {
	City  string
	State string
}

// ParsePlace：按 Separator 切分响应体，第一段为城市，第二段为州
// 约束：缺失的段视为空串；第二段之后的内容忽略；不做空白裁剪
func ParsePlace(body string) Place {
	parts := strings.Split(body, Separator)
	var p Place
	p.City = parts[0]
	if len(parts) > 1 {
		p.State = parts[1]
	}
	return p
}
