// 包 ziptable：邮编到“城市, 州”展示串的只读映射；启动时构建，之后不再变更
package ziptable

import (
	"errors"
	"sort"
	"strings"
)

// Fallback：未命中时返回的固定展示串（逗号前后各一个空格）
const Fallback = " , "

// ErrDuplicateZip：数据源中同一邮编出现多次
var ErrDuplicateZip = errors.New("duplicate zip")

// Table：只读邮编表
// 约束：构建后不可变，可被多个请求协程并发读取而无需加锁
type Table struct {
	m map[string]string
}

// New：以给定映射构建表
// 背景：复制入参，调用方后续修改原映射不影响已构建的表
func New(entries map[string]string) *Table {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &Table{m: m}
}

// Lookup：按字符串全等查找，不做任何格式校验或裁剪
func (t *Table) Lookup(zip string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.m[zip]
	return v, ok
}

// Resolve：查找展示串，未命中返回 Fallback
func (t *Table) Resolve(zip string) string {
	if v, ok := t.Lookup(zip); ok {
		return v
	}
	return Fallback
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}

// Zips：返回排序后的全部邮编，用于日志与管理工具输出
func (t *Table) Zips() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.m))
	for k := range t.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Entries：按邮编排序导出全部记录，展示串按首个分隔符拆回城市与州
func (t *Table) Entries() []Entry {
	zips := t.Zips()
	out := make([]Entry, 0, len(zips))
	for _, z := range zips {
		city, state, _ := strings.Cut(t.m[z], ", ")
		out = append(out, Entry{Zip: z, City: city, State: state})
	}
	return out
}
