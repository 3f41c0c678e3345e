package ziptable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry：文件与数据库中的一行邮编记录
type Entry struct {
	Zip   string `yaml:"zip"`
	City  string `yaml:"city"`
	State string `yaml:"state"`
}

// Display：拼接为对外展示串 "City, State"
func (e Entry) Display() string { return e.City + ", " + e.State }

type document struct {
	Entries []Entry `yaml:"entries"`
}

// FromEntries：由记录列表构建表
// 约束：同一邮编重复出现视为数据错误，返回 ErrDuplicateZip，不做覆盖
func FromEntries(entries []Entry) (*Table, error) {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, ok := m[e.Zip]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateZip, e.Zip)
		}
		m[e.Zip] = e.Display()
	}
	return &Table{m: m}, nil
}

// Parse：解析 YAML 文档
// 格式：
//
//	entries:
//	  - zip: "80301"
//	    city: Boulder
//	    state: Colorado
func Parse(b []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse zip table: %w", err)
	}
	return FromEntries(doc.Entries)
}

// Encode：把记录列表编码为 Parse 可读取的 YAML 文档
func Encode(entries []Entry) ([]byte, error) {
	return yaml.Marshal(document{Entries: entries})
}

// LoadFile：读取并解析本地 YAML 文件
func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zip table: %w", err)
	}
	return Parse(b)
}
