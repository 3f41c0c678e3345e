// 包 form：进程内表单字段存储，供命令行客户端与测试使用
package form

import "sync"

// Memory：以字段名为键的内存表单
// 约束：并发安全；SetIfEmpty 的判断与写入在同一把锁内完成，保证“写一次”
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemory：以初始字段值构建；入参被复制
func NewMemory(initial map[string]string) *Memory {
	m := make(map[string]string, len(initial))
	for k, v := range initial {
		m[k] = v
	}
	return &Memory{m: m}
}

func (f *Memory) GetIfPresent(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.m[name]
	return v, v != ""
}

func (f *Memory) SetIfEmpty(name, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.m[name] != "" {
		return false
	}
	if f.m == nil {
		f.m = make(map[string]string)
	}
	f.m[name] = value
	return true
}

// Get：读取字段原值（可能为空）
func (f *Memory) Get(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[name]
}

// Snapshot：返回当前全部字段的副本
func (f *Memory) Snapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.m))
	for k, v := range f.m {
		out[k] = v
	}
	return out
}
