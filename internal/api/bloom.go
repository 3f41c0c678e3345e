package api

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 文档注释：计算布隆过滤器位置
// 参数：data 为参与哈希的字节序列，m 为位图大小，k 为哈希次数。
// 背景：FNV64a 结合索引扰动生成 k 个位置，用于 GetBit/SetBit。
func bloomPositions(data []byte, m uint32, k int) []int64 {
	pos := make([]int64, k)
	for i := 0; i < k; i++ {
		h := fnv.New64a()
		h.Write([]byte{byte(i)})
		h.Write(data)
		pos[i] = int64(uint32(h.Sum64() % uint64(m)))
	}
	return pos
}

// 文档注释：检查并写入布隆过滤器位图
// 返回：true 表示首次见到（已写入位图）；false 表示已存在。
// 异常：Redis 交互错误时返回 error 并视为首次；rc 为 nil 时同样视为首次，避免阻断主流程。
func bloomCheckAndSet(ctx context.Context, rc *redis.Client, key string, positions []int64, ttl time.Duration) (bool, error) {
	if rc == nil {
		return true, nil
	}
	seen := true
	for _, p := range positions {
		b, err := rc.GetBit(ctx, key, p).Result()
		if err != nil {
			return true, err
		}
		if b == 0 {
			seen = false
		}
	}
	if seen {
		return false, nil
	}
	pipe := rc.Pipeline()
	for _, p := range positions {
		pipe.SetBit(ctx, key, p, 1)
	}
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return true, nil
}
