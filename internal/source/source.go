// 包 source：按配置选择邮编表数据源，并在启动时一次性构建只读表
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"zip-api/internal/logger"
	"zip-api/internal/metrics"
	"zip-api/internal/ziptable"
)

// 数据源种类
const (
	KindBuiltin  = "builtin"
	KindFile     = "file"
	KindS3       = "s3"
	KindPostgres = "postgres"
)

// ErrUnavailable：所选数据源缺少必要依赖（如未配置对象存储或数据库）
var ErrUnavailable = errors.New("zip table source unavailable")

// Config：数据源配置
type Config struct {
	Kind   string
	Path   string
	Bucket string
	Object string
}

// ConfigFromEnv：读取 ZIP_TABLE_SOURCE / ZIP_TABLE_PATH / ZIP_TABLE_BUCKET / ZIP_TABLE_OBJECT
func ConfigFromEnv() Config {
	c := Config{
		Kind:   os.Getenv("ZIP_TABLE_SOURCE"),
		Path:   os.Getenv("ZIP_TABLE_PATH"),
		Bucket: os.Getenv("ZIP_TABLE_BUCKET"),
		Object: os.Getenv("ZIP_TABLE_OBJECT"),
	}
	if c.Kind == "" {
		c.Kind = KindBuiltin
	}
	if c.Path == "" {
		c.Path = filepath.Join("data", "ziptable.yaml")
	}
	if c.Bucket == "" {
		c.Bucket = "zip-api"
	}
	if c.Object == "" {
		c.Object = "ziptable.yaml"
	}
	return c
}

// ObjectReader：对象存储读取能力（storage.S3Service 实现）
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// EntryLoader：数据库读取能力（store.Store 实现）
type EntryLoader interface {
	LoadEntries(ctx context.Context) ([]ziptable.Entry, error)
}

// Loader：持有各数据源依赖；未用到的依赖可为空
type Loader struct {
	Objects ObjectReader
	Rows    EntryLoader
}

// Load：构建邮编表并记录条目数
func (l Loader) Load(ctx context.Context, cfg Config) (*ziptable.Table, error) {
	tb, err := l.load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	metrics.TableEntries.WithLabelValues(cfg.Kind).Set(float64(tb.Len()))
	logger.L().Info("table_loaded", "source", cfg.Kind, "entries", tb.Len())
	return tb, nil
}

func (l Loader) load(ctx context.Context, cfg Config) (*ziptable.Table, error) {
	switch cfg.Kind {
	case KindBuiltin, "":
		return ziptable.Default(), nil
	case KindFile:
		return ziptable.LoadFile(cfg.Path)
	case KindS3:
		if l.Objects == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, cfg.Kind)
		}
		b, err := l.Objects.ReadObject(ctx, cfg.Bucket, cfg.Object)
		if err != nil {
			return nil, err
		}
		return ziptable.Parse(b)
	case KindPostgres:
		if l.Rows == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, cfg.Kind)
		}
		entries, err := l.Rows.LoadEntries(ctx)
		if err != nil {
			return nil, err
		}
		return ziptable.FromEntries(entries)
	}
	return nil, fmt.Errorf("unknown zip table source %q", cfg.Kind)
}
