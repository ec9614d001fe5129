package cache

import (
	"context"
	"errors"
	"time"
)

// キーが無いときの番兵
var ErrMiss = errors.New("cache: key not found")

// セッション単位のスナップショット保存先。
// redis実装とテスト用のメモリ実装がある。
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
