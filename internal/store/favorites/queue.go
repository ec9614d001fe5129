package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"electromart/internal/infra/cache"
)

// 保留アクションの保存キー
const pendingKey = "pending_favorite_actions"

// 同一商品の連打を弾く時間
const productLockWindow = 300 * time.Millisecond

type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionRemove ActionKind = "remove"
)

// まだサーバーに反映されていないお気に入り操作。
type Action struct {
	Kind   ActionKind `json:"action"`
	PartID int64      `json:"refaccionId"`
}

// お気に入りはログイン必須。カートと違い未ログインでは積めない。
var ErrAuthRequired = errors.New("favorites: login required")

// 同じ向きの操作が既に並んでいるとき。呼び出し側は楽観更新を戻す。
var ErrDuplicateAction = errors.New("favorites: same action already pending")

// 直前の操作から間が空いていないとき。
var ErrProductLocked = errors.New("favorites: product busy, try again")

// お気に入り操作の保留キュー。
// 反対向きの操作は互いに打ち消し、同じ向きは重複として弾く。
type Queue struct {
	mu      sync.Mutex
	actions []Action
	locks   map[int64]time.Time
	storage cache.Store
	logger  *zap.Logger
	now     func() time.Time
}

// DI
func NewQueue(storage cache.Store, logger *zap.Logger) *Queue {
	return &Queue{
		locks:   map[int64]time.Time{},
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// スナップショットから復元する。壊れていたら空で始める。
func (q *Queue) Load(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	raw, err := q.storage.Get(ctx, pendingKey)
	if errors.Is(err, cache.ErrMiss) {
		q.actions = nil
		return nil
	}
	if err != nil {
		return err
	}

	var actions []Action
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		q.logger.Warn("pending favorites snapshot corrupted, starting empty", zap.Error(err))
		q.actions = nil
		return nil
	}
	q.actions = actions
	return nil
}

// 操作を積む。
// 同じ商品の保留が反対向きなら両方消える（サーバーには何も届かない）。
// 同じ向きならErrDuplicateAction、直前すぎるならErrProductLocked。
func (q *Queue) Enqueue(ctx context.Context, kind ActionKind, partID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if until, ok := q.locks[partID]; ok && q.now().Before(until) {
		return ErrProductLocked
	}
	q.locks[partID] = q.now().Add(productLockWindow)

	for i := len(q.actions) - 1; i >= 0; i-- {
		if q.actions[i].PartID != partID {
			continue
		}
		if q.actions[i].Kind == kind {
			return ErrDuplicateAction
		}
		// 打ち消し
		q.actions = append(q.actions[:i], q.actions[i+1:]...)
		q.persistLocked(ctx)
		return nil
	}

	q.actions = append(q.actions, Action{Kind: kind, PartID: partID})
	q.persistLocked(ctx)
	return nil
}

// 保留中の操作のコピー。
func (q *Queue) Pending() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Action, len(q.actions))
	copy(out, q.actions)
	return out
}

// キューを空にしてスナップショットも消す。ログアウト時用。
func (q *Queue) Discard(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.actions = nil
	if err := q.storage.Delete(ctx, pendingKey); err != nil {
		q.logger.Warn("pending favorites delete failed", zap.Error(err))
	}
}

// flush用。現在の中身を取り出してキューを空にする。
func (q *Queue) takeAll(ctx context.Context) []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	taken := q.actions
	q.actions = nil
	q.persistLocked(ctx)
	return taken
}

// flush失敗時の戻し。未処理分を、flush中に新しく積まれた分の前に置く。
func (q *Queue) requeueFront(ctx context.Context, unprocessed []Action) {
	if len(unprocessed) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	merged := make([]Action, 0, len(unprocessed)+len(q.actions))
	merged = append(merged, unprocessed...)
	merged = append(merged, q.actions...)
	q.actions = merged
	q.persistLocked(ctx)
}

func (q *Queue) persistLocked(ctx context.Context) {
	if len(q.actions) == 0 {
		if err := q.storage.Delete(ctx, pendingKey); err != nil {
			q.logger.Warn("pending favorites delete failed", zap.Error(err))
		}
		return
	}
	b, err := json.Marshal(q.actions)
	if err != nil {
		q.logger.Warn("pending favorites marshal failed", zap.Error(err))
		return
	}
	if err := q.storage.Set(ctx, pendingKey, string(b), 0); err != nil {
		q.logger.Warn("pending favorites persist failed", zap.Error(err))
	}
}
