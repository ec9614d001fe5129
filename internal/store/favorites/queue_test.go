package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electromart/internal/infra/cache"
)

// 連打ロックに引っかからないよう時間を進められるQueueを作る
func newTestQueue() (*Queue, *cache.MemoryStore, *time.Time) {
	storage := cache.NewMemoryStore()
	q := NewQueue(storage, zap.NewNop())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }
	return q, storage, &now
}

func TestQueue_Enqueue_AppendsAction(t *testing.T) {
	ctx := context.Background()
	q, _, now := newTestQueue()

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionAdd, 2))

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, Action{Kind: ActionAdd, PartID: 1}, pending[0])
	assert.Equal(t, Action{Kind: ActionAdd, PartID: 2}, pending[1])
}

func TestQueue_Enqueue_OppositeActionsAnnihilate(t *testing.T) {
	ctx := context.Background()
	q, storage, now := newTestQueue()

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionRemove, 1))

	assert.Empty(t, q.Pending())

	// スナップショットも消えている
	_, err := storage.Get(ctx, "pending_favorite_actions")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestQueue_Enqueue_SameDirectionRejected(t *testing.T) {
	ctx := context.Background()
	q, _, now := newTestQueue()

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	*now = now.Add(time.Second)

	err := q.Enqueue(ctx, ActionAdd, 1)
	assert.ErrorIs(t, err, ErrDuplicateAction)
	assert.Len(t, q.Pending(), 1)
}

func TestQueue_Enqueue_ProductLockWindow(t *testing.T) {
	ctx := context.Background()
	q, _, now := newTestQueue()

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))

	// 300ms以内の同一商品はロック
	*now = now.Add(100 * time.Millisecond)
	assert.ErrorIs(t, q.Enqueue(ctx, ActionRemove, 1), ErrProductLocked)

	// 別商品はロックされない
	assert.NoError(t, q.Enqueue(ctx, ActionAdd, 2))

	// 窓が過ぎれば通る
	*now = now.Add(productLockWindow)
	assert.NoError(t, q.Enqueue(ctx, ActionRemove, 1))
	assert.Len(t, q.Pending(), 1)
}

func TestQueue_PersistsAcrossLoad(t *testing.T) {
	ctx := context.Background()
	q1, storage, now := newTestQueue()

	require.NoError(t, q1.Enqueue(ctx, ActionAdd, 1))
	*now = now.Add(time.Second)
	require.NoError(t, q1.Enqueue(ctx, ActionRemove, 2))

	q2 := NewQueue(storage, zap.NewNop())
	require.NoError(t, q2.Load(ctx))

	pending := q2.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, Action{Kind: ActionAdd, PartID: 1}, pending[0])
	assert.Equal(t, Action{Kind: ActionRemove, PartID: 2}, pending[1])
}

func TestQueue_Load_CorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := cache.NewMemoryStore()
	require.NoError(t, storage.Set(ctx, "pending_favorite_actions", "not json", 0))

	q := NewQueue(storage, zap.NewNop())
	require.NoError(t, q.Load(ctx))
	assert.Empty(t, q.Pending())
}

func TestQueue_Discard_ClearsQueueAndSnapshot(t *testing.T) {
	ctx := context.Background()
	q, storage, _ := newTestQueue()

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	q.Discard(ctx)

	assert.Empty(t, q.Pending())
	_, err := storage.Get(ctx, "pending_favorite_actions")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
