package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"electromart/internal/client"
	"electromart/internal/infra/cache"
)

// スナップショットの保存キー
const snapshotKey = "electromart-cart"

// カートの1明細。wireはサーバーと同じ形。
type Item struct {
	Part     client.PartSummary `json:"refaccion"`
	Quantity int64              `json:"cantidad"`
}

// storefront側のカート。ローカルが正で、リモートへは投げっぱなし。
type Store struct {
	mu      sync.Mutex
	items   []Item
	storage cache.Store
	remote  *client.CartClient
	tokens  client.TokenSource
	logger  *zap.Logger
}

// DI
func NewStore(storage cache.Store, remote *client.CartClient, tokens client.TokenSource, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		remote:  remote,
		tokens:  tokens,
		logger:  logger,
	}
}

// スナップショットから復元する。壊れていたら空で始める。
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.storage.Get(ctx, snapshotKey)
	if errors.Is(err, cache.ErrMiss) {
		s.items = nil
		return nil
	}
	if err != nil {
		return err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("cart snapshot corrupted, starting empty", zap.Error(err))
		s.items = nil
		return nil
	}
	s.items = items
	return nil
}

// 追加。既にあれば数量+1。リモートへは非同期で1件追加を投げる。
func (s *Store) AddItem(ctx context.Context, part client.PartSummary) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Part.ID == part.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, Item{Part: part, Quantity: 1})
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	if _, ok := s.tokens.Token(); !ok {
		return
	}
	go func() {
		if err := s.remote.Add(context.Background(), part.ID, 1); err != nil {
			s.logger.Warn("remote cart add failed", zap.Int64("refaccion_id", part.ID), zap.Error(err))
		}
	}()
}

// 数量の直接指定。0以下は削除扱い。
// リモートに数量更新のAPIが無いので、削除してから追加し直す。
func (s *Store) UpdateQuantity(ctx context.Context, partID int64, quantity int64) {
	if quantity <= 0 {
		s.RemoveItem(ctx, partID)
		return
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Part.ID == partID {
			s.items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	if _, ok := s.tokens.Token(); !ok {
		return
	}
	go func() {
		ctx := context.Background()
		if err := s.remote.Remove(ctx, partID); err != nil {
			s.logger.Warn("remote cart remove failed", zap.Int64("refaccion_id", partID), zap.Error(err))
			return
		}
		if err := s.remote.Add(ctx, partID, quantity); err != nil {
			s.logger.Warn("remote cart add failed", zap.Int64("refaccion_id", partID), zap.Error(err))
		}
	}()
}

// 明細の削除。無ければ何もしない。
func (s *Store) RemoveItem(ctx context.Context, partID int64) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Part.ID == partID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	if _, ok := s.tokens.Token(); !ok {
		return
	}
	go func() {
		if err := s.remote.Remove(context.Background(), partID); err != nil {
			s.logger.Warn("remote cart remove failed", zap.Int64("refaccion_id", partID), zap.Error(err))
		}
	}()
}

// 全消し。
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	if err := s.storage.Delete(ctx, snapshotKey); err != nil {
		s.logger.Warn("cart snapshot delete failed", zap.Error(err))
	}
	s.mu.Unlock()

	if _, ok := s.tokens.Token(); !ok {
		return
	}
	go func() {
		if err := s.remote.Clear(context.Background()); err != nil {
			s.logger.Warn("remote cart clear failed", zap.Error(err))
		}
	}()
}

// サーバーの内容でローカルを丸ごと置き換える。
// 未ログインならローカルも消す。
func (s *Store) Sync(ctx context.Context) error {
	if _, ok := s.tokens.Token(); !ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.items = nil
		return s.storage.Delete(ctx, snapshotKey)
	}

	payload, err := s.remote.Get(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.items = nil
			return s.storage.Delete(ctx, snapshotKey)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, 0, len(payload.Cart))
	for _, line := range payload.Cart {
		items = append(items, Item{Part: line.Part, Quantity: line.Quantity})
	}
	s.items = items
	s.persistLocked(ctx)
	return nil
}

// 明細のコピーを返す。
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// 合計金額。価格はスナップショット時点のもの。
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Part.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// 総点数（数量の合計）。
func (s *Store) TotalItems() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// 明細数（商品種別の数）。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persistLocked(ctx context.Context) {
	b, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Warn("cart snapshot marshal failed", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, snapshotKey, string(b), 0); err != nil {
		s.logger.Warn("cart snapshot persist failed", zap.Error(err))
	}
}
