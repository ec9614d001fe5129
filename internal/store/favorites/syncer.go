package favorites

import (
	"context"
	"time"

	"go.uber.org/zap"

	"electromart/internal/client"
)

// 保留キューをサーバーへ流し込む。
type Syncer struct {
	queue  *Queue
	remote *client.FavoritesClient
	tokens client.TokenSource
	logger *zap.Logger
}

// DI
func NewSyncer(queue *Queue, remote *client.FavoritesClient, tokens client.TokenSource, logger *zap.Logger) *Syncer {
	return &Syncer{
		queue:  queue,
		remote: remote,
		tokens: tokens,
		logger: logger,
	}
}

// キューを先頭から順に送る。順序を守るため並列にはしない。
// 途中で失敗したら、失敗した分を含む残りをキューの先頭へ戻す。
// 未ログインならキューごと捨てる。
func (s *Syncer) Flush(ctx context.Context) error {
	if _, ok := s.tokens.Token(); !ok {
		s.queue.Discard(ctx)
		return nil
	}

	actions := s.queue.takeAll(ctx)
	if len(actions) == 0 {
		return nil
	}

	for i, a := range actions {
		var err error
		switch a.Kind {
		case ActionAdd:
			err = s.remote.Add(ctx, a.PartID)
		case ActionRemove:
			err = s.remote.Remove(ctx, a.PartID)
		default:
			s.logger.Warn("unknown pending favorite action, dropping", zap.String("action", string(a.Kind)))
			continue
		}
		if err == nil {
			continue
		}

		// 認証切れなら残りも捨てる
		if _, ok := s.tokens.Token(); !ok {
			return err
		}
		s.queue.requeueFront(ctx, actions[i:])
		return err
	}
	return nil
}

// 定期的にFlushを回す。ctxが閉じたら止まる。
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Warn("favorites flush failed", zap.Error(err))
			}
		}
	}
}
