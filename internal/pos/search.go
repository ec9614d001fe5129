package pos

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"electromart/internal/client"
)

// 打鍵が止まるまで待つ時間
const searchDebounce = 350 * time.Millisecond

// 検索欄。入力のたびに叩かず、打鍵が止まってから1回だけ問い合わせる。
// 2文字未満は問い合わせず空を流す。
type Searcher struct {
	mu      sync.Mutex
	search  *client.SearchClient
	logger  *zap.Logger
	results chan []client.PartHit
	pending *time.Timer
	seq     int
}

// DI
func NewSearcher(search *client.SearchClient, logger *zap.Logger) *Searcher {
	return &Searcher{
		search:  search,
		logger:  logger,
		results: make(chan []client.PartHit, 1),
	}
}

// 検索結果の受け口。Queryのたびに最新の結果だけが届く。
func (s *Searcher) Results() <-chan []client.PartHit {
	return s.results
}

// 入力を受け付ける。前の入力の待ちはキャンセルされる。
func (s *Searcher) Query(ctx context.Context, q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}

	q = strings.TrimSpace(q)
	if len(q) < 2 {
		s.deliver(nil)
		return
	}

	s.seq++
	seq := s.seq
	s.pending = time.AfterFunc(searchDebounce, func() {
		hits, err := s.search.Search(ctx, q)
		if err != nil {
			s.logger.Warn("part search failed", zap.String("q", q), zap.Error(err))
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		// 古い問い合わせの結果は捨てる
		if seq != s.seq {
			return
		}
		s.deliver(hits)
	})
}

// chanに最新結果だけを残す。
func (s *Searcher) deliver(hits []client.PartHit) {
	select {
	case <-s.results:
	default:
	}
	s.results <- hits
}

// 即時検索。debounceなしでdeliverもしない。CLIのワンショット用。
func (s *Searcher) SearchNow(ctx context.Context, q string) ([]client.PartHit, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil, nil
	}
	return s.search.Search(ctx, q)
}
