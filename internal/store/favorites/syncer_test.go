package favorites

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electromart/internal/client"
)

type syncerTokens struct {
	token string
}

func (f syncerTokens) Token() (string, bool) {
	return f.token, f.token != ""
}

// 届いた操作を "METHOD path" で記録するサーバー
type recordingServer struct {
	mu       sync.Mutex
	requests []string
	fail     map[string]int // "METHOD path" -> 残り失敗回数
	srv      *httptest.Server
}

func newRecordingServer() *recordingServer {
	rs := &recordingServer{fail: map[string]int{}}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		rs.mu.Lock()
		rs.requests = append(rs.requests, key)
		remaining := rs.fail[key]
		if remaining > 0 {
			rs.fail[key] = remaining - 1
		}
		rs.mu.Unlock()

		if remaining > 0 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	return rs
}

func (rs *recordingServer) seen() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]string, len(rs.requests))
	copy(out, rs.requests)
	return out
}

func newTestSyncer(t *testing.T, baseURL string, token string) (*Syncer, *Queue, *time.Time) {
	t.Helper()
	q, _, now := newTestQueue()
	api := client.New(baseURL, syncerTokens{token: token}, zap.NewNop())
	s := NewSyncer(q, client.NewFavoritesClient(api), syncerTokens{token: token}, zap.NewNop())
	return s, q, now
}

func favPath(partID int64) string {
	return fmt.Sprintf("/user/user-profile/favoritos/%d/", partID)
}

func TestSyncer_Flush_SendsInFIFOOrder(t *testing.T) {
	ctx := context.Background()
	rs := newRecordingServer()
	defer rs.srv.Close()

	s, q, now := newTestSyncer(t, rs.srv.URL, "token")

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionAdd, 2))
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionRemove, 3))

	require.NoError(t, s.Flush(ctx))

	assert.Equal(t, []string{
		"POST " + favPath(1),
		"POST " + favPath(2),
		"DELETE " + favPath(3),
	}, rs.seen())
	assert.Empty(t, q.Pending())
}

func TestSyncer_Flush_UnauthenticatedDiscardsQueue(t *testing.T) {
	ctx := context.Background()
	rs := newRecordingServer()
	defer rs.srv.Close()

	s, q, _ := newTestSyncer(t, rs.srv.URL, "")

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	require.NoError(t, s.Flush(ctx))

	assert.Empty(t, q.Pending())
	assert.Empty(t, rs.seen())
}

func TestSyncer_Flush_FailureRequeuesRemainderInFront(t *testing.T) {
	ctx := context.Background()
	rs := newRecordingServer()
	defer rs.srv.Close()

	rs.fail["POST "+favPath(2)] = 1

	s, q, now := newTestSyncer(t, rs.srv.URL, "token")

	require.NoError(t, q.Enqueue(ctx, ActionAdd, 1))
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionAdd, 2))
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionRemove, 3))

	// flush中に新しい操作が積まれた状況を作るため、先に失敗分を流す
	err := s.Flush(ctx)
	require.Error(t, err)

	// 1だけ送られ、失敗した2と未処理の3が先頭に戻る
	assert.Equal(t, []string{"POST " + favPath(1), "POST " + favPath(2)}, rs.seen())
	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, Action{Kind: ActionAdd, PartID: 2}, pending[0])
	assert.Equal(t, Action{Kind: ActionRemove, PartID: 3}, pending[1])

	// 再試行で残りが順番どおり流れる
	require.NoError(t, s.Flush(ctx))
	assert.Empty(t, q.Pending())
	assert.Equal(t, []string{
		"POST " + favPath(1),
		"POST " + favPath(2),
		"POST " + favPath(2),
		"DELETE " + favPath(3),
	}, rs.seen())
}

func TestSyncer_Flush_RequeuePreservesOrderBeforeNewActions(t *testing.T) {
	ctx := context.Background()
	q, _, now := newTestQueue()

	// flush中に積まれた操作より前に未処理分が来る
	*now = now.Add(time.Second)
	require.NoError(t, q.Enqueue(ctx, ActionAdd, 9))
	q.requeueFront(ctx, []Action{{Kind: ActionRemove, PartID: 1}, {Kind: ActionAdd, PartID: 2}})

	pending := q.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, int64(1), pending[0].PartID)
	assert.Equal(t, int64(2), pending[1].PartID)
	assert.Equal(t, int64(9), pending[2].PartID)
}
