package pos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electromart/internal/client"
)

func newTestSearcher(baseURL string) *Searcher {
	api := client.New(baseURL, posTokens{}, zap.NewNop())
	return NewSearcher(client.NewSearchClient(api), zap.NewNop())
}

func TestSearcher_SearchNow_ShortQuerySkipsRequest(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := newTestSearcher(srv.URL)

	hits, err := s.SearchNow(context.Background(), "b")
	assert.NoError(t, err)
	assert.Nil(t, hits)
	assert.Zero(t, calls.Load())
}

func TestSearcher_Query_DebouncesRapidTyping(t *testing.T) {
	var calls atomic.Int64
	var lastQ atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		lastQ.Store(r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode([]client.PartHit{{ID: 1, Name: "Bujía"}})
	}))
	defer srv.Close()

	s := newTestSearcher(srv.URL)
	ctx := context.Background()

	// 打鍵を模す。最後の入力だけが問い合わせになる
	s.Query(ctx, "bu")
	time.Sleep(50 * time.Millisecond)
	s.Query(ctx, "buj")
	time.Sleep(50 * time.Millisecond)
	s.Query(ctx, "bujía")

	select {
	case hits := <-s.Results():
		require.Len(t, hits, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("no search result delivered")
	}

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, "bujía", lastQ.Load())
}

func TestSearcher_Query_ShortQueryDeliversEmptyWithoutRequest(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := newTestSearcher(srv.URL)

	s.Query(context.Background(), "b")

	select {
	case hits := <-s.Results():
		assert.Empty(t, hits)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
	assert.Zero(t, calls.Load())
}
