package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electromart/internal/client"
	"electromart/internal/infra/cache"
)

type fakeTokens struct {
	token string
}

func (f fakeTokens) Token() (string, bool) {
	return f.token, f.token != ""
}

func newTestStore(t *testing.T, baseURL string, token string) (*Store, *cache.MemoryStore) {
	t.Helper()
	storage := cache.NewMemoryStore()
	api := client.New(baseURL, fakeTokens{token: token}, zap.NewNop())
	s := NewStore(storage, client.NewCartClient(api), fakeTokens{token: token}, zap.NewNop())
	return s, storage
}

func hit(id int64, price string) client.PartSummary {
	return client.PartSummary{ID: id, Name: "Filtro de aceite", Price: decimal.RequireFromString(price)}
}

func TestStore_AddItem_IncrementsExisting(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "http://127.0.0.1:0", "")

	s.AddItem(ctx, hit(1, "150.00"))
	s.AddItem(ctx, hit(1, "150.00"))
	s.AddItem(ctx, hit(2, "50.00"))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.True(t, s.Total().Equal(decimal.RequireFromString("350.00")))
}

func TestStore_UpdateQuantity_ZeroRemoves(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "http://127.0.0.1:0", "")

	s.AddItem(ctx, hit(1, "150.00"))
	s.UpdateQuantity(ctx, 1, 0)

	assert.Zero(t, s.Len())
}

func TestStore_UpdateQuantity_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "http://127.0.0.1:0", "")

	s.AddItem(ctx, hit(1, "150.00"))
	s.AddItem(ctx, hit(2, "50.00"))

	s.UpdateQuantity(ctx, 1, 3)
	once := s.Items()

	s.UpdateQuantity(ctx, 1, 3)
	twice := s.Items()

	assert.Equal(t, once, twice)
	assert.True(t, s.Total().Equal(decimal.RequireFromString("500.00")))
}

func TestStore_TotalItems_SumsQuantities(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "http://127.0.0.1:0", "")

	assert.Zero(t, s.TotalItems())

	s.AddItem(ctx, hit(1, "150.00"))
	s.AddItem(ctx, hit(1, "150.00"))
	s.AddItem(ctx, hit(2, "50.00"))

	assert.Equal(t, int64(3), s.TotalItems())
	assert.Equal(t, 2, s.Len())
}

func TestStore_PersistsSnapshotAcrossLoad(t *testing.T) {
	ctx := context.Background()
	storage := cache.NewMemoryStore()
	api := client.New("http://127.0.0.1:0", fakeTokens{}, zap.NewNop())

	s1 := NewStore(storage, client.NewCartClient(api), fakeTokens{}, zap.NewNop())
	s1.AddItem(ctx, hit(1, "150.00"))
	s1.UpdateQuantity(ctx, 1, 3)

	s2 := NewStore(storage, client.NewCartClient(api), fakeTokens{}, zap.NewNop())
	require.NoError(t, s2.Load(ctx))

	items := s2.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)
}

func TestStore_Load_CorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	s, storage := newTestStore(t, "http://127.0.0.1:0", "")

	require.NoError(t, storage.Set(ctx, "electromart-cart", "{broken", 0))
	require.NoError(t, s.Load(ctx))
	assert.Zero(t, s.Len())
}

func TestStore_Sync_UnauthenticatedWipesLocal(t *testing.T) {
	ctx := context.Background()
	s, storage := newTestStore(t, "http://127.0.0.1:0", "")

	s.AddItem(ctx, hit(1, "150.00"))
	require.NoError(t, s.Sync(ctx))

	assert.Zero(t, s.Len())
	_, err := storage.Get(ctx, "electromart-cart")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestStore_Sync_ReplacesLocalWithServer(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/user-profile/cart/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(client.CartPayload{
			Cart: []client.CartLine{
				{Part: hit(9, "80.00"), Quantity: 4},
			},
			Total: decimal.RequireFromString("320.00"),
		})
	}))
	defer srv.Close()

	s, _ := newTestStore(t, srv.URL, "token")

	// ローカルにだけある明細はSyncで消える
	s.mu.Lock()
	s.items = []Item{{Part: hit(1, "150.00"), Quantity: 2}}
	s.mu.Unlock()

	require.NoError(t, s.Sync(ctx))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].Part.ID)
	assert.Equal(t, int64(4), items[0].Quantity)
}

func TestStore_Sync_UnauthorizedResponseWipesLocal(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer srv.Close()

	s, _ := newTestStore(t, srv.URL, "stale-token")
	s.AddItem(ctx, hit(1, "150.00"))

	require.NoError(t, s.Sync(ctx))
	assert.Zero(t, s.Len())
}

func TestStore_AddItem_FiresRemoteAdd(t *testing.T) {
	ctx := context.Background()

	calls := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls <- r.Method
		assert.Equal(t, int64(1), body["refaccion_id"])
		assert.Equal(t, int64(1), body["cantidad"])
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s, _ := newTestStore(t, srv.URL, "token")
	s.AddItem(ctx, hit(1, "150.00"))

	select {
	case method := <-calls:
		assert.Equal(t, http.MethodPost, method)
	case <-time.After(2 * time.Second):
		t.Fatal("remote add was never called")
	}
}
