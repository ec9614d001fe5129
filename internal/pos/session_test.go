package pos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electromart/internal/client"
)

type posTokens struct{}

func (posTokens) Token() (string, bool) { return "token", true }

func newTestSession(baseURL string) *Session {
	api := client.New(baseURL, posTokens{}, zap.NewNop())
	return NewSession(client.NewSalesClient(api), zap.NewNop())
}

func posHit(id int64, price string) client.PartHit {
	return client.PartHit{ID: id, PartCode: "P-001", Name: "Balata delantera", Price: decimal.RequireFromString(price), Stock: 10}
}

func TestSession_AddPart_IncrementsExisting(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "100.00"))
	s.AddPart(posHit(1, "100.00"))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestSession_AddPart_KeepsPriceAtAddTime(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "100.00"))
	// あとから検索し直して価格が変わっていても、最初の価格のまま
	s.AddPart(posHit(1, "120.00"))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, s.Total().Equal(decimal.RequireFromString("200.00")))
}

func TestSession_SetQuantity_ZeroRemovesLine(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "100.00"))
	s.SetQuantity(1, 0)

	assert.Empty(t, s.Lines())
}

func TestSession_TaxBreakdown(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "116.00"))

	// 税込116.00 -> 税抜100.00、IVA 16.00
	assert.True(t, s.Total().Equal(decimal.RequireFromString("116.00")))
	assert.True(t, s.Subtotal().Equal(decimal.RequireFromString("100.00")), "subtotal=%s", s.Subtotal())
	assert.True(t, s.VAT().Equal(decimal.RequireFromString("16.00")), "vat=%s", s.VAT())
}

func TestSession_TaxBreakdown_AlwaysSumsToTotal(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "99.99"))
	s.AddPart(posHit(2, "0.01"))

	assert.True(t, s.Subtotal().Add(s.VAT()).Equal(s.Total()))
}

func TestSession_Change_ClampsAtZero(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "100.00"))

	assert.True(t, s.Change(decimal.RequireFromString("150.00")).Equal(decimal.RequireFromString("50.00")))
	assert.True(t, s.Change(decimal.RequireFromString("80.00")).IsZero())
}

func TestSession_Shortfall_FlagsInsufficientTender(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	s.AddPart(posHit(1, "100.00"))

	// お釣りが0でも不足額は別に出る
	assert.True(t, s.Shortfall(decimal.RequireFromString("80.00")).Equal(decimal.RequireFromString("20.00")))
	assert.True(t, s.Change(decimal.RequireFromString("80.00")).IsZero())

	assert.True(t, s.Shortfall(decimal.RequireFromString("100.00")).IsZero())
	assert.True(t, s.Shortfall(decimal.RequireFromString("150.00")).IsZero())
}

func TestSession_Confirm_EmptyTicket(t *testing.T) {
	s := newTestSession("http://127.0.0.1:0")

	_, err := s.Confirm(context.Background(), decimal.RequireFromString("100.00"))
	assert.ErrorIs(t, err, ErrEmptyTicket)
}

func TestSession_Confirm_FailureKeepsTicket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"existencias insuficientes: Balata delantera"}`))
	}))
	defer srv.Close()

	s := newTestSession(srv.URL)
	s.AddPart(posHit(1, "100.00"))

	_, err := s.Confirm(context.Background(), decimal.RequireFromString("100.00"))
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "existencias insuficientes")

	// チケットは残っていて再試行できる
	assert.Len(t, s.Lines(), 1)
}

func TestSession_Confirm_SuccessClearsTicket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Items []client.SaleLine `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, int64(2), req.Items[0].Quantity)

		_ = json.NewEncoder(w).Encode(client.CreateSalesResult{
			SaleIDs: []int64{77},
			Total:   decimal.RequireFromString("232.00"),
		})
	}))
	defer srv.Close()

	s := newTestSession(srv.URL)
	s.AddPart(posHit(1, "116.00"))
	s.AddPart(posHit(1, "116.00"))

	receipt, err := s.Confirm(context.Background(), decimal.RequireFromString("300.00"))
	require.NoError(t, err)

	assert.Equal(t, []int64{77}, receipt.SaleIDs)
	assert.True(t, receipt.Total.Equal(decimal.RequireFromString("232.00")))
	assert.True(t, receipt.Subtotal.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, receipt.VAT.Equal(decimal.RequireFromString("32.00")))
	assert.True(t, receipt.Change.Equal(decimal.RequireFromString("68.00")))
	assert.Empty(t, s.Lines())
}

func TestSession_ReceiptKeptUntilNewSale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(client.CreateSalesResult{
			SaleIDs: []int64{5},
			Total:   decimal.RequireFromString("100.00"),
		})
	}))
	defer srv.Close()

	s := newTestSession(srv.URL)

	_, ok := s.LastReceipt()
	assert.False(t, ok)

	s.AddPart(posHit(1, "100.00"))
	_, err := s.Confirm(context.Background(), decimal.RequireFromString("100.00"))
	require.NoError(t, err)

	kept, ok := s.LastReceipt()
	require.True(t, ok)
	assert.Equal(t, []int64{5}, kept.SaleIDs)

	s.NewSale()
	_, ok = s.LastReceipt()
	assert.False(t, ok)
}
