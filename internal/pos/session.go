package pos

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"electromart/internal/client"
)

var ErrEmptyTicket = errors.New("pos: ticket is empty")

// レジの1会計分の状態。
// 確定に失敗してもチケットは残り、そのまま再試行できる。
type Session struct {
	mu      sync.Mutex
	lines   []Line
	receipt *Receipt
	sales   *client.SalesClient
	logger  *zap.Logger
	now     func() time.Time
}

// DI
func NewSession(sales *client.SalesClient, logger *zap.Logger) *Session {
	return &Session{
		sales:  sales,
		logger: logger,
		now:    time.Now,
	}
}

// 検索結果からチケットへ追加。既にあれば数量+1。
// 価格は追加した時点のものを使い続ける。
func (s *Session) AddPart(hit client.PartHit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].PartID == hit.ID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, newLineFromHit(hit))
}

// 数量の直接指定。0以下は明細の削除。
func (s *Session) SetQuantity(partID int64, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].PartID != partID {
			continue
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = quantity
		}
		return
	}
}

func (s *Session) Remove(partID int64) {
	s.SetQuantity(partID, 0)
}

func (s *Session) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// 税込合計。
func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Session) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// 税抜額。価格が税込なので合計を1.16で割って出す。
func (s *Session) Subtotal() decimal.Decimal {
	return s.Total().Div(ivaFactor).Round(2)
}

// IVA額。合計から税抜額を引いた残り。
func (s *Session) VAT() decimal.Decimal {
	total := s.Total()
	return total.Sub(total.Div(ivaFactor).Round(2))
}

// お釣り。預かりが足りないときは0。
func (s *Session) Change(tendered decimal.Decimal) decimal.Decimal {
	change := tendered.Sub(s.Total())
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// 不足額。足りていれば0。お釣りが0に丸められても不足はここで分かる。
func (s *Session) Shortfall(tendered decimal.Decimal) decimal.Decimal {
	short := s.Total().Sub(tendered)
	if short.IsNegative() {
		return decimal.Zero
	}
	return short
}

// チケット確定。売上をサーバーに登録し、控えを返してチケットを空にする。
// 空チケットはErrEmptyTicket。サーバー側で失敗したらチケットはそのまま残る。
func (s *Session) Confirm(ctx context.Context, tendered decimal.Decimal) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return Receipt{}, ErrEmptyTicket
	}

	saleLines := make([]client.SaleLine, 0, len(s.lines))
	for _, l := range s.lines {
		saleLines = append(saleLines, client.SaleLine{
			PartID:    l.PartID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	result, err := s.sales.CreateSales(ctx, saleLines)
	if err != nil {
		s.logger.Warn("sale confirm failed, ticket kept", zap.Error(err))
		return Receipt{}, err
	}

	total := s.totalLocked()
	subtotal := total.Div(ivaFactor).Round(2)
	change := tendered.Sub(total)
	if change.IsNegative() {
		change = decimal.Zero
	}

	receipt := Receipt{
		SaleIDs:   result.SaleIDs,
		Lines:     s.lines,
		Total:     total,
		Subtotal:  subtotal,
		VAT:       total.Sub(subtotal),
		Tendered:  tendered,
		Change:    change,
		CreatedAt: s.now(),
	}
	s.lines = nil
	s.receipt = &receipt
	return receipt, nil
}

// 直近の確定済み控え。次の会計を始めるまで参照できる。
func (s *Session) LastReceipt() (Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return Receipt{}, false
	}
	return *s.receipt, true
}

// 新しい会計を開始。控えは破棄され、二度と参照できない。
func (s *Session) NewSale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.receipt = nil
}
