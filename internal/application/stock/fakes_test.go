package stock_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memMoves struct {
	moves     []*entity.StockMove
	createErr error
	sumErr    error
}

func (m *memMoves) Create(_ context.Context, move *entity.StockMove) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.moves = append(m.moves, move)
	return nil
}

func (m *memMoves) SumByItem(_ context.Context, itemID, moveType string) (decimal.Decimal, error) {
	if m.sumErr != nil {
		return decimal.Zero, m.sumErr
	}
	total := decimal.Zero
	for _, mv := range m.moves {
		if mv.ItemID == itemID && mv.MoveType == moveType {
			total = total.Add(mv.QtyKg)
		}
	}
	return total, nil
}

func (m *memMoves) List(_ context.Context, limit, offset int) ([]*entity.StockMove, error) {
	out := make([]*entity.StockMove, 0, len(m.moves))
	for i := len(m.moves) - 1; i >= 0; i-- {
		out = append(out, m.moves[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memMoves) ListByRef(_ context.Context, refType, refID string) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	for _, mv := range m.moves {
		if mv.RefType == refType && mv.RefID == refID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memMoves) Count(context.Context) (int, error) { return len(m.moves), nil }

// memTx aplica los movimientos de fn solo si devuelve nil.
type memTx struct {
	mu    sync.Mutex
	store *memMoves
	runs  int
}

func (t *memTx) Run(_ context.Context, fn func(repository.StockMoveRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs++
	staged := &memMoves{moves: append([]*entity.StockMove(nil), t.store.moves...)}
	if err := fn(staged); err != nil {
		return err
	}
	t.store.moves = staged.moves
	return nil
}

type memItems struct {
	items map[string]*entity.Item
}

func newMemItems(items ...*entity.Item) *memItems {
	m := &memItems{items: map[string]*entity.Item{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memItems) Create(_ context.Context, item *entity.Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *memItems) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return m.items[id], nil
}

func (m *memItems) List(context.Context) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

type countingMetrics struct {
	moves      map[string]int
	rejections int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{moves: map[string]int{}}
}

func (c *countingMetrics) StockMoveRecorded(t string) { c.moves[t]++ }
func (c *countingMetrics) ProductionRecorded(string)  {}
func (c *countingMetrics) StockOutRejected()          { c.rejections++ }

func move(itemID, moveType, qty string) *entity.StockMove {
	m, err := entity.NewStockMove(itemID, moveType, decimal.RequireFromString(qty), entity.MoveRef{Type: entity.RefTypeManual})
	if err != nil {
		panic(err)
	}
	return m
}
