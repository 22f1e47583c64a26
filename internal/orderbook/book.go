// Package orderbook implements the price-time priority limit order book:
// two side-sorted ladders plus an order index, and the AddOrder, CancelOrder,
// ModifyOrder and (internal) Match algorithms that act on them.
package orderbook

import (
	"sync"

	"github.com/TanishqM1/ladderbook/internal/domain"
)

// Book owns one symbol's bid ladder, ask ladder, and order index, and
// serializes every mutation on itself behind mu. This is the per-book
// refinement of the coarse single-lock model: the registry protects only
// the name -> *Book lookup/creation step, while each Book totally orders
// its own operations under its own lock.
type Book struct {
	mu sync.Mutex

	bids  *ladder
	asks  *ladder
	index map[uint64]*orderNode
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		bids:  newBidLadder(),
		asks:  newAskLadder(),
		index: make(map[uint64]*orderNode),
	}
}

// AddOrder dedupes by id and (for FillAndKill) checks crossability, then
// inserts the order and runs the match loop; it does not check the order's
// quantity, and a zero quantity is not rejected. Returns the trades
// produced, or nil if nothing traded (including the silently-ignored
// duplicate-id and uncrossable-FillAndKill cases).
func (b *Book) AddOrder(o *domain.Order) []domain.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addOrderLocked(o)
}

// CancelOrder removes a resting order by id. Reports whether an order was
// actually found and removed; absent ids are a no-op, never an error.
func (b *Book) CancelOrder(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.index[id]
	if !ok {
		return false
	}
	b.removeNodeLocked(n.order.Side, n)
	return true
}

// ModifyOrder amends a resting order as cancel-then-add, forfeiting time
// priority. The replacement inherits the original order's time-in-force.
// A missing id is a no-op returning nil trades.
func (b *Book) ModifyOrder(id uint64, side domain.Side, price int32, quantity uint32) []domain.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.index[id]
	if !ok {
		return nil
	}
	tif := n.order.TIF
	b.removeNodeLocked(n.order.Side, n)

	replacement := domain.NewOrder(id, side, tif, price, quantity)
	return b.addOrderLocked(replacement)
}

// LevelSnapshot aggregates resting quantity per price level on each side.
// Bids are returned in descending price order, asks ascending. The result
// is a value copy, safe to hold without further locking.
func (b *Book) LevelSnapshot() (bids, asks []domain.LevelInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids.forEach(func(lv *level) bool {
		bids = append(bids, domain.LevelInfo{Price: lv.price, Quantity: lv.total})
		return true
	})
	b.asks.forEach(func(lv *level) bool {
		asks = append(asks, domain.LevelInfo{Price: lv.price, Quantity: lv.total})
		return true
	})
	return bids, asks
}

// Size returns the number of resting orders across both sides.
func (b *Book) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.index)
}

// addOrderLocked is AddOrder's body, callable while mu is already held (so
// ModifyOrder can cancel-then-add atomically under one lock acquisition).
func (b *Book) addOrderLocked(o *domain.Order) []domain.Trade {
	if _, exists := b.index[o.ID]; exists {
		return nil
	}
	if o.TIF == domain.FillAndKill && !b.canMatchLocked(o.Side, o.Price) {
		return nil
	}

	lad := b.ladderFor(o.Side)
	lv := lad.getOrCreate(o.Price)
	node := lv.pushBack(o)
	b.index[o.ID] = node

	trades := b.matchLocked(o.Side)

	// Residual policy: a FillAndKill order never rests. By I6 it is the
	// only order of its kind that can possibly be sitting at the front of
	// its side's best level after the loop above, since no resting order
	// ever has TIF FillAndKill before this call.
	if o.TIF == domain.FillAndKill && o.Remaining > 0 {
		if best := lad.best(); best != nil && best == node.lvl && best.front() == node {
			b.removeNodeLocked(o.Side, node)
		}
	}

	return trades
}

// canMatchLocked reports whether an order of the given side and price
// would cross the opposite side's best price.
func (b *Book) canMatchLocked(side domain.Side, price int32) bool {
	if side == domain.Buy {
		best := b.asks.best()
		return best != nil && price >= best.price
	}
	best := b.bids.best()
	return best != nil && price <= best.price
}

// matchLocked runs while both ladders are non-empty and crossed, filling
// the front orders of the best bid and ask levels against each other until
// the cross is resolved. aggressorSide is the side of the order whose
// insertion triggered this call; the spec mandates the *resting* side's
// price be used for both legs of each trade, and since the book is
// uncrossed before every public operation (I4), the resting side is always
// the side opposite the aggressor for the duration of this loop.
func (b *Book) matchLocked(aggressorSide domain.Side) []domain.Trade {
	var trades []domain.Trade

	for {
		bestBid := b.bids.best()
		bestAsk := b.asks.best()
		if bestBid == nil || bestAsk == nil || bestBid.price < bestAsk.price {
			break
		}

		bidNode := bestBid.front()
		askNode := bestAsk.front()
		bidOrder := bidNode.order
		askOrder := askNode.order

		qty := min(bidOrder.Remaining, askOrder.Remaining)
		bidOrder.Fill(qty)
		askOrder.Fill(qty)
		// Fill only updates the order's own remaining quantity; the level's
		// running total has to be adjusted here too, since a partially
		// filled order that stays resting never goes through removeNodeLocked.
		bidNode.lvl.total -= qty
		askNode.lvl.total -= qty

		tradePrice := bidOrder.Price
		if aggressorSide == domain.Buy {
			tradePrice = askOrder.Price
		}

		trades = append(trades, domain.Trade{
			Bid: domain.TradeInfo{OrderID: bidOrder.ID, Price: tradePrice, Quantity: qty},
			Ask: domain.TradeInfo{OrderID: askOrder.ID, Price: tradePrice, Quantity: qty},
		})

		if bidOrder.IsFilled() {
			b.removeNodeLocked(domain.Buy, bidNode)
		}
		if askOrder.IsFilled() {
			b.removeNodeLocked(domain.Sell, askNode)
		}
	}

	return trades
}

// removeNodeLocked unlinks n from its level's queue, erases the level if it
// is now empty, and drops the order from the index.
func (b *Book) removeNodeLocked(side domain.Side, n *orderNode) {
	lad := b.ladderFor(side)
	lv := n.lvl
	lv.remove(n)
	lad.deleteIfEmpty(lv)
	delete(b.index, n.order.ID)
}

func (b *Book) ladderFor(side domain.Side) *ladder {
	if side == domain.Buy {
		return b.bids
	}
	return b.asks
}
