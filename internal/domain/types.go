// Package domain holds the plain value types shared by the matching engine
// and its HTTP boundary: orders, trades, and the aggregated level view.
package domain

import "fmt"

// Side is which side of the book an order rests on.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Bid"
	}
	return "Ask"
}

// TimeInForce controls what happens to an order's unfilled remainder.
type TimeInForce uint8

const (
	// GoodTillCancel rests on the book until matched or explicitly cancelled.
	GoodTillCancel TimeInForce = iota
	// FillAndKill matches what it can immediately; any remainder is cancelled,
	// never rested.
	FillAndKill
)

// Order is a single limit order. Price is signed to allow negative limit
// prices; quantities are unsigned.
type Order struct {
	ID        uint64
	Side      Side
	TIF       TimeInForce
	Price     int32
	Initial   uint32
	Remaining uint32
}

// NewOrder constructs an order with Remaining equal to Initial.
func NewOrder(id uint64, side Side, tif TimeInForce, price int32, quantity uint32) *Order {
	return &Order{
		ID:        id,
		Side:      side,
		TIF:       tif,
		Price:     price,
		Initial:   quantity,
		Remaining: quantity,
	}
}

// Filled is the quantity already matched away.
func (o *Order) Filled() uint32 {
	return o.Initial - o.Remaining
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.Remaining == 0
}

// Fill reduces the order's remaining quantity by qty. It panics on over-fill:
// that can only happen from a bug in the matching loop, never from caller
// input (see spec's "Over-fill" error taxonomy entry).
func (o *Order) Fill(qty uint32) {
	if qty > o.Remaining {
		panic(fmt.Sprintf("order %d: fill of %d exceeds remaining %d", o.ID, qty, o.Remaining))
	}
	o.Remaining -= qty
}

// LevelInfo is the aggregated, derived state at one price: the total
// remaining quantity resting across every order at that price.
type LevelInfo struct {
	Price    int32
	Quantity uint32
}

// TradeInfo is one side of a trade.
type TradeInfo struct {
	OrderID  uint64
	Price    int32
	Quantity uint32
}

// Trade pairs the bid and ask sides of one fill. Both sides share Quantity;
// Price on both sides is the resting order's price.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}
